package synth

import (
	"testing"
	"time"
)

func sample(buf []byte, i int) int16 {
	return int16(uint16(buf[i*BytesPerFrame]) | uint16(buf[i*BytesPerFrame+1])<<8)
}

func TestToneLength(t *testing.T) {
	buf := Tone(48000, 440, 100*time.Millisecond, 0.5)
	if want := 4800 * BytesPerFrame; len(buf) != want {
		t.Fatalf("len = %d, expected %d", len(buf), want)
	}
}

func TestToneChannelsMatch(t *testing.T) {
	buf := Tone(8000, 440, 10*time.Millisecond, 1)
	for i := 0; i < len(buf); i += BytesPerFrame {
		if buf[i] != buf[i+2] || buf[i+1] != buf[i+3] {
			t.Fatalf("Left and right differ at frame %d", i/BytesPerFrame)
		}
	}
}

func TestSweepFadesOut(t *testing.T) {
	buf := Sweep(8000, 200, 800, 50*time.Millisecond, 1)
	n := len(buf) / BytesPerFrame

	peak := func(from, to int) int16 {
		var p int16
		for i := from; i < to; i++ {
			v := sample(buf, i)
			if v < 0 {
				v = -v
			}
			p = max(p, v)
		}
		return p
	}

	if head, tail := peak(0, n/4), peak(3*n/4, n); tail >= head {
		t.Errorf("Expected fade-out, head peak %d, tail peak %d", head, tail)
	}
}

func TestVolumeClamped(t *testing.T) {
	buf := Tone(8000, 440, 10*time.Millisecond, 5)
	for i := range len(buf) / BytesPerFrame {
		if v := sample(buf, i); v == -32768 {
			t.Fatalf("Sample %d overflowed", i)
		}
	}
}

func TestDegenerateInput(t *testing.T) {
	if Tone(0, 440, time.Second, 1) != nil {
		t.Error("Zero sample rate should produce nothing")
	}
	if Noise(48000, 0, 1) != nil {
		t.Error("Zero duration should produce nothing")
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(8000, 20*time.Millisecond, 0.8)
	b := Noise(8000, 20*time.Millisecond, 0.8)
	if string(a) != string(b) {
		t.Error("Noise should be identical between calls")
	}
}

func TestConcat(t *testing.T) {
	a := Tone(8000, 440, 10*time.Millisecond, 1)
	b := Tone(8000, 660, 5*time.Millisecond, 1)
	if got := Concat(a, b); len(got) != len(a)+len(b) {
		t.Errorf("len = %d, expected %d", len(got), len(a)+len(b))
	}
}
