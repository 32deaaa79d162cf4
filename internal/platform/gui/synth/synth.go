// Package synth generates short PCM cues for the windowed frontend.
// Output is 16-bit little-endian stereo, the format ebiten/audio plays
// from raw bytes.
package synth

import (
	"math"
	"time"
)

// BytesPerFrame is the size of one stereo 16-bit sample frame.
const BytesPerFrame = 4

// Sweep renders a sine that glides linearly from one frequency to another
// with a linear fade-out. A sweep with from == to is a plain tone.
func Sweep(sampleRate int, from, to float64, d time.Duration, volume float64) []byte {
	if sampleRate <= 0 || d <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))

	n := int(int64(sampleRate) * int64(d) / int64(time.Second))
	buf := make([]byte, n*BytesPerFrame)

	phase := 0.0
	for i := range n {
		t := float64(i) / float64(n)
		freq := from + (to-from)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)

		v := int16(math.Sin(phase) * volume * (1 - t) * math.MaxInt16)
		putFrame(buf[i*BytesPerFrame:], v)
	}
	return buf
}

// Tone renders a fixed-frequency sine.
func Tone(sampleRate int, freq float64, d time.Duration, volume float64) []byte {
	return Sweep(sampleRate, freq, freq, d, volume)
}

// Noise renders a decaying square-ish burst used for hits. The sequence is
// fixed so cues are identical between runs.
func Noise(sampleRate int, d time.Duration, volume float64) []byte {
	if sampleRate <= 0 || d <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))

	n := int(int64(sampleRate) * int64(d) / int64(time.Second))
	buf := make([]byte, n*BytesPerFrame)

	var lfsr uint16 = 0xACE1
	for i := range n {
		bit := (lfsr ^ (lfsr >> 2) ^ (lfsr >> 3) ^ (lfsr >> 5)) & 1
		lfsr = (lfsr >> 1) | (bit << 15)

		amp := volume * (1 - float64(i)/float64(n))
		if lfsr&1 == 0 {
			amp = -amp
		}
		putFrame(buf[i*BytesPerFrame:], int16(amp*math.MaxInt16))
	}
	return buf
}

// Concat joins cues back to back.
func Concat(parts ...[]byte) []byte {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make([]byte, 0, size)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func putFrame(b []byte, v int16) {
	u := uint16(v)
	b[0], b[1] = byte(u), byte(u>>8) // left
	b[2], b[3] = byte(u), byte(u>>8) // right
}
