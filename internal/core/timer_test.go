package core

import (
	"testing"
	"time"
)

func TestTimerFiresEveryInterval(t *testing.T) {
	fires := 0
	tm := NewTimer(1500*time.Millisecond, func() { fires++ })

	if n := tm.Advance(time.Second); n != 0 {
		t.Errorf("stopped timer should not fire, fired %d", n)
	}

	tm.Start()
	if n := tm.Advance(time.Second); n != 0 {
		t.Errorf("Advance(1s) fired %d, expected 0", n)
	}
	if n := tm.Advance(600 * time.Millisecond); n != 1 {
		t.Errorf("Advance to 1.6s fired %d, expected 1", n)
	}
	if n := tm.Advance(3 * time.Second); n != 2 {
		t.Errorf("Advance(3s) fired %d, expected 2", n)
	}
	if fires != 3 {
		t.Errorf("callback ran %d times, expected 3", fires)
	}
}

func TestTimerStopInsideCallback(t *testing.T) {
	var tm *Timer
	fires := 0
	tm = NewTimer(100*time.Millisecond, func() {
		fires++
		tm.Stop()
	})
	tm.Start()

	// Enough time for five fires, but the first one cancels the rest.
	if n := tm.Advance(500 * time.Millisecond); n != 1 {
		t.Errorf("Advance fired %d, expected 1", n)
	}
	if tm.Active() {
		t.Error("timer should be inactive after Stop")
	}
	if n := tm.Advance(time.Second); n != 0 {
		t.Errorf("stopped timer fired %d", n)
	}
	if fires != 1 {
		t.Errorf("callback ran %d times, expected 1", fires)
	}
}

func TestTimerRestartDiscardsElapsed(t *testing.T) {
	tm := NewTimer(time.Second, nil)
	tm.Start()
	tm.Advance(900 * time.Millisecond)
	tm.Stop()
	tm.Start()

	if n := tm.Advance(200 * time.Millisecond); n != 0 {
		t.Errorf("restarted timer fired early (%d)", n)
	}
}

func TestTimerSetInterval(t *testing.T) {
	tm := NewTimer(time.Second, nil)
	tm.SetInterval(0)
	if tm.Interval() != time.Second {
		t.Errorf("non-positive interval should be ignored, got %v", tm.Interval())
	}
	tm.SetInterval(250 * time.Millisecond)
	tm.Start()
	if n := tm.Advance(time.Second); n != 4 {
		t.Errorf("Advance(1s) at 250ms fired %d, expected 4", n)
	}
}

func TestTickDuration(t *testing.T) {
	if d := TickDuration(50); d != 20*time.Millisecond {
		t.Errorf("TickDuration(50) = %v", d)
	}
	if d := TickDuration(0); d != time.Second/60 {
		t.Errorf("TickDuration(0) = %v, expected 60 Hz fallback", d)
	}
}

func TestPhaseAndEventNames(t *testing.T) {
	if PhaseWaiting.String() != "Waiting" || PhasePlaying.String() != "Playing" || PhaseGameOver.String() != "GameOver" {
		t.Error("unexpected phase names")
	}
	if Phase(42).String() != "Unknown" {
		t.Error("out of range phase should be Unknown")
	}
	if EventScore.String() != "score" || Event(0).String() != "unknown" {
		t.Error("unexpected event names")
	}
	if (GameState{Phase: PhaseGameOver}).GameOver() != true {
		t.Error("GameOver() should follow phase")
	}
}

func TestNormalizeTickRateMatchesStep(t *testing.T) {
	for _, rate := range []int{-30, 0, 1, 30, 144} {
		n := NormalizeTickRate(rate)
		if n <= 0 {
			t.Errorf("NormalizeTickRate(%d) = %d, expected positive", rate, n)
		}
		// A frontend that runs n updates per second with step
		// TickDuration(rate) must simulate exactly one second.
		if got := time.Duration(n) * TickDuration(rate); got < time.Second-time.Millisecond || got > time.Second {
			t.Errorf("rate %d: %d ticks of %v = %v, expected 1s", rate, n, TickDuration(rate), got)
		}
	}
	if NormalizeTickRate(0) != DefaultTickRate {
		t.Errorf("NormalizeTickRate(0) = %d, expected %d", NormalizeTickRate(0), DefaultTickRate)
	}
}
