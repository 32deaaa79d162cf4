package core

import "time"

// Scene is the lifecycle surface a frontend drives.
// All three methods are called from the same goroutine.
type Scene interface {
	// Setup builds fresh run state for the given runtime configuration.
	Setup(cfg RuntimeConfig)

	// Tick advances the simulation by dt.
	Tick(dt time.Duration)

	// OnInput delivers one discrete input event (tap, pause, restart).
	OnInput(a Action)
}

// DefaultTickRate is used whenever a tick rate is not positive.
const DefaultTickRate = 60

// NormalizeTickRate replaces a non-positive rate with DefaultTickRate.
func NormalizeTickRate(tickRate int) int {
	if tickRate <= 0 {
		return DefaultTickRate
	}
	return tickRate
}

// TickDuration returns the fixed simulation step for a tick rate.
func TickDuration(tickRate int) time.Duration {
	return time.Second / time.Duration(NormalizeTickRate(tickRate))
}
