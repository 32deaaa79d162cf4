package core

// Phase is the top-level game flow state.
//
//	Waiting --tap--> Playing --bounds/collision--> GameOver --tap--> Waiting
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "Waiting"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
