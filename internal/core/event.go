package core

// Event is a side effect raised by a game during input or tick handling.
// Platforms drain events each frame and map them to sound, bells or logs.
type Event int

const (
	EventFlap       Event = iota + 1 // Player jumped
	EventScore                       // An obstacle was passed
	EventHit                         // Run ended by bounds or collision
	EventMusicStart                  // Ambient loop should start
	EventMusicStop                   // Ambient loop should stop
	EventGameOver                    // End-of-run UI is visible
	EventRestart                     // Run state was reset
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventFlap:
		return "flap"
	case EventScore:
		return "score"
	case EventHit:
		return "hit"
	case EventMusicStart:
		return "music-start"
	case EventMusicStop:
		return "music-stop"
	case EventGameOver:
		return "game-over"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}
