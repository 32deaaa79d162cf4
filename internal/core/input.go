package core

// Action is a frontend-independent input. Every frontend maps its own
// keys, clicks and touches onto these; a tap of any kind is ActionJump.
type Action int

const (
	ActionNone Action = iota
	ActionJump
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionJump:    "Jump",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}
