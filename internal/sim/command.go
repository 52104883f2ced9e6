package sim

import "zonecrawl/server/internal/nav"

// CommandType enumerates the player inputs the engine accepts.
type CommandType string

const (
	CommandMove CommandType = "Move"
	CommandWalk CommandType = "Walk"
	CommandWait CommandType = "Wait"
)

// MoveCommand carries one unit step.
type MoveCommand struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// WalkCommand carries a queued multi-cell walk; it is played back as single
// turns and any fresh input cancels the remainder.
type WalkCommand struct {
	Steps []nav.Step `json:"steps"`
}

// Command represents one player intent captured at the input boundary.
type Command struct {
	Type CommandType  `json:"type"`
	Move *MoveCommand `json:"move,omitempty"`
	Walk *WalkCommand `json:"walk,omitempty"`
}
