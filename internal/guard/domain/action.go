package domain

import "fmt"

// Action is the outcome of screening a single input. Only two values exist:
// scanning never produces an "unknown" or "error" action.
type Action uint8

const (
	// ActionNone lets the input through.
	ActionNone Action = iota
	// ActionBlock flags the input as malicious.
	ActionBlock
)

// String returns the wire representation used by the published lists and the CLI.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "NONE"
	case ActionBlock:
		return "BLOCK"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}
