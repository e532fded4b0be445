package match

import "errors"

// Command errors. These are the values external layers branch on with
// errors.Is; the engine wraps them with diagnostic context before
// returning.
var (
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrAlreadyOnField      = errors.New("player already on field")
	ErrNotOnField          = errors.New("player not on field")
	ErrInvalidSubstitution = errors.New("invalid substitution")
	ErrRosterIncomplete    = errors.New("roster incomplete")
	ErrGameEnded           = errors.New("game ended")
	ErrNothingToUndo       = errors.New("nothing to undo")
	ErrInvalidPosition     = errors.New("invalid position")
	ErrPlayerNotFound      = errors.New("player not found")

	// ErrCommandFailed wraps unexpected internal failures after rollback.
	// Precondition violations never map to it.
	ErrCommandFailed = errors.New("command failed")
)
