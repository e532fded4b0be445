package match

import (
	"fmt"
	"time"
)

// PlayerID uniquely identifies a player within a match roster.
type PlayerID string

// PlayerStint tracks one player's on-field status and accumulated playing
// time. Stint boundaries are recorded as offsets into match elapsed time
// rather than wall-clock timestamps, so a paused match clock freezes every
// running stint for free and accumulated time can never include paused
// intervals.
//
// Invariant: OnField is true iff Position is non-empty; StintStart is
// meaningful only while OnField. Accumulated only ever grows.
type PlayerStint struct {
	ID          PlayerID
	OnField     bool
	Position    Position
	StintStart  time.Duration
	Accumulated time.Duration
}

// StartStint puts the player on the field at the given match-elapsed
// offset in the given position.
func (p *PlayerStint) StartStint(at time.Duration, pos Position) error {
	if p.OnField {
		return fmt.Errorf("%w: %s at %s", ErrAlreadyOnField, p.ID, p.Position)
	}
	p.OnField = true
	p.Position = pos
	p.StintStart = at
	return nil
}

// EndStint benches the player at the given match-elapsed offset, folding
// the stint into Accumulated. It returns the vacated position; callers
// that want to refill the slot must capture it from the return value
// since the field is cleared here.
func (p *PlayerStint) EndStint(at time.Duration) (Position, error) {
	if !p.OnField {
		return "", fmt.Errorf("%w: %s", ErrNotOnField, p.ID)
	}
	vacated := p.Position
	p.Accumulated += at - p.StintStart
	p.OnField = false
	p.Position = ""
	p.StintStart = 0
	return vacated, nil
}

// CurrentStint returns time played in the active stint as of the given
// match-elapsed offset, or zero when benched. Pure.
func (p *PlayerStint) CurrentStint(elapsed time.Duration) time.Duration {
	if !p.OnField {
		return 0
	}
	return elapsed - p.StintStart
}

// Total returns all playing time as of the given match-elapsed offset,
// including the active stint. Pure; used for live display.
func (p *PlayerStint) Total(elapsed time.Duration) time.Duration {
	return p.Accumulated + p.CurrentStint(elapsed)
}
