package match

import (
	"fmt"
	"sort"
	"strings"
)

// Position is a short field position code such as "GK" or "CB". The core
// treats codes as opaque tokens validated against the configured set;
// long-form names are rejected.
type Position string

// ParsePosition normalizes a raw token to a position code. It does not
// check set membership; see PositionSet.Validate.
func ParsePosition(raw string) Position {
	return Position(strings.ToUpper(strings.TrimSpace(raw)))
}

// PositionSet is the configured universe of legal position codes.
type PositionSet struct {
	codes map[Position]struct{}
}

// DefaultPositions is the standard 11-a-side code set.
var DefaultPositions = []Position{"GK", "LB", "CB", "RB", "LM", "CM", "RM", "LW", "RW", "ST"}

// NewPositionSet builds a set from the given codes. Duplicates collapse.
func NewPositionSet(codes ...Position) PositionSet {
	set := PositionSet{codes: make(map[Position]struct{}, len(codes))}
	for _, c := range codes {
		set.codes[ParsePosition(string(c))] = struct{}{}
	}
	return set
}

// Contains reports whether code is a member of the set.
func (s PositionSet) Contains(code Position) bool {
	_, ok := s.codes[code]
	return ok
}

// Validate returns ErrInvalidPosition for codes outside the set.
func (s PositionSet) Validate(code Position) error {
	if !s.Contains(code) {
		return fmt.Errorf("%w: %q not in configured set %v", ErrInvalidPosition, code, s.Codes())
	}
	return nil
}

// Codes returns the member codes in sorted order.
func (s PositionSet) Codes() []Position {
	out := make([]Position, 0, len(s.codes))
	for c := range s.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
