// Package formation provides the tactical slot templates a starting
// lineup is validated against: a named shape (4-4-2, 3-5-2, ...) expands
// to the exact list of on-field position slots for a field size.
package formation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/sidelined/internal/match"
)

// ErrUnknownFormation is returned for shape names with no template.
var ErrUnknownFormation = errors.New("unknown formation")

// Formation is a named template of required on-field slots. Slots may
// repeat codes; a 4-4-2 carries two CBs, two CMs and two STs.
type Formation struct {
	Name  string
	Slots []match.Position
}

// FieldSize returns the number of on-field slots including the keeper.
func (f Formation) FieldSize() int { return len(f.Slots) }

var templates = map[string]Formation{
	"4-4-2": {Name: "4-4-2", Slots: []match.Position{"GK", "LB", "CB", "CB", "RB", "LM", "CM", "CM", "RM", "ST", "ST"}},
	"4-3-3": {Name: "4-3-3", Slots: []match.Position{"GK", "LB", "CB", "CB", "RB", "CM", "CM", "CM", "LW", "ST", "RW"}},
	"3-5-2": {Name: "3-5-2", Slots: []match.Position{"GK", "CB", "CB", "CB", "LM", "CM", "CM", "CM", "RM", "ST", "ST"}},
	"4-5-1": {Name: "4-5-1", Slots: []match.Position{"GK", "LB", "CB", "CB", "RB", "LM", "CM", "CM", "CM", "RM", "ST"}},
	// Smaller field shapes.
	"3-3-3": {Name: "3-3-3", Slots: []match.Position{"GK", "LB", "CB", "RB", "LM", "CM", "RM", "LW", "ST", "RW"}}, // 10v10
	"3-2-3": {Name: "3-2-3", Slots: []match.Position{"GK", "LB", "CB", "RB", "CM", "CM", "LW", "ST", "RW"}},       // 9v9
	"2-3-1": {Name: "2-3-1", Slots: []match.Position{"GK", "CB", "CB", "LM", "CM", "RM", "ST"}},                   // 7v7
}

// Lookup returns the template for a shape name.
func Lookup(name string) (Formation, error) {
	f, ok := templates[name]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownFormation, name, Names())
	}
	return f, nil
}

// Names lists the known shape names, sorted.
func Names() []string {
	out := make([]string, 0, len(templates))
	for name := range templates {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Custom builds an unnamed formation from explicit slots after
// validating its structure.
func Custom(slots []match.Position, set match.PositionSet) (Formation, error) {
	f := Formation{Name: "custom", Slots: append([]match.Position(nil), slots...)}
	if err := f.Validate(set); err != nil {
		return Formation{}, err
	}
	return f, nil
}

// Validate checks formation structure: at least a keeper plus one
// outfielder, exactly one GK, and every slot in the configured set.
func (f Formation) Validate(set match.PositionSet) error {
	if len(f.Slots) < 2 {
		return fmt.Errorf("formation %s: need at least 2 slots, have %d", f.Name, len(f.Slots))
	}
	keepers := 0
	for _, slot := range f.Slots {
		if err := set.Validate(slot); err != nil {
			return fmt.Errorf("formation %s: %w", f.Name, err)
		}
		if slot == "GK" {
			keepers++
		}
	}
	if keepers != 1 {
		return fmt.Errorf("formation %s: need exactly 1 GK, have %d", f.Name, keepers)
	}
	return nil
}

// AutoAssign proposes a lineup for the formation from the given players,
// preferring players whose preference list contains the slot code.
// Unfilled slots are left to the operator; the proposal never assigns a
// player twice.
func (f Formation) AutoAssign(players map[match.PlayerID][]match.Position) match.Lineup {
	lineup := make(match.Lineup, len(f.Slots))
	used := make(map[match.PlayerID]bool, len(players))

	ordered := make([]match.PlayerID, 0, len(players))
	for id := range players {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	// First pass: preference matches.
	remaining := make([]match.Position, 0, len(f.Slots))
	for _, slot := range f.Slots {
		assigned := false
		for _, id := range ordered {
			if used[id] {
				continue
			}
			for _, pref := range players[id] {
				if pref == slot {
					lineup[id] = slot
					used[id] = true
					assigned = true
					break
				}
			}
			if assigned {
				break
			}
		}
		if !assigned {
			remaining = append(remaining, slot)
		}
	}

	// Second pass: fill leftovers in id order.
	for _, slot := range remaining {
		for _, id := range ordered {
			if !used[id] {
				lineup[id] = slot
				used[id] = true
				break
			}
		}
	}
	return lineup
}
