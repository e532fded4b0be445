// Package roster manages the team sheet: player records with jersey
// numbers and preferred positions. It holds no match timing state; the
// match engine keeps its own stint trackers keyed by the ids defined
// here.
package roster

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/sidelined/internal/match"
)

var (
	ErrPlayerExists   = errors.New("player already on roster")
	ErrPlayerNotFound = errors.New("player not on roster")
)

// Player is one roster entry. The id doubles as the display name, which
// is how the sideline app has always identified players.
type Player struct {
	ID        match.PlayerID
	Number    string
	Preferred []match.Position
}

// Roster is an ordered team sheet. Order matters: the match state lists
// players in roster order and coaches expect the sheet they typed in.
type Roster struct {
	players []*Player
	index   map[match.PlayerID]*Player
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{index: make(map[match.PlayerID]*Player)}
}

// Add validates and appends a player.
func (r *Roster) Add(p Player) error {
	if err := Validate(p); err != nil {
		return err
	}
	if _, ok := r.index[p.ID]; ok {
		return fmt.Errorf("%w: %q", ErrPlayerExists, p.ID)
	}
	cp := p
	r.players = append(r.players, &cp)
	r.index[cp.ID] = &cp
	return nil
}

// Remove drops a player from the sheet.
func (r *Roster) Remove(id match.PlayerID) error {
	if _, ok := r.index[id]; !ok {
		return fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	delete(r.index, id)
	for i, p := range r.players {
		if p.ID == id {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the player record for id.
func (r *Roster) Get(id match.PlayerID) (*Player, error) {
	p, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	return p, nil
}

// Len returns the number of players on the sheet.
func (r *Roster) Len() int { return len(r.players) }

// Players returns the sheet in order.
func (r *Roster) Players() []*Player {
	return append([]*Player(nil), r.players...)
}

// IDs returns the player ids in roster order, ready for match.NewState.
func (r *Roster) IDs() []match.PlayerID {
	ids := make([]match.PlayerID, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}

// Prefers reports whether the player listed pos among their preferences.
func (p *Player) Prefers(pos match.Position) bool {
	for _, pref := range p.Preferred {
		if pref == pos {
			return true
		}
	}
	return false
}

// Validate checks a roster entry: non-empty name of reasonable length
// and a numeric jersey number between 1 and 99 when present.
func Validate(p Player) error {
	name := strings.TrimSpace(string(p.ID))
	if name == "" {
		return errors.New("player name is required")
	}
	if len(name) < 2 {
		return fmt.Errorf("player name %q too short", name)
	}
	if p.Number != "" {
		n, err := strconv.Atoi(p.Number)
		if err != nil {
			return fmt.Errorf("jersey number %q must be numeric", p.Number)
		}
		if n < 1 || n > 99 {
			return fmt.Errorf("jersey number %d out of range 1-99", n)
		}
	}
	return nil
}

// ParsePreferred parses a comma-separated preference list like "ST,CM"
// into position codes. Empty segments are dropped.
func ParsePreferred(raw string) []match.Position {
	var out []match.Position
	for _, part := range strings.Split(raw, ",") {
		if code := match.ParsePosition(part); code != "" {
			out = append(out, code)
		}
	}
	return out
}
