package match

import (
	"fmt"
	"time"
)

// Phase is the match lifecycle state.
type Phase int

const (
	Setup Phase = iota
	Running
	Paused
	PeriodBreak
	Ended
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case PeriodBreak:
		return "period_break"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// State is the authoritative in-memory model of one match: the clock, the
// roster of stint trackers, and the per-period accounting. It is owned by
// a single Engine and must only be mutated through it.
type State struct {
	Clock       Clock
	Roster      []*PlayerStint // roster order preserved
	FieldSize   int            // on-field slot count
	PeriodIndex int
	PeriodCount int
	// Per-period accounting, always sized to PeriodCount by
	// EnsureTimerLists before any timer operation touches them.
	PeriodElapsed     []time.Duration
	PeriodAdjustments []time.Duration
	PeriodStoppage    []time.Duration
	// PeriodStart is the match-elapsed offset at which the current period
	// started or last resumed accumulating.
	PeriodStart time.Duration
	Phase       Phase

	index map[PlayerID]*PlayerStint
}

// NewState builds a fresh match in Setup phase with the given roster
// order. Every construction path, this one included, runs
// EnsureTimerLists before the state is visible to callers.
func NewState(periodCount, fieldSize int, roster []PlayerID) (*State, error) {
	s := &State{
		FieldSize:   fieldSize,
		PeriodCount: periodCount,
		Phase:       Setup,
	}
	for _, id := range roster {
		if err := s.AddPlayer(id); err != nil {
			return nil, err
		}
	}
	s.EnsureTimerLists()
	return s, nil
}

// AddPlayer appends a bench record for id. Duplicate ids are rejected.
func (s *State) AddPlayer(id PlayerID) error {
	if id == "" {
		return fmt.Errorf("empty player id")
	}
	if _, ok := s.player(id); ok {
		return fmt.Errorf("duplicate player id %q", id)
	}
	p := &PlayerStint{ID: id}
	s.Roster = append(s.Roster, p)
	if s.index == nil {
		s.index = make(map[PlayerID]*PlayerStint)
	}
	s.index[id] = p
	return nil
}

// Player returns the stint record for id.
func (s *State) Player(id PlayerID) (*PlayerStint, error) {
	p, ok := s.player(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	return p, nil
}

func (s *State) player(id PlayerID) (*PlayerStint, bool) {
	if s.index == nil {
		s.reindex()
	}
	p, ok := s.index[id]
	return p, ok
}

func (s *State) reindex() {
	s.index = make(map[PlayerID]*PlayerStint, len(s.Roster))
	for _, p := range s.Roster {
		s.index[p.ID] = p
	}
}

// OnField returns the players currently on the field, in roster order.
func (s *State) OnField() []*PlayerStint {
	var out []*PlayerStint
	for _, p := range s.Roster {
		if p.OnField {
			out = append(out, p)
		}
	}
	return out
}

// Elapsed returns total match time as of now.
func (s *State) Elapsed(now time.Time) time.Duration {
	return s.Clock.Elapsed(now)
}

// PeriodElapsedNow returns accumulated time for the current period
// including the live portion since PeriodStart.
func (s *State) PeriodElapsedNow(now time.Time) time.Duration {
	s.EnsureTimerLists()
	live := time.Duration(0)
	if s.Phase == Running {
		live = s.Clock.Elapsed(now) - s.PeriodStart
	}
	return s.PeriodElapsed[s.PeriodIndex] + live
}

// EnsureTimerLists normalizes the three period-indexed slices to
// PeriodCount with zero defaults and clamps PeriodIndex into range.
// Idempotent. A State can enter the system through more than one
// construction path (fresh, decoded, restored from snapshot), so every
// command re-runs this instead of trusting any single constructor.
func (s *State) EnsureTimerLists() {
	if s.PeriodCount < 1 {
		s.PeriodCount = 1
	}
	s.PeriodElapsed = resize(s.PeriodElapsed, s.PeriodCount)
	s.PeriodAdjustments = resize(s.PeriodAdjustments, s.PeriodCount)
	s.PeriodStoppage = resize(s.PeriodStoppage, s.PeriodCount)
	if s.PeriodIndex >= s.PeriodCount {
		s.PeriodIndex = s.PeriodCount - 1
	}
	if s.PeriodIndex < 0 {
		s.PeriodIndex = 0
	}
}

func resize(vals []time.Duration, n int) []time.Duration {
	for len(vals) < n {
		vals = append(vals, 0)
	}
	return vals[:n]
}

// TotalAdjustments sums manual adjustments across all periods.
func (s *State) TotalAdjustments() time.Duration {
	var total time.Duration
	for _, d := range s.PeriodAdjustments {
		total += d
	}
	return total
}

// TotalStoppage sums stoppage time across all periods.
func (s *State) TotalStoppage() time.Duration {
	var total time.Duration
	for _, d := range s.PeriodStoppage {
		total += d
	}
	return total
}

// Clone returns a deep, independent copy. Snapshots taken for undo and
// the read views handed to callers both come from here, so no caller can
// reach back into live engine state.
func (s *State) Clone() *State {
	c := &State{
		Clock:             s.Clock,
		FieldSize:         s.FieldSize,
		PeriodIndex:       s.PeriodIndex,
		PeriodCount:       s.PeriodCount,
		PeriodElapsed:     append([]time.Duration(nil), s.PeriodElapsed...),
		PeriodAdjustments: append([]time.Duration(nil), s.PeriodAdjustments...),
		PeriodStoppage:    append([]time.Duration(nil), s.PeriodStoppage...),
		PeriodStart:       s.PeriodStart,
		Phase:             s.Phase,
	}
	c.Roster = make([]*PlayerStint, len(s.Roster))
	c.index = make(map[PlayerID]*PlayerStint, len(s.Roster))
	for i, p := range s.Roster {
		cp := *p
		c.Roster[i] = &cp
		c.index[cp.ID] = &cp
	}
	return c
}
