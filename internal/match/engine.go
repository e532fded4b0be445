package match

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Lineup assigns starting players to field positions.
type Lineup map[PlayerID]Position

// DefaultUndoDepth bounds the undo stack.
const DefaultUndoDepth = 50

// Engine is the serialized entry point for every state-changing command.
// Each command validates against the current state, snapshots it, applies
// the mutation, and rolls back to the snapshot if anything fails mid-way,
// so partial mutation is never observable. Successful commands push the
// snapshot onto a bounded undo stack.
//
// One Engine owns one State. Multiple simultaneous matches get one Engine
// each; nothing here is process-global.
type Engine struct {
	mu        sync.Mutex
	clock     quartz.Clock
	logger    *log.Logger
	bus       EventBus
	positions PositionSet
	slots     []Position
	state     *State
	undo      []undoRecord
	undoDepth int
}

type undoRecord struct {
	kind EventType
	pre  *State
	at   time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock injects the time source. Tests pass a *quartz.Mock.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithPositions sets the configured position code set.
func WithPositions(set PositionSet) Option {
	return func(e *Engine) { e.positions = set }
}

// WithSlots sets the required on-field slots. The slice may repeat codes
// (two CBs in a back four); a starting lineup must fill it exactly.
func WithSlots(slots []Position) Option {
	return func(e *Engine) { e.slots = append([]Position(nil), slots...) }
}

// WithEventBus sets the bus successful commands publish to.
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithUndoDepth bounds the undo stack.
func WithUndoDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.undoDepth = n
		}
	}
}

// NewEngine creates an engine owning the given state.
func NewEngine(state *State, logger *log.Logger, opts ...Option) *Engine {
	e := &Engine{
		clock:     quartz.NewReal(),
		logger:    logger.WithPrefix("engine"),
		bus:       NewEventBus(),
		positions: NewPositionSet(DefaultPositions...),
		state:     state,
		undoDepth: DefaultUndoDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	if len(e.slots) == 0 {
		e.slots = defaultSlots(state.FieldSize)
	}
	state.EnsureTimerLists()
	return e
}

// defaultSlots is the 4-4-2 shape trimmed or grown to the field size.
func defaultSlots(fieldSize int) []Position {
	base := []Position{"GK", "LB", "CB", "CB", "RB", "LM", "CM", "CM", "RM", "ST", "ST"}
	if fieldSize <= 0 || fieldSize > len(base) {
		return base
	}
	return base[:fieldSize]
}

// Bus returns the engine's event bus for subscription.
func (e *Engine) Bus() EventBus { return e.bus }

// Snapshot returns a deep copy of the current state. Safe to hold across
// later commands; mutating it has no effect on the live match.
func (e *Engine) Snapshot() *State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.EnsureTimerLists()
	return e.state.Clone()
}

// Now returns the engine's current time. Display layers use it so their
// reads agree with the injected clock.
func (e *Engine) Now() time.Time {
	return e.clock.Now()
}

// execute runs the uniform command pipeline under the engine lock:
// normalize, validate (no mutation on failure), snapshot, apply with
// rollback, record for undo, publish.
func (e *Engine) execute(kind EventType, validate func(*State) error, apply func(*State, time.Time) error) (*State, error) {
	return e.executeEvent(Event{Type: kind}, validate, apply)
}

// executeEvent is execute for commands that carry extra event payload
// (substitutions publish who went off and on).
func (e *Engine) executeEvent(ev Event, validate func(*State) error, apply func(*State, time.Time) error) (*State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kind := ev.Type
	now := e.clock.Now()
	e.state.EnsureTimerLists()

	if e.state.Phase == Ended {
		err := fmt.Errorf("%w: no commands accepted after end of game", ErrGameEnded)
		e.logger.Warn("Command rejected", "command", kind, "error", err)
		return nil, err
	}
	if validate != nil {
		if err := validate(e.state); err != nil {
			e.logger.Warn("Command rejected", "command", kind, "phase", e.state.Phase, "error", err)
			return nil, err
		}
	}

	pre := e.state.Clone()
	if err := apply(e.state, now); err != nil {
		e.state = pre
		e.logger.Error("Command failed, state rolled back",
			"command", kind,
			"phase", pre.Phase,
			"period", pre.PeriodIndex,
			"elapsed", pre.Elapsed(now),
			"error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrCommandFailed, kind, err)
	}

	e.pushUndo(undoRecord{kind: kind, pre: pre, at: now})
	e.logger.Info("Command applied", "command", kind, "phase", e.state.Phase, "period", e.state.PeriodIndex)
	e.publish(ev, now)
	return e.state.Clone(), nil
}

func (e *Engine) pushUndo(rec undoRecord) {
	e.undo = append(e.undo, rec)
	if len(e.undo) > e.undoDepth {
		e.undo = e.undo[1:]
	}
}

func (e *Engine) publish(ev Event, now time.Time) {
	ev.At = now
	ev.Period = e.state.PeriodIndex
	ev.Elapsed = e.state.Elapsed(now)
	e.bus.Publish(ev)
}

// StartGame validates the starting lineup and transitions Setup to
// Running, starting the clock and every starter's stint.
func (e *Engine) StartGame(lineup Lineup) (*State, error) {
	return e.execute(EventTypeGameStart,
		func(s *State) error {
			if s.Phase != Setup {
				return fmt.Errorf("%w: start game from %s", ErrInvalidTransition, s.Phase)
			}
			if len(s.Roster) < len(e.slots) {
				return fmt.Errorf("%w: have %d players, need %d", ErrRosterIncomplete, len(s.Roster), len(e.slots))
			}
			return e.validateLineup(s, lineup)
		},
		func(s *State, now time.Time) error {
			if err := s.Clock.Start(now); err != nil {
				return err
			}
			at := s.Clock.Elapsed(now)
			s.Phase = Running
			s.PeriodIndex = 0
			s.PeriodStart = at
			for _, p := range s.Roster {
				pos, ok := lineup[p.ID]
				if !ok {
					continue
				}
				if err := p.StartStint(at, pos); err != nil {
					return err
				}
			}
			return nil
		})
}

// validateLineup checks the lineup fills the required slots exactly:
// every player exists, every code is in the configured set, and the
// multiset of assigned positions equals the multiset of required slots.
func (e *Engine) validateLineup(s *State, lineup Lineup) error {
	if len(lineup) != len(e.slots) {
		return fmt.Errorf("%w: lineup has %d players, need %d", ErrRosterIncomplete, len(lineup), len(e.slots))
	}
	required := make(map[Position]int, len(e.slots))
	for _, slot := range e.slots {
		required[slot]++
	}
	for id, pos := range lineup {
		if _, err := s.Player(id); err != nil {
			return err
		}
		if err := e.positions.Validate(pos); err != nil {
			return err
		}
		if required[pos] == 0 {
			return fmt.Errorf("%w: position %s assigned more times than the formation allows", ErrRosterIncomplete, pos)
		}
		required[pos]--
	}
	for pos, n := range required {
		if n > 0 {
			return fmt.Errorf("%w: %d %s slot(s) unfilled", ErrRosterIncomplete, n, pos)
		}
	}
	return nil
}

// Pause stops the clock. Stints are computed against match elapsed time,
// so pausing the clock freezes every on-field player's counted time with
// no per-player bookkeeping; the period's live portion is folded into
// PeriodElapsed so the live marker stays consistent.
func (e *Engine) Pause() (*State, error) {
	return e.execute(EventTypeGamePause,
		func(s *State) error {
			if s.Phase != Running {
				return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, s.Phase)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			s.foldPeriod(now)
			if err := s.Clock.Pause(now); err != nil {
				return err
			}
			s.Phase = Paused
			return nil
		})
}

// Resume restarts the clock after a pause.
func (e *Engine) Resume() (*State, error) {
	return e.execute(EventTypeGameResume,
		func(s *State) error {
			if s.Phase != Paused {
				return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, s.Phase)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			if err := s.Clock.Start(now); err != nil {
				return err
			}
			s.PeriodStart = s.Clock.Elapsed(now)
			s.Phase = Running
			return nil
		})
}

// EndPeriod closes the current period and enters the period break. Only
// valid while running with a later period remaining; ending the final
// period is EndGame's job.
func (e *Engine) EndPeriod() (*State, error) {
	return e.execute(EventTypePeriodEnd,
		func(s *State) error {
			if s.Phase != Running {
				return fmt.Errorf("%w: end period from %s", ErrInvalidTransition, s.Phase)
			}
			if s.PeriodIndex >= s.PeriodCount-1 {
				return fmt.Errorf("%w: period %d is the last", ErrInvalidTransition, s.PeriodIndex)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			s.foldPeriod(now)
			if err := s.Clock.Pause(now); err != nil {
				return err
			}
			s.PeriodIndex++
			s.Phase = PeriodBreak
			return nil
		})
}

// ResumePeriod starts the next period after a break.
func (e *Engine) ResumePeriod() (*State, error) {
	return e.execute(EventTypePeriodResume,
		func(s *State) error {
			if s.Phase != PeriodBreak {
				return fmt.Errorf("%w: resume period from %s", ErrInvalidTransition, s.Phase)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			if err := s.Clock.Start(now); err != nil {
				return err
			}
			s.PeriodStart = s.Clock.Elapsed(now)
			s.Phase = Running
			return nil
		})
}

// Substitute benches out and fields in at out's vacated position. The
// vacated position is captured from EndStint's return value; EndStint
// clears the field as a side effect, so ordering matters here.
func (e *Engine) Substitute(out, in PlayerID) (*State, error) {
	st, err := e.executeEvent(Event{Type: EventTypeSubstitution, Out: out, In: in},
		func(s *State) error {
			if out == in {
				return fmt.Errorf("%w: %s for themselves", ErrInvalidSubstitution, out)
			}
			outP, err := s.Player(out)
			if err != nil {
				return err
			}
			inP, err := s.Player(in)
			if err != nil {
				return err
			}
			if !outP.OnField {
				return fmt.Errorf("%w: %s is not on the field", ErrInvalidSubstitution, out)
			}
			if inP.OnField {
				return fmt.Errorf("%w: %s is already on the field", ErrInvalidSubstitution, in)
			}
			if s.Phase == Setup {
				return fmt.Errorf("%w: substitute before kickoff", ErrInvalidTransition)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			at := s.Clock.Elapsed(now)
			outP, err := s.Player(out)
			if err != nil {
				return err
			}
			inP, err := s.Player(in)
			if err != nil {
				return err
			}
			vacated, err := outP.EndStint(at)
			if err != nil {
				return err
			}
			return inP.StartStint(at, vacated)
		})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Substitution", "out", out, "in", in)
	return st, nil
}

// AdjustTime applies a manual correction to the current period. Negative
// values subtract.
func (e *Engine) AdjustTime(d time.Duration) (*State, error) {
	return e.execute(EventTypeAdjustment,
		func(s *State) error {
			if s.Phase == Setup {
				return fmt.Errorf("%w: adjust time before kickoff", ErrInvalidTransition)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			s.PeriodAdjustments[s.PeriodIndex] += d
			return nil
		})
}

// AddStoppage records stoppage time against the current period.
func (e *Engine) AddStoppage(d time.Duration) (*State, error) {
	return e.execute(EventTypeStoppage,
		func(s *State) error {
			if s.Phase == Setup {
				return fmt.Errorf("%w: add stoppage before kickoff", ErrInvalidTransition)
			}
			if d < 0 {
				return fmt.Errorf("stoppage must be positive, got %s", d)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			s.PeriodStoppage[s.PeriodIndex] += d
			return nil
		})
}

// EndGame terminates the match. All on-field stints are folded into the
// players' accumulated totals, the clock stops, and every later command
// fails with ErrGameEnded.
func (e *Engine) EndGame() (*State, error) {
	return e.execute(EventTypeGameEnd,
		func(s *State) error {
			if s.Phase != Running && s.Phase != Paused {
				return fmt.Errorf("%w: end game from %s", ErrInvalidTransition, s.Phase)
			}
			return nil
		},
		func(s *State, now time.Time) error {
			if s.Clock.Running {
				s.foldPeriod(now)
				if err := s.Clock.Pause(now); err != nil {
					return err
				}
			}
			at := s.Clock.Elapsed(now)
			for _, p := range s.Roster {
				if !p.OnField {
					continue
				}
				if _, err := p.EndStint(at); err != nil {
					return err
				}
			}
			s.Phase = Ended
			return nil
		})
}

// Undo restores the state captured before the most recent command and
// pops it from the stack. Repeated calls walk further back until the
// stack is empty.
func (e *Engine) Undo() (*State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if e.state.Phase == Ended {
		err := fmt.Errorf("%w: no commands accepted after end of game", ErrGameEnded)
		e.logger.Warn("Command rejected", "command", EventTypeUndo, "error", err)
		return nil, err
	}
	if len(e.undo) == 0 {
		e.logger.Warn("Command rejected", "command", EventTypeUndo, "error", ErrNothingToUndo)
		return nil, ErrNothingToUndo
	}

	rec := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.state = rec.pre
	e.state.EnsureTimerLists()

	e.logger.Info("Command undone", "command", rec.kind, "issued_at", rec.at)
	e.publish(Event{Type: EventTypeUndo}, now)
	return e.state.Clone(), nil
}

// CanUndo reports whether an undo record is available.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undo) > 0 && e.state.Phase != Ended
}

// foldPeriod folds the live portion of the current period into
// PeriodElapsed and re-anchors the live marker.
func (s *State) foldPeriod(now time.Time) {
	at := s.Clock.Elapsed(now)
	s.PeriodElapsed[s.PeriodIndex] += at - s.PeriodStart
	s.PeriodStart = at
}
