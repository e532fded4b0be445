// Package match implements the game clock and substitution state machine
// for a live sporting match.
//
// The main type is Engine, which owns one State (clock, roster of stint
// trackers, per-period accounting) and exposes every state-changing
// operation as a command: validate, snapshot, apply, roll back on failure.
// Commands execute one at a time under the engine lock; reads return deep
// copies so display layers can poll freely.
//
// # Basic Usage
//
//	state, _ := match.NewState(2, 11, roster)
//	engine := match.NewEngine(state, logger, match.WithSlots(slots))
//	if _, err := engine.StartGame(lineup); err != nil { ... }
//	engine.Substitute("dana", "finn")
//	engine.Undo()
//
// # Deterministic Testing
//
// Time is injected via coder/quartz. Tests pass a *quartz.Mock and
// advance it explicitly:
//
//	mock := quartz.NewMock(t)
//	engine := match.NewEngine(state, logger, match.WithClock(mock))
//	mock.Advance(10 * time.Minute)
//
// # Time Model
//
// Stint boundaries are stored as offsets into match elapsed time, not
// wall-clock timestamps. Playing time therefore accrues only while the
// match clock runs: pausing the clock freezes every on-field stint with
// no per-player writes, and accumulated time can never double-count or
// lose an interval across pause/resume, substitution, or period breaks.
package match
