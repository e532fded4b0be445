package match

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire representation of State. Durations travel as seconds and the
// clock anchor as RFC 3339 so save files stay readable and editable.
// The structure is stable; add fields, don't reuse.
type stateJSON struct {
	Running           bool         `json:"running"`
	StartedAt         string       `json:"started_at,omitempty"`
	AccumulatedSec    float64      `json:"accumulated_seconds"`
	Players           []playerJSON `json:"players"`
	FieldSize         int          `json:"field_size"`
	PeriodIndex       int          `json:"current_period_index"`
	PeriodCount       int          `json:"period_count"`
	PeriodElapsed     []float64    `json:"period_elapsed"`
	PeriodAdjustments []float64    `json:"period_adjustments"`
	PeriodStoppage    []float64    `json:"period_stoppage"`
	PeriodStartSec    float64      `json:"period_start_seconds"`
	Phase             string       `json:"phase"`
}

type playerJSON struct {
	ID             string  `json:"id"`
	OnField        bool    `json:"on_field"`
	Position       string  `json:"position,omitempty"`
	StintStartSec  float64 `json:"stint_start_seconds"`
	AccumulatedSec float64 `json:"total_seconds"`
}

// MarshalState encodes a state snapshot for the persistence collaborator.
func MarshalState(s *State) ([]byte, error) {
	w := stateJSON{
		Running:           s.Clock.Running,
		AccumulatedSec:    s.Clock.Accumulated.Seconds(),
		FieldSize:         s.FieldSize,
		PeriodIndex:       s.PeriodIndex,
		PeriodCount:       s.PeriodCount,
		PeriodElapsed:     toSeconds(s.PeriodElapsed),
		PeriodAdjustments: toSeconds(s.PeriodAdjustments),
		PeriodStoppage:    toSeconds(s.PeriodStoppage),
		PeriodStartSec:    s.PeriodStart.Seconds(),
		Phase:             s.Phase.String(),
	}
	if !s.Clock.StartedAt.IsZero() {
		w.StartedAt = s.Clock.StartedAt.Format(time.RFC3339Nano)
	}
	for _, p := range s.Roster {
		w.Players = append(w.Players, playerJSON{
			ID:             string(p.ID),
			OnField:        p.OnField,
			Position:       string(p.Position),
			StintStartSec:  p.StintStart.Seconds(),
			AccumulatedSec: p.Accumulated.Seconds(),
		})
	}
	return json.MarshalIndent(w, "", "  ")
}

// UnmarshalState decodes a state snapshot. The decoded state passes
// through EnsureTimerLists before it is returned, so a save produced
// with a different period count can never trigger an index failure.
func UnmarshalState(data []byte) (*State, error) {
	var w stateJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode match state: %w", err)
	}

	s := &State{
		Clock: Clock{
			Running:     w.Running,
			Accumulated: secondsToDuration(w.AccumulatedSec),
		},
		FieldSize:         w.FieldSize,
		PeriodIndex:       w.PeriodIndex,
		PeriodCount:       w.PeriodCount,
		PeriodElapsed:     fromSeconds(w.PeriodElapsed),
		PeriodAdjustments: fromSeconds(w.PeriodAdjustments),
		PeriodStoppage:    fromSeconds(w.PeriodStoppage),
		PeriodStart:       secondsToDuration(w.PeriodStartSec),
	}
	if w.StartedAt != "" {
		at, err := time.Parse(time.RFC3339Nano, w.StartedAt)
		if err != nil {
			return nil, fmt.Errorf("decode match state: bad started_at: %w", err)
		}
		s.Clock.StartedAt = at
	}
	phase, err := parsePhase(w.Phase)
	if err != nil {
		return nil, fmt.Errorf("decode match state: %w", err)
	}
	s.Phase = phase

	for _, pj := range w.Players {
		if err := s.AddPlayer(PlayerID(pj.ID)); err != nil {
			return nil, fmt.Errorf("decode match state: %w", err)
		}
		p := s.Roster[len(s.Roster)-1]
		p.OnField = pj.OnField
		p.Position = Position(pj.Position)
		p.StintStart = secondsToDuration(pj.StintStartSec)
		p.Accumulated = secondsToDuration(pj.AccumulatedSec)
	}

	s.EnsureTimerLists()
	return s, nil
}

func parsePhase(raw string) (Phase, error) {
	switch raw {
	case "", "setup":
		return Setup, nil
	case "running":
		return Running, nil
	case "paused":
		return Paused, nil
	case "period_break":
		return PeriodBreak, nil
	case "ended":
		return Ended, nil
	default:
		return Setup, fmt.Errorf("unknown phase %q", raw)
	}
}

func toSeconds(vals []time.Duration) []float64 {
	out := make([]float64, len(vals))
	for i, d := range vals {
		out[i] = d.Seconds()
	}
	return out
}

func fromSeconds(vals []float64) []time.Duration {
	out := make([]time.Duration, len(vals))
	for i, v := range vals {
		out[i] = secondsToDuration(v)
	}
	return out
}

func secondsToDuration(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
