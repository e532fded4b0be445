package match

import "time"

// Classification buckets a player's playing time against the equal-share
// target.
type Classification int

const (
	Under Classification = iota
	Fair
	Over
)

// String returns the string representation of a classification.
func (c Classification) String() string {
	switch c {
	case Under:
		return "under"
	case Fair:
		return "fair"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// DefaultTolerance is the band around the target treated as fair.
const DefaultTolerance = 0.10

// PlayerFairness is one player's row in a fairness report.
type PlayerFairness struct {
	ID             PlayerID
	OnField        bool
	Position       Position
	Total          time.Duration
	Target         time.Duration
	Deviation      time.Duration
	Classification Classification
}

// FairnessReport is a read-only projection of playing-time distribution.
type FairnessReport struct {
	GeneratedAt time.Time
	Elapsed     time.Duration
	Target      time.Duration
	Tolerance   float64
	Players     []PlayerFairness
}

// Fairness computes per-player deviation from the ideal equal-time
// target: total on-field slot time divided evenly across the roster.
// Pure; safe to call at any phase and concurrently with reads.
func Fairness(s *State, now time.Time, tolerance float64) FairnessReport {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	elapsed := s.Elapsed(now)

	var target time.Duration
	if n := len(s.Roster); n > 0 {
		target = elapsed * time.Duration(s.FieldSize) / time.Duration(n)
	}

	report := FairnessReport{
		GeneratedAt: now,
		Elapsed:     elapsed,
		Target:      target,
		Tolerance:   tolerance,
		Players:     make([]PlayerFairness, 0, len(s.Roster)),
	}
	for _, p := range s.Roster {
		total := p.Total(elapsed)
		report.Players = append(report.Players, PlayerFairness{
			ID:             p.ID,
			OnField:        p.OnField,
			Position:       p.Position,
			Total:          total,
			Target:         target,
			Deviation:      total - target,
			Classification: Classify(total, target, tolerance),
		})
	}
	return report
}

// Classify buckets total against target with a tolerance band expressed
// as a fraction of the target.
func Classify(total, target time.Duration, tolerance float64) Classification {
	band := time.Duration(float64(target) * tolerance)
	switch {
	case total < target-band:
		return Under
	case total > target+band:
		return Over
	default:
		return Fair
	}
}
