package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	target := 15 * time.Minute
	tests := []struct {
		total time.Duration
		want  Classification
	}{
		{13 * time.Minute, Under}, // below the 10% band
		{14 * time.Minute, Fair},  // inside the band
		{15 * time.Minute, Fair},
		{16 * time.Minute, Fair},
		{17 * time.Minute, Over}, // above the band
		{0, Under},
	}
	for _, tt := range tests {
		if got := Classify(tt.total, target, 0.10); got != tt.want {
			t.Errorf("Classify(%s, %s) = %s, want %s", tt.total, target, got, tt.want)
		}
	}
}

func TestFairnessScenario(t *testing.T) {
	t.Parallel()

	// Two players, one slot, 30 minutes of match time: target is 15
	// minutes each. One played it all, the other none.
	s, err := NewState(1, 1, []PlayerID{"alex", "blair"})
	require.NoError(t, err)

	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Clock.Start(now))
	now = now.Add(30 * time.Minute)
	require.NoError(t, s.Clock.Pause(now))

	alex, _ := s.Player("alex")
	alex.Accumulated = 30 * time.Minute

	report := Fairness(s, now, 0.10)
	require.Equal(t, 15*time.Minute, report.Target)
	require.Len(t, report.Players, 2)

	require.Equal(t, Over, report.Players[0].Classification)
	require.Equal(t, 15*time.Minute, report.Players[0].Deviation)
	require.Equal(t, Under, report.Players[1].Classification)
	require.Equal(t, -15*time.Minute, report.Players[1].Deviation)
}

func TestFairnessIncludesLiveStints(t *testing.T) {
	t.Parallel()

	s, err := NewState(1, 1, []PlayerID{"alex", "blair"})
	require.NoError(t, err)

	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Clock.Start(now))
	alex, _ := s.Player("alex")
	require.NoError(t, alex.StartStint(0, "GK"))

	report := Fairness(s, now.Add(20*time.Minute), 0.10)
	require.Equal(t, 20*time.Minute, report.Players[0].Total, "live stint counts toward the report")
	require.Equal(t, Setup, s.Phase, "fairness is read-only")
	require.True(t, alex.OnField)
}

func TestFairnessEmptyRoster(t *testing.T) {
	t.Parallel()

	s, err := NewState(2, 11, nil)
	require.NoError(t, err)
	report := Fairness(s, time.Now(), 0)
	require.Zero(t, report.Target)
	require.Empty(t, report.Players)
	require.Equal(t, DefaultTolerance, report.Tolerance)
}
