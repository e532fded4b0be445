package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lox/sidelined/internal/match"
)

func buildFixture(t *testing.T) (*match.State, time.Time) {
	t.Helper()

	s, err := match.NewState(1, 1, []match.PlayerID{"alex", "blair", "casey"})
	require.NoError(t, err)

	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Clock.Start(now))
	now = now.Add(30 * time.Minute)
	require.NoError(t, s.Clock.Pause(now))
	s.PeriodStoppage[0] = 2 * time.Minute

	alex, _ := s.Player("alex")
	alex.Accumulated = 20 * time.Minute
	blair, _ := s.Player("blair")
	blair.Accumulated = 10 * time.Minute
	return s, now
}

func TestBuildOrdersMostUnderServedFirst(t *testing.T) {
	t.Parallel()

	s, now := buildFixture(t)
	r := Build(s, now, 0.10)

	// One slot over 30 minutes across three players: 10 minutes each.
	require.Equal(t, 10*time.Minute, r.Target)
	require.Len(t, r.Rows, 3)
	require.Equal(t, match.PlayerID("casey"), r.Rows[0].ID, "zero minutes sorts first")
	require.Equal(t, match.PlayerID("blair"), r.Rows[1].ID)
	require.Equal(t, match.PlayerID("alex"), r.Rows[2].ID)

	require.Equal(t, 1, r.UnderCount)
	require.Equal(t, 1, r.FairCount)
	require.Equal(t, 1, r.OverCount)

	require.Equal(t, 10*time.Minute, r.Average)
	require.Equal(t, 10*time.Minute, r.Median)
	require.Equal(t, time.Duration(0), r.Min)
	require.Equal(t, 20*time.Minute, r.Max)
	require.Equal(t, 2*time.Minute, r.Stoppage)
}

func TestCSV(t *testing.T) {
	t.Parallel()

	s, now := buildFixture(t)
	out, err := CSV(Build(s, now, 0.10))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Equal(t, "Sidelined Report", lines[0])
	require.Contains(t, out, "Name,On Field,Position,Total,Target,Deviation,Status")
	require.Contains(t, out, "casey,false,,0,600,-600,under")
	require.Contains(t, out, "alex,false,,1200,600,600,over")
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{45 * time.Minute, "45:00"},
		{100 * time.Minute, "100:00"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.d); got != tt.want {
			t.Errorf("FormatClock(%s) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
