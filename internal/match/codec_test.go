package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()

	s, err := NewState(2, 11, []PlayerID{"alex", "blair", "casey"})
	require.NoError(t, err)

	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Clock.Start(now))
	require.NoError(t, s.Clock.Pause(now.Add(20*time.Minute)))
	s.Phase = Paused
	s.PeriodElapsed[0] = 20 * time.Minute
	s.PeriodAdjustments[0] = -30 * time.Second
	s.PeriodStoppage[1] = 2 * time.Minute
	s.PeriodStart = 20 * time.Minute

	alex, _ := s.Player("alex")
	require.NoError(t, alex.StartStint(0, "GK"))
	blair, _ := s.Player("blair")
	blair.Accumulated = 12 * time.Minute

	data, err := MarshalState(s)
	require.NoError(t, err)

	got, err := UnmarshalState(data)
	require.NoError(t, err)

	require.Equal(t, s.Phase, got.Phase)
	require.Equal(t, s.Clock.Accumulated, got.Clock.Accumulated)
	require.Equal(t, s.PeriodElapsed, got.PeriodElapsed)
	require.Equal(t, s.PeriodAdjustments, got.PeriodAdjustments)
	require.Equal(t, s.PeriodStoppage, got.PeriodStoppage)
	require.Equal(t, s.FieldSize, got.FieldSize)

	gotAlex, err := got.Player("alex")
	require.NoError(t, err)
	require.True(t, gotAlex.OnField)
	require.Equal(t, Position("GK"), gotAlex.Position)

	gotBlair, err := got.Player("blair")
	require.NoError(t, err)
	require.Equal(t, 12*time.Minute, gotBlair.Accumulated)

	// Roster order survives encoding.
	require.Equal(t, PlayerID("alex"), got.Roster[0].ID)
	require.Equal(t, PlayerID("casey"), got.Roster[2].ID)
}

func TestUnmarshalNormalizesPeriodLists(t *testing.T) {
	t.Parallel()

	// A save with period_count 2 but empty lists must come back sized.
	raw := []byte(`{
		"running": false,
		"period_count": 2,
		"current_period_index": 0,
		"phase": "paused",
		"players": [{"id": "alex", "total_seconds": 600}]
	}`)

	s, err := UnmarshalState(raw)
	require.NoError(t, err)
	require.Len(t, s.PeriodElapsed, 2)
	require.Len(t, s.PeriodAdjustments, 2)
	require.Len(t, s.PeriodStoppage, 2)
}

func TestUnmarshalRejectsUnknownPhase(t *testing.T) {
	t.Parallel()

	_, err := UnmarshalState([]byte(`{"phase": "overtime", "period_count": 1}`))
	require.Error(t, err)
}
