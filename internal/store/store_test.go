package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/sidelined/internal/match"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), log.New(io.Discard))
	require.NoError(t, err)
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	state, err := match.NewState(2, 11, []match.PlayerID{"alex", "blair"})
	require.NoError(t, err)
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, state.Clock.Start(now))
	alex, _ := state.Player("alex")
	require.NoError(t, alex.StartStint(0, "GK"))
	state.Phase = match.Running

	require.NoError(t, s.Save("saturday", state))

	got, err := s.Load("saturday")
	require.NoError(t, err)
	require.Equal(t, match.Running, got.Phase)

	// The open stint survives a save/load cycle.
	gotAlex, err := got.Player("alex")
	require.NoError(t, err)
	require.True(t, gotAlex.OnField)
	require.Len(t, got.PeriodElapsed, 2)
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, err := s.Load("nope")
	require.Error(t, err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := New(dir, log.New(io.Discard))
	require.NoError(t, err)

	state, err := match.NewState(1, 7, []match.PlayerID{"alex"})
	require.NoError(t, err)
	require.NoError(t, s.Save("game", state))
	require.NoError(t, s.Save("game", state)) // overwrite is fine

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "game.json", entries[0].Name())
	require.Equal(t, s.Path("game"), filepath.Join(dir, "game.json"))
}
