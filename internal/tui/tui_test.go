package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sidelined/internal/match"
	"github.com/lox/sidelined/internal/store"
)

func newTestConsole(t *testing.T) (*Model, *quartz.Mock) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	roster := []match.PlayerID{"alex", "blair", "casey", "dana", "eli"}
	state, err := match.NewState(2, 3, roster)
	require.NoError(t, err)

	mock := quartz.NewMock(t)
	engine := match.NewEngine(state, logger,
		match.WithClock(mock),
		match.WithSlots([]match.Position{"GK", "CB", "ST"}),
	)

	st, err := store.New(t.TempDir(), logger)
	require.NoError(t, err)

	lineup := match.Lineup{"alex": "GK", "blair": "CB", "casey": "ST"}
	return NewWithOptions(engine, lineup, st, "saturday", match.DefaultTolerance, logger, true), mock
}

func capturedContains(t *testing.T, m *Model, want string) {
	t.Helper()
	for _, entry := range m.GetCapturedLog() {
		if strings.Contains(entry, want) {
			return
		}
	}
	t.Fatalf("captured log missing %q:\n%s", want, strings.Join(m.GetCapturedLog(), "\n"))
}

func TestConsoleCommands(t *testing.T) {
	t.Run("test mode captures log entries", func(t *testing.T) {
		m, _ := newTestConsole(t)
		assert.Empty(t, m.GetCapturedLog())

		m.AddLogEntry("kickoff at noon")
		require.Len(t, m.GetCapturedLog(), 1)
		assert.Equal(t, "kickoff at noon", m.GetCapturedLog()[0])
	})

	t.Run("start and substitution flow", func(t *testing.T) {
		m, mock := newTestConsole(t)

		assert.False(t, m.ProcessCommand("start"))
		capturedContains(t, m, "game started")

		mock.Advance(5 * time.Minute)
		assert.False(t, m.ProcessCommand("sub casey dana"))
		capturedContains(t, m, "sub: casey off, dana on")

		s := m.engine.Snapshot()
		dana, err := s.Player("dana")
		require.NoError(t, err)
		assert.True(t, dana.OnField)
		assert.Equal(t, match.Position("ST"), dana.Position)
	})

	t.Run("rejected command logs the error", func(t *testing.T) {
		m, _ := newTestConsole(t)

		// Pausing before kickoff is invalid
		assert.False(t, m.ProcessCommand("pause"))
		capturedContains(t, m, "invalid")
		assert.Equal(t, match.Setup, m.engine.Snapshot().Phase)
	})

	t.Run("unknown command is reported not executed", func(t *testing.T) {
		m, _ := newTestConsole(t)
		assert.False(t, m.ProcessCommand("teleport"))
		capturedContains(t, m, "unknown command")
	})

	t.Run("bare integer durations mean minutes", func(t *testing.T) {
		m, mock := newTestConsole(t)
		require.False(t, m.ProcessCommand("start"))
		mock.Advance(10 * time.Minute)

		require.False(t, m.ProcessCommand("stoppage 2"))
		assert.Equal(t, 2*time.Minute, m.engine.Snapshot().TotalStoppage())

		require.False(t, m.ProcessCommand("adjust -30s"))
		assert.Equal(t, -30*time.Second, m.engine.Snapshot().TotalAdjustments())
	})

	t.Run("undo reverts the last command", func(t *testing.T) {
		m, mock := newTestConsole(t)
		require.False(t, m.ProcessCommand("start"))
		mock.Advance(time.Minute)
		require.False(t, m.ProcessCommand("sub casey dana"))

		require.False(t, m.ProcessCommand("undo"))
		capturedContains(t, m, "last command undone")

		casey, err := m.engine.Snapshot().Player("casey")
		require.NoError(t, err)
		assert.True(t, casey.OnField)
	})

	t.Run("save writes to disk and report prints a table", func(t *testing.T) {
		m, mock := newTestConsole(t)
		require.False(t, m.ProcessCommand("start"))
		mock.Advance(12 * time.Minute)

		require.False(t, m.ProcessCommand("save"))
		capturedContains(t, m, "saved to")

		loaded, err := m.store.Load("saturday")
		require.NoError(t, err)
		assert.Equal(t, match.Running, loaded.Phase)

		require.False(t, m.ProcessCommand("report"))
		capturedContains(t, m, "Playing time at 12:00")
		capturedContains(t, m, "alex")
	})

	t.Run("quit returns true without touching the match", func(t *testing.T) {
		m, _ := newTestConsole(t)
		assert.True(t, m.ProcessCommand("quit"))
		assert.Equal(t, match.Setup, m.engine.Snapshot().Phase)
	})
}
