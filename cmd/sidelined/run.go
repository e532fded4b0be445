package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/lox/sidelined/internal/config"
	"github.com/lox/sidelined/internal/match"
	"github.com/lox/sidelined/internal/store"
	"github.com/lox/sidelined/internal/tui"
)

// RunCmd starts the interactive console for one match
type RunCmd struct {
	Config    string        `kong:"default='sidelined.hcl',help='Match configuration file'"`
	Name      string        `kong:"default='',help='Match name used for saves (defaults to today)'"`
	Formation string        `kong:"default='',help='Override the configured formation'"`
	Debug     bool          `kong:"help='Enable debug logging'"`
	LogFile   string        `kong:"default='sidelined.log',help='Debug log destination'"`
	Autosave  time.Duration `kong:"default='30s',help='Interval between automatic saves (0 disables)'"`
}

func (c *RunCmd) Run() error {
	logger, logFile, err := setupLogger(c.Debug, c.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Formation != "" {
		cfg.Formation = c.Formation
		cfg.Slots = nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ros, err := cfg.Roster()
	if err != nil {
		return err
	}
	form, err := cfg.ResolveFormation()
	if err != nil {
		return err
	}
	if ros.Len() < form.FieldSize() {
		return fmt.Errorf("roster has %d players but a %s needs %d on the field",
			ros.Len(), form.Name, form.FieldSize())
	}

	state, err := match.NewState(cfg.PeriodCount, form.FieldSize(), ros.IDs())
	if err != nil {
		return err
	}
	engine := match.NewEngine(state, logger,
		match.WithSlots(form.Slots),
		match.WithPositions(cfg.PositionSet()),
		match.WithUndoDepth(cfg.UndoDepth),
	)

	preferred := make(map[match.PlayerID][]match.Position, ros.Len())
	for _, p := range ros.Players() {
		preferred[p.ID] = p.Preferred
	}
	lineup := form.AutoAssign(preferred)

	st, err := store.New(cfg.SaveDir, logger)
	if err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		name = time.Now().Format("2006-01-02")
	}

	logger.Info("Starting match console",
		"name", name,
		"formation", form.Name,
		"field_size", form.FieldSize(),
		"roster", ros.Len(),
		"periods", cfg.PeriodCount,
	)

	model := tui.New(engine, lineup, st, name, cfg.FairnessTolerance, logger)
	model.SetSchedule(cfg.PeriodLength, cfg.HalftimeBreak)
	program := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(setupSignalHandler(logger))
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		program.Quit()
		return nil
	})
	g.Go(func() error {
		if c.Autosave <= 0 {
			<-ctx.Done()
			return st.Save(name, engine.Snapshot())
		}
		ticker := time.NewTicker(c.Autosave)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				// Final save so a crash-free exit always leaves the
				// latest state on disk.
				return st.Save(name, engine.Snapshot())
			case <-ticker.C:
				if err := st.Save(name, engine.Snapshot()); err != nil {
					logger.Error("Autosave failed", "error", err)
				}
			}
		}
	})
	return g.Wait()
}
