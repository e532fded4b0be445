package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/sidelined/internal/config"
	"github.com/lox/sidelined/internal/report"
	"github.com/lox/sidelined/internal/store"
)

// ReportCmd prints the playing-time breakdown of a saved match
type ReportCmd struct {
	Name   string `kong:"arg,help='Saved match name (see the save directory for choices)'"`
	Config string `kong:"default='sidelined.hcl',help='Match configuration file'"`
	CSV    bool   `kong:"help='Emit CSV instead of a table'"`
}

func (c *ReportCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	st, err := store.New(cfg.SaveDir, logger)
	if err != nil {
		return err
	}
	state, err := st.Load(c.Name)
	if err != nil {
		return err
	}

	// For paused or ended matches the wall clock is ignored; a match
	// saved while running keeps counting until the final whistle is
	// recorded.
	r := report.Build(state, time.Now(), cfg.FairnessTolerance)

	if c.CSV {
		out, err := report.CSV(r)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}

	fmt.Printf("%s — %s elapsed, target %s per player\n\n",
		c.Name, report.FormatClock(r.Elapsed), report.FormatClock(r.Target))
	fmt.Printf("%-14s %-4s %8s %8s %8s  %s\n", "PLAYER", "POS", "TOTAL", "TARGET", "DELTA", "STATUS")
	for _, row := range r.Rows {
		pos := string(row.Position)
		if !row.OnField {
			pos = "-"
		}
		sign := "+"
		dev := row.Deviation
		if dev < 0 {
			sign = "-"
			dev = -dev
		}
		fmt.Printf("%-14s %-4s %8s %8s %s%7s  %s\n",
			row.ID, pos,
			report.FormatClock(row.Total),
			report.FormatClock(row.Target),
			sign, report.FormatClock(dev),
			row.Classification)
	}
	fmt.Printf("\nunder %d · fair %d · over %d · median %s · stoppage %s\n",
		r.UnderCount, r.FairCount, r.OverCount,
		report.FormatClock(r.Median), report.FormatClock(r.Stoppage))
	return nil
}
