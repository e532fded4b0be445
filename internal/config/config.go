// Package config loads sideline configuration from HCL: match settings,
// the formation, the configured position set, and the team sheet.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/sidelined/internal/formation"
	"github.com/lox/sidelined/internal/match"
	"github.com/lox/sidelined/internal/roster"
)

// Config is the fully parsed and validated configuration.
type Config struct {
	PeriodCount       int
	PeriodLength      time.Duration
	HalftimeBreak     time.Duration
	Formation         string
	Slots             []match.Position // set when the config uses explicit slots
	Positions         []match.Position
	FairnessTolerance float64
	SaveDir           string
	UndoDepth         int
	Players           []roster.Player
}

type rawConfig struct {
	Match   *rawMatch   `hcl:"match,block"`
	Players []rawPlayer `hcl:"player,block"`
}

type rawMatch struct {
	PeriodCount       int      `hcl:"period_count,optional"`
	PeriodLength      string   `hcl:"period_length,optional"`
	HalftimeBreak     string   `hcl:"halftime_break,optional"`
	Formation         string   `hcl:"formation,optional"`
	Slots             []string `hcl:"slots,optional"`
	Positions         []string `hcl:"positions,optional"`
	FairnessTolerance float64  `hcl:"fairness_tolerance,optional"`
	SaveDir           string   `hcl:"save_dir,optional"`
	UndoDepth         int      `hcl:"undo_depth,optional"`
}

type rawPlayer struct {
	Name      string   `hcl:"name,label"`
	Number    string   `hcl:"number,optional"`
	Preferred []string `hcl:"preferred,optional"`
}

// Default returns the out-of-the-box configuration: two 30 minute halves
// of 11-a-side 4-4-2.
func Default() *Config {
	return &Config{
		PeriodCount:       2,
		PeriodLength:      30 * time.Minute,
		HalftimeBreak:     10 * time.Minute,
		Formation:         "4-4-2",
		Positions:         append([]match.Position(nil), match.DefaultPositions...),
		FairnessTolerance: match.DefaultTolerance,
		SaveDir:           "matches",
		UndoDepth:         match.DefaultUndoDepth,
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults, same as the rest of our tooling.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, filename)
}

// Parse decodes and validates HCL configuration source.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw rawConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if m := raw.Match; m != nil {
		if m.PeriodCount != 0 {
			cfg.PeriodCount = m.PeriodCount
		}
		if m.PeriodLength != "" {
			d, err := time.ParseDuration(m.PeriodLength)
			if err != nil {
				return nil, fmt.Errorf("period_length: %w", err)
			}
			cfg.PeriodLength = d
		}
		if m.HalftimeBreak != "" {
			d, err := time.ParseDuration(m.HalftimeBreak)
			if err != nil {
				return nil, fmt.Errorf("halftime_break: %w", err)
			}
			cfg.HalftimeBreak = d
		}
		if m.Formation != "" {
			cfg.Formation = m.Formation
		}
		for _, s := range m.Slots {
			cfg.Slots = append(cfg.Slots, match.ParsePosition(s))
		}
		if len(m.Positions) > 0 {
			cfg.Positions = cfg.Positions[:0]
			for _, p := range m.Positions {
				cfg.Positions = append(cfg.Positions, match.ParsePosition(p))
			}
		}
		if m.FairnessTolerance != 0 {
			cfg.FairnessTolerance = m.FairnessTolerance
		}
		if m.SaveDir != "" {
			cfg.SaveDir = m.SaveDir
		}
		if m.UndoDepth != 0 {
			cfg.UndoDepth = m.UndoDepth
		}
	}

	for _, rp := range raw.Players {
		cfg.Players = append(cfg.Players, roster.Player{
			ID:        match.PlayerID(rp.Name),
			Number:    rp.Number,
			Preferred: parsePositions(rp.Preferred),
		})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parsePositions(raw []string) []match.Position {
	var out []match.Position
	for _, r := range raw {
		if code := match.ParsePosition(r); code != "" {
			out = append(out, code)
		}
	}
	return out
}

// Validate checks the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.PeriodCount < 1 {
		return fmt.Errorf("period_count must be at least 1, got %d", c.PeriodCount)
	}
	if c.PeriodLength < time.Minute {
		return fmt.Errorf("period_length must be at least 1m, got %s", c.PeriodLength)
	}
	if c.FairnessTolerance <= 0 || c.FairnessTolerance >= 1 {
		return fmt.Errorf("fairness_tolerance must be in (0, 1), got %g", c.FairnessTolerance)
	}
	if len(c.Positions) == 0 {
		return fmt.Errorf("position set must not be empty")
	}
	if _, err := c.ResolveFormation(); err != nil {
		return err
	}
	for _, p := range c.Players {
		if err := roster.Validate(p); err != nil {
			return fmt.Errorf("player %q: %w", p.ID, err)
		}
	}
	return nil
}

// PositionSet returns the configured position code set.
func (c *Config) PositionSet() match.PositionSet {
	return match.NewPositionSet(c.Positions...)
}

// ResolveFormation returns the formation the match will be validated
// against: explicit slots when given, otherwise the named template.
func (c *Config) ResolveFormation() (formation.Formation, error) {
	if len(c.Slots) > 0 {
		return formation.Custom(c.Slots, c.PositionSet())
	}
	f, err := formation.Lookup(c.Formation)
	if err != nil {
		return formation.Formation{}, err
	}
	if err := f.Validate(c.PositionSet()); err != nil {
		return formation.Formation{}, err
	}
	return f, nil
}

// Roster builds the team sheet from the player blocks.
func (c *Config) Roster() (*roster.Roster, error) {
	r := roster.New()
	for _, p := range c.Players {
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}
