// Package report renders playing-time reports from match snapshots. It
// is a pure consumer of the core's read interface: nothing here mutates
// match state.
package report

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lox/sidelined/internal/match"
)

// Row is one player's line in a game report.
type Row struct {
	ID             match.PlayerID
	OnField        bool
	Position       match.Position
	Total          time.Duration
	Target         time.Duration
	Deviation      time.Duration
	Classification match.Classification
}

// Report summarizes playing-time distribution at a point in time.
type Report struct {
	GeneratedAt time.Time
	Elapsed     time.Duration
	Stoppage    time.Duration
	Adjustments time.Duration
	Target      time.Duration
	Rows        []Row

	Average time.Duration
	Median  time.Duration
	Min     time.Duration
	Max     time.Duration

	UnderCount int
	FairCount  int
	OverCount  int
}

// Build produces a report from a snapshot. Rows are ordered most
// under-served first so the next substitution is the top of the list.
func Build(state *match.State, now time.Time, tolerance float64) Report {
	fairness := match.Fairness(state, now, tolerance)

	r := Report{
		GeneratedAt: fairness.GeneratedAt,
		Elapsed:     fairness.Elapsed,
		Stoppage:    state.TotalStoppage(),
		Adjustments: state.TotalAdjustments(),
		Target:      fairness.Target,
	}
	for _, p := range fairness.Players {
		r.Rows = append(r.Rows, Row{
			ID:             p.ID,
			OnField:        p.OnField,
			Position:       p.Position,
			Total:          p.Total,
			Target:         p.Target,
			Deviation:      p.Deviation,
			Classification: p.Classification,
		})
		switch p.Classification {
		case match.Under:
			r.UnderCount++
		case match.Over:
			r.OverCount++
		default:
			r.FairCount++
		}
	}

	sort.SliceStable(r.Rows, func(i, j int) bool {
		if r.Rows[i].Deviation != r.Rows[j].Deviation {
			return r.Rows[i].Deviation < r.Rows[j].Deviation
		}
		return r.Rows[i].ID < r.Rows[j].ID
	})

	if len(r.Rows) > 0 {
		totals := make([]time.Duration, len(r.Rows))
		var sum time.Duration
		for i, row := range r.Rows {
			totals[i] = row.Total
			sum += row.Total
		}
		sort.Slice(totals, func(i, j int) bool { return totals[i] < totals[j] })
		r.Average = sum / time.Duration(len(totals))
		r.Median = median(totals)
		r.Min = totals[0]
		r.Max = totals[len(totals)-1]
	}
	return r
}

func median(sorted []time.Duration) time.Duration {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// CSV renders the report as a CSV document: a summary header block, a
// blank row, then a player table.
func CSV(r Report) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	summary := [][]string{
		{"Sidelined Report"},
		{"Generated", r.GeneratedAt.Format(time.RFC3339)},
		{"Elapsed", formatSeconds(r.Elapsed)},
		{"Stoppage", formatSeconds(r.Stoppage)},
		{"Adjustments", formatSeconds(r.Adjustments)},
		{"Target Per Player", formatSeconds(r.Target)},
		{"Average", formatSeconds(r.Average)},
		{"Median", formatSeconds(r.Median)},
		{"Minimum", formatSeconds(r.Min)},
		{"Maximum", formatSeconds(r.Max)},
		{"Players Under", fmt.Sprint(r.UnderCount)},
		{"Players Fair", fmt.Sprint(r.FairCount)},
		{"Players Over", fmt.Sprint(r.OverCount)},
		{},
		{"Name", "On Field", "Position", "Total", "Target", "Deviation", "Status"},
	}
	for _, rec := range summary {
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	for _, row := range r.Rows {
		rec := []string{
			string(row.ID),
			fmt.Sprint(row.OnField),
			string(row.Position),
			formatSeconds(row.Total),
			formatSeconds(row.Target),
			formatSeconds(row.Deviation),
			row.Classification.String(),
		}
		if err := w.Write(rec); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%d", int64(d.Round(time.Second)/time.Second))
}

// FormatClock renders a duration as MM:SS for display layers.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
