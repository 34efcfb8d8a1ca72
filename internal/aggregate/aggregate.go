// Package aggregate accumulates findings into severity totals and derives
// the process exit code.
package aggregate

import "github.com/lintwarden/lintwarden/internal/model"

// Totals is the process-wide severity accumulator. It is owned exclusively
// by one Aggregator for the whole run and read once at the end by ExitCode.
type Totals struct {
	Critical uint64 `json:"critical"`
	Warning  uint64 `json:"warning"`
	Info     uint64 `json:"info"`
}

// Aggregator is the only writer of Totals.
type Aggregator struct {
	totals Totals
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record adds f.Count to the bucket matching f.Severity. Good findings exist
// purely for display and never increment a counter. Record must be called
// exactly once per finding; recording the same finding twice double-counts.
func (a *Aggregator) Record(f model.Finding) {
	switch f.Severity {
	case model.SeverityCritical:
		a.totals.Critical += f.Count
	case model.SeverityWarning:
		a.totals.Warning += f.Count
	case model.SeverityInfo:
		a.totals.Info += f.Count
	}
}

// RecordAll records each finding once, in order.
func (a *Aggregator) RecordAll(findings []model.Finding) {
	for _, f := range findings {
		a.Record(f)
	}
}

// Totals returns a copy of the accumulated totals.
func (a *Aggregator) Totals() Totals {
	return a.totals
}

// ExitCode is the decision gate: 1 when any critical finding was recorded, 1
// when failOnWarning is set and any critical or warning finding was recorded,
// 0 otherwise. No other codes are produced here.
func ExitCode(t Totals, failOnWarning bool) int {
	if t.Critical > 0 {
		return 1
	}
	if failOnWarning && t.Critical+t.Warning > 0 {
		return 1
	}
	return 0
}
