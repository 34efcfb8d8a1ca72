// Package engine runs the correlation pipeline: ingest validated matches,
// resolve guards, correlate resource lifecycles, aggregate severities, and
// derive the exit code. Strictly ordered, single-threaded per run; upstream
// parallelism must deliver complete batches before Run is called.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/lintwarden/lintwarden/internal/aggregate"
	"github.com/lintwarden/lintwarden/internal/category"
	"github.com/lintwarden/lintwarden/internal/guard"
	"github.com/lintwarden/lintwarden/internal/lifecycle"
	"github.com/lintwarden/lintwarden/internal/model"
)

// Options is the configuration surface the CLI exposes to the core.
type Options struct {
	SampleLimit   int
	FailOnWarning bool
	Only          []string
	Skip          []string
}

// Input is one complete, already-collected batch.
type Input struct {
	Matches []model.Match
	Guards  []model.GuardRegion
	Hits    lifecycle.Hits
}

// Result is everything downstream consumers need: findings for renderers,
// the unguarded sample for location-aware output, totals and the exit code
// for the process boundary.
type Result struct {
	Findings  []model.Finding
	Sample    []model.Match
	Totals    aggregate.Totals
	ExitCode  int
	Guarded   int
	Unguarded int
	Discarded int
}

// Run executes one pipeline pass. Deterministic for a fixed input: category
// and registry order are fixed, files and rule IDs iterate sorted.
func Run(in Input, kinds []lifecycle.ResourceKind, opts Options, log *zap.SugaredLogger) Result {
	var res Result

	matches, droppedM := sanitizeMatches(in.Matches)
	guards, droppedG := sanitizeGuards(in.Guards)
	res.Discarded = droppedM + droppedG
	if res.Discarded > 0 && log != nil {
		log.Debugf("discarded %d malformed entries at ingestion", res.Discarded)
	}

	filter := category.NewFilter(opts.Only, opts.Skip)

	// Resource lifecycle correlation runs first, in registry order.
	if lc, ok := category.ByName("resource_lifecycle"); ok && filter.IsEnabled(lc) {
		res.Findings = append(res.Findings, lifecycle.Correlate(kinds, in.Hits)...)
	}

	// Guard resolution per rule, rules sorted for reproducible emission.
	byRule := make(map[string][]model.Match)
	for _, m := range matches {
		if !filter.IsEnabled(categoryForRule(m.RuleID)) {
			continue
		}
		byRule[m.RuleID] = append(byRule[m.RuleID], m)
	}
	ruleIDs := make([]string, 0, len(byRule))
	for id := range byRule {
		ruleIDs = append(ruleIDs, id)
	}
	sort.Strings(ruleIDs)

	for _, id := range ruleIDs {
		r := guard.Resolve(byRule[id], guards, opts.SampleLimit)
		res.Guarded += r.GuardedCount
		res.Unguarded += r.UnguardedCount
		res.Sample = append(res.Sample, r.Sample...)
		if r.UnguardedCount > 0 {
			res.Findings = append(res.Findings, model.Finding{
				Severity:    model.SeverityWarning,
				Count:       uint64(r.UnguardedCount),
				Title:       fmt.Sprintf("Unguarded matches for %s", id),
				Description: fmt.Sprintf("%d occurrence(s) without a protective construct (guarded=%d)", r.UnguardedCount, r.GuardedCount),
			})
		}
	}

	// Guarded matches are informational only; only unguarded counts drive
	// severity totals.
	if res.Guarded > 0 {
		res.Findings = append(res.Findings, model.Finding{
			Severity:    model.SeverityGood,
			Count:       uint64(res.Guarded),
			Title:       "Guarded matches",
			Description: fmt.Sprintf("%d match(es) suppressed by protective constructs", res.Guarded),
		})
	}

	agg := aggregate.NewAggregator()
	agg.RecordAll(res.Findings)
	res.Totals = agg.Totals()
	res.ExitCode = aggregate.ExitCode(res.Totals, opts.FailOnWarning)
	return res
}

// categoryForRule maps a rule ID to its scan family. Rule IDs may carry a
// category prefix ("concurrency/goroutine-capture"); anything else belongs
// to the unguarded-access family.
func categoryForRule(ruleID string) category.Category {
	if prefix, _, ok := strings.Cut(ruleID, "/"); ok {
		if c, found := category.ByName(prefix); found {
			return c
		}
	}
	c, _ := category.ByName("unguarded_access")
	return c
}

func sanitizeMatches(in []model.Match) ([]model.Match, int) {
	out := make([]model.Match, 0, len(in))
	dropped := 0
	for _, m := range in {
		if !m.Valid() {
			dropped++
			continue
		}
		out = append(out, m)
	}
	return out, dropped
}

func sanitizeGuards(in []model.GuardRegion) ([]model.GuardRegion, int) {
	out := make([]model.GuardRegion, 0, len(in))
	dropped := 0
	for _, g := range in {
		if !g.Valid() {
			dropped++
			continue
		}
		out = append(out, g)
	}
	return out, dropped
}
