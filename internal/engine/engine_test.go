package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lintwarden/lintwarden/internal/lifecycle"
	"github.com/lintwarden/lintwarden/internal/model"
)

var testKinds = []lifecycle.ResourceKind{
	{
		ID:          "thread_join",
		Severity:    model.SeverityWarning,
		Summary:     "Threads spawned without join",
		Remediation: "Join or detach every spawned thread before the owner returns",
	},
}

func mkMatch(file string, line uint32, ruleID, snippet string) model.Match {
	return model.Match{
		File: file,
		Range: model.Range{
			Start: model.Position{Line: line, Column: 1},
			End:   model.Position{Line: line, Column: 20},
		},
		RuleID:  ruleID,
		Snippet: snippet,
	}
}

func TestRunEmptyInputIsAllGood(t *testing.T) {
	// No matches and no guard regions anywhere: the run reports the single
	// all-good sentinel, totals stay zero, and the exit code is 0.
	res := Run(Input{}, testKinds, Options{SampleLimit: 5}, nil)

	require.Len(t, res.Findings, 1)
	assert.Equal(t, model.SeverityGood, res.Findings[0].Severity)
	assert.Zero(t, res.Totals)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunUnguardedMatchesProduceWarnings(t *testing.T) {
	in := Input{
		Matches: []model.Match{
			mkMatch("a.rb", 3, "deep-access", "user.profile.city"),
			mkMatch("a.rb", 9, "deep-access", "user.plan.tier"),
		},
	}

	res := Run(in, testKinds, Options{SampleLimit: 5}, nil)
	assert.Equal(t, 2, res.Unguarded)
	assert.Equal(t, uint64(2), res.Totals.Warning)
	assert.Equal(t, 0, res.ExitCode, "warnings alone do not fail without failOnWarning")

	strict := Run(in, testKinds, Options{SampleLimit: 5, FailOnWarning: true}, nil)
	assert.Equal(t, 1, strict.ExitCode)
}

func TestRunGuardedMatchIsInformationalOnly(t *testing.T) {
	in := Input{
		Matches: []model.Match{mkMatch("a.rb", 3, "deep-access", "user.profile.city")},
		Guards: []model.GuardRegion{{
			File: "a.rb",
			Range: model.Range{
				Start: model.Position{Line: 2, Column: 1},
				End:   model.Position{Line: 5, Column: 4},
			},
			Kind: model.GuardConditional,
		}},
	}

	res := Run(in, testKinds, Options{SampleLimit: 5, FailOnWarning: true}, nil)
	assert.Equal(t, 1, res.Guarded)
	assert.Equal(t, 0, res.Unguarded)
	assert.Zero(t, res.Totals, "guarded counts never reach severity totals")
	assert.Equal(t, 0, res.ExitCode)

	var good *model.Finding
	for i := range res.Findings {
		if res.Findings[i].Title == "Guarded matches" {
			good = &res.Findings[i]
		}
	}
	require.NotNil(t, good, "guarded count surfaces as a display-only finding")
	assert.Equal(t, model.SeverityGood, good.Severity)
}

func TestRunLifecycleImbalanceFeedsTotals(t *testing.T) {
	in := Input{
		Hits: lifecycle.Hits{
			Acquire: map[string]map[string]uint64{"thread_join": {"app/worker.rb": 3}},
			Release: map[string]map[string]uint64{"thread_join": {"app/worker.rb": 1}},
		},
	}

	res := Run(in, testKinds, Options{}, nil)
	assert.Equal(t, uint64(2), res.Totals.Warning)
	require.NotEmpty(t, res.Findings)
	assert.Equal(t, "Threads spawned without join [app/worker.rb]", res.Findings[0].Title)
}

func TestRunCategoryFilter(t *testing.T) {
	in := Input{
		Matches: []model.Match{mkMatch("a.rb", 3, "deep-access", "user.profile.city")},
		Hits: lifecycle.Hits{
			Acquire: map[string]map[string]uint64{"thread_join": {"w.rb": 1}},
		},
	}

	// Only the lifecycle family: the pattern match is never resolved.
	onlyLifecycle := Run(in, testKinds, Options{Only: []string{"resource_lifecycle"}}, nil)
	assert.Equal(t, 0, onlyLifecycle.Unguarded)
	assert.Equal(t, uint64(1), onlyLifecycle.Totals.Warning)

	// Skip the lifecycle family: only the unguarded match reports.
	skipLifecycle := Run(in, testKinds, Options{Skip: []string{"resource_lifecycle"}}, nil)
	assert.Equal(t, 1, skipLifecycle.Unguarded)
	assert.Equal(t, uint64(1), skipLifecycle.Totals.Warning)
}

func TestRunCategoryPrefixInRuleID(t *testing.T) {
	in := Input{
		Matches: []model.Match{
			mkMatch("m.go", 3, "concurrency/goroutine-capture", "go func() { use(v) }"),
			mkMatch("m.rb", 8, "deep-access", "cfg.db.host"),
		},
	}

	res := Run(in, testKinds, Options{Skip: []string{"concurrency"}}, nil)
	assert.Equal(t, 1, res.Unguarded, "matches of a skipped family are dropped before resolution")
}

func TestRunDiscardsMalformedInput(t *testing.T) {
	inverted := model.Match{
		File: "a.rb",
		Range: model.Range{
			Start: model.Position{Line: 9, Column: 1},
			End:   model.Position{Line: 3, Column: 1},
		},
		RuleID: "deep-access",
	}
	noFile := model.GuardRegion{Range: model.Range{
		Start: model.Position{Line: 1, Column: 1},
		End:   model.Position{Line: 2, Column: 1},
	}}

	res := Run(Input{Matches: []model.Match{inverted}, Guards: []model.GuardRegion{noFile}}, testKinds, Options{}, nil)
	assert.Equal(t, 2, res.Discarded)
	assert.Equal(t, 0, res.Unguarded, "discarded entries never become findings")
}

func TestRunDeterministicFindingOrder(t *testing.T) {
	in := Input{
		Matches: []model.Match{
			mkMatch("b.rb", 1, "rule-z", "x.y.z"),
			mkMatch("a.rb", 1, "rule-a", "x.y.z"),
		},
		Hits: lifecycle.Hits{
			Acquire: map[string]map[string]uint64{"thread_join": {"z.rb": 1, "a.rb": 1}},
		},
	}

	first := Run(in, testKinds, Options{SampleLimit: 5}, nil)
	second := Run(in, testKinds, Options{SampleLimit: 5}, nil)
	assert.Equal(t, first.Findings, second.Findings)

	// Lifecycle findings precede match findings; rules emit sorted.
	require.True(t, len(first.Findings) >= 4)
	assert.Contains(t, first.Findings[0].Title, "[a.rb]")
	assert.Contains(t, first.Findings[1].Title, "[z.rb]")
	assert.Contains(t, first.Findings[2].Title, "rule-a")
	assert.Contains(t, first.Findings[3].Title, "rule-z")
}
