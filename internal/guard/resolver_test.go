package guard

import (
	"testing"

	"github.com/lintwarden/lintwarden/internal/model"
)

func mkRange(startLine, startCol, endLine, endCol uint32) model.Range {
	return model.Range{
		Start: model.Position{Line: startLine, Column: startCol},
		End:   model.Position{Line: endLine, Column: endCol},
	}
}

func mkMatch(file string, r model.Range, snippet string) model.Match {
	return model.Match{File: file, Range: r, RuleID: "deep-access", Snippet: snippet}
}

func TestResolveContainment(t *testing.T) {
	// A deep property access fully inside a conditional body is suppressed.
	m := mkMatch("app/user.rb", mkRange(12, 5, 12, 31), "user.profile.address.city")
	g := model.GuardRegion{
		File:  "app/user.rb",
		Range: mkRange(11, 1, 14, 4),
		Kind:  model.GuardConditional,
	}

	res := Resolve([]model.Match{m}, []model.GuardRegion{g}, 10)
	if res.GuardedCount != 1 {
		t.Errorf("expected guardedCount 1, got %d", res.GuardedCount)
	}
	if res.UnguardedCount != 0 || len(res.Sample) != 0 {
		t.Errorf("guarded match leaked into unguarded output: %+v", res)
	}
}

func TestResolveNoGuards(t *testing.T) {
	matches := []model.Match{
		mkMatch("a.js", mkRange(1, 1, 1, 20), "order.items[0].price"),
		mkMatch("a.js", mkRange(5, 1, 5, 18), "config.db.host.trim()"),
	}

	res := Resolve(matches, nil, 10)
	if res.GuardedCount != 0 {
		t.Errorf("expected guardedCount 0, got %d", res.GuardedCount)
	}
	if res.UnguardedCount != 2 {
		t.Errorf("expected all matches unguarded, got %d", res.UnguardedCount)
	}
}

func TestResolveSuppressionMonotonicity(t *testing.T) {
	m := mkMatch("lib/auth.kt", mkRange(30, 9, 30, 40), "session.user.roles.first()")

	before := Resolve([]model.Match{m}, nil, 10)
	if before.UnguardedCount != 1 {
		t.Fatalf("expected unguarded before adding guard, got %+v", before)
	}

	g := model.GuardRegion{File: "lib/auth.kt", Range: mkRange(29, 1, 33, 2), Kind: model.GuardConditional}
	after := Resolve([]model.Match{m}, []model.GuardRegion{g}, 10)
	if after.GuardedCount != 1 || after.UnguardedCount != 0 {
		t.Errorf("adding a containing guard must suppress the match, got %+v", after)
	}
}

func TestResolveCrossFileGuardDoesNotSuppress(t *testing.T) {
	m := mkMatch("a.rb", mkRange(5, 1, 5, 20), "account.plan.tier")
	g := model.GuardRegion{File: "b.rb", Range: mkRange(1, 1, 100, 1), Kind: model.GuardConditional}

	res := Resolve([]model.Match{m}, []model.GuardRegion{g}, 10)
	if res.UnguardedCount != 1 {
		t.Errorf("guard in another file must not suppress, got %+v", res)
	}
}

func TestResolveSampleCap(t *testing.T) {
	var matches []model.Match
	for i := uint32(1); i <= 8; i++ {
		matches = append(matches, mkMatch("big.py", mkRange(i, 1, i, 10), "payload['a']['b']"))
	}

	res := Resolve(matches, nil, 3)
	if len(res.Sample) != 3 {
		t.Errorf("expected sample capped at 3, got %d", len(res.Sample))
	}
	if res.UnguardedCount != 8 {
		t.Errorf("true unguarded count must ignore the cap, got %d", res.UnguardedCount)
	}
	// Sample preserves input order.
	for i, m := range res.Sample {
		if m.Range.Start.Line != uint32(i+1) {
			t.Errorf("sample out of order at index %d: %+v", i, m)
		}
	}
}

func TestSnippetHeuristic(t *testing.T) {
	tests := []struct {
		name    string
		snippet string
		guarded bool
	}{
		{"ruby_safe_nav", "user&.profile&.address", true},
		{"js_optional_chaining", "order?.items?.[0]", true},
		{"php_nullsafe", "$user?->getAddress()", true},
		{"inline_nil_check", "if user != nil && user.name", true},
		{"inline_none_check", "if payload is not None", true},
		{"yoda_null_check", "null !== response.body", true},
		{"and_chain_nil_check", "user && user.name != nil", true},
		{"ruby_nil_predicate", "return if user.nil?", true},
		{"plain_deep_access", "user.profile.address.city", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnippetGuarded(tt.snippet); got != tt.guarded {
				t.Errorf("expected %v, got %v", tt.guarded, got)
			}
		})
	}
}
