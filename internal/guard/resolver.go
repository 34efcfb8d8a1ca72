// Package guard decides which matches are already protected by surrounding
// code and excludes them from reporting.
package guard

import (
	"regexp"
	"strings"

	"github.com/lintwarden/lintwarden/internal/model"
)

// Resolution is the outcome of one Resolve pass. Sample holds at most the
// requested number of unguarded matches for display; UnguardedCount is the
// true total, tracked independently of the sample size.
type Resolution struct {
	Sample         []model.Match
	UnguardedCount int
	GuardedCount   int
}

// Inline nil/null tests adjacent to the risky expression. These cover the
// idioms that show up as a single matched line rather than an enclosing block.
var inlineNilTest = regexp.MustCompile(`(?:\b(?:if|unless)|&&|\|\|)\s+[\w.\[\]]+\s*(?:[!=]=+\s*(?:nil|null|None|undefined)\b|\.nil\?|\bis\s+(?:not\s+)?None\b)|\b(?:nil|null|None|undefined)\s*[!=]=+\s*[\w.\[\]]+`)

// Safe-navigation tokens across the supported languages (Ruby, JS/TS/Kotlin/
// C#, PHP).
var safeNavTokens = []string{"&.", "?.", "?->"}

// Resolve partitions matches and guard regions by file and reports which
// matches survive. A match is guarded when any same-file region contains its
// range, or when its own snippet carries a safe-navigation token or an inline
// nil test. Output order follows input match order; inputs are not mutated.
// Absent guard data is not an error and simply yields GuardedCount 0.
func Resolve(matches []model.Match, guards []model.GuardRegion, sampleLimit int) Resolution {
	byFile := make(map[string][]model.GuardRegion, len(guards))
	for _, g := range guards {
		byFile[g.File] = append(byFile[g.File], g)
	}

	var res Resolution
	for _, m := range matches {
		if coveredByAny(m, byFile[m.File]) || SnippetGuarded(m.Snippet) {
			res.GuardedCount++
			continue
		}
		res.UnguardedCount++
		if sampleLimit <= 0 || len(res.Sample) < sampleLimit {
			res.Sample = append(res.Sample, m)
		}
	}
	return res
}

func coveredByAny(m model.Match, regions []model.GuardRegion) bool {
	for _, g := range regions {
		if g.Covers(m) {
			return true
		}
	}
	return false
}

// SnippetGuarded applies the token-level heuristic for protective idioms that
// are single tokens rather than enclosing blocks.
func SnippetGuarded(snippet string) bool {
	for _, tok := range safeNavTokens {
		if strings.Contains(snippet, tok) {
			return true
		}
	}
	return inlineNilTest.MatchString(snippet)
}
