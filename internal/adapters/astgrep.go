package adapters

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/lintwarden/lintwarden/internal/model"
)

// ast-grep --json emits an array of matches with 0-based line/column ranges.
type astGrepMatch struct {
	Text  string `json:"text"`
	File  string `json:"file"`
	Range struct {
		Start struct {
			Line   uint32 `json:"line"`
			Column uint32 `json:"column"`
		} `json:"start"`
		End struct {
			Line   uint32 `json:"line"`
			Column uint32 `json:"column"`
		} `json:"end"`
	} `json:"range"`
	RuleID string `json:"ruleId"`
}

// ParseAstGrepBytes converts ast-grep JSON output into matches. Malformed
// entries are dropped and counted.
func ParseAstGrepBytes(b []byte) ([]model.Match, int, error) {
	var doc []astGrepMatch
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, 0, err
	}

	out := make([]model.Match, 0, len(doc))
	for _, r := range doc {
		out = append(out, model.Match{
			File:    normalizePath(r.File),
			Range:   astGrepRange(r),
			RuleID:  r.RuleID,
			Snippet: r.Text,
		})
	}
	clean, dropped := sanitizeMatches(out)
	return clean, dropped, nil
}

// ParseAstGrepGuardBytes converts ast-grep output of guard rules into guard
// regions. The protective kind is inferred from the rule ID.
func ParseAstGrepGuardBytes(b []byte) ([]model.GuardRegion, int, error) {
	var doc []astGrepMatch
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, 0, err
	}

	out := make([]model.GuardRegion, 0, len(doc))
	for _, r := range doc {
		out = append(out, model.GuardRegion{
			File:  normalizePath(r.File),
			Range: astGrepRange(r),
			Kind:  guardKindForRule(r.RuleID),
		})
	}
	clean, dropped := sanitizeGuards(out)
	return clean, dropped, nil
}

func astGrepRange(r astGrepMatch) model.Range {
	return model.Range{
		Start: model.Position{Line: r.Range.Start.Line + 1, Column: r.Range.Start.Column + 1},
		End:   model.Position{Line: r.Range.End.Line + 1, Column: r.Range.End.Column + 1},
	}
}

func guardKindForRule(ruleID string) model.GuardKind {
	id := strings.ToLower(ruleID)
	switch {
	case strings.Contains(id, "safe-nav"), strings.Contains(id, "optional-chain"):
		return model.GuardSafeNavigation
	case strings.Contains(id, "rescue"), strings.Contains(id, "except"), strings.Contains(id, "catch"):
		return model.GuardExceptionHandler
	case strings.Contains(id, "block"):
		return model.GuardBlockForm
	default:
		return model.GuardConditional
	}
}

// AstGrepFile reads saved `ast-grep --json` output. It serves as a
// PatternSource or a GuardSource depending on which method is called.
type AstGrepFile struct {
	Path string

	Dropped int
}

func (a *AstGrepFile) Matches() ([]model.Match, error) {
	b, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, err
	}
	matches, dropped, err := ParseAstGrepBytes(b)
	a.Dropped = dropped
	return matches, err
}

func (a *AstGrepFile) Guards() ([]model.GuardRegion, error) {
	b, err := os.ReadFile(a.Path)
	if err != nil {
		return nil, err
	}
	guards, dropped, err := ParseAstGrepGuardBytes(b)
	a.Dropped = dropped
	return guards, err
}
