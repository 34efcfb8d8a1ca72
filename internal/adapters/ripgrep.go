package adapters

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintwarden/lintwarden/internal/model"
)

// rg --json emits one JSON object per line; only "match" events carry hits.
type ripgrepEvent struct {
	Type string `json:"type"`
	Data struct {
		Path struct {
			Text string `json:"text"`
		} `json:"path"`
		Lines struct {
			Text string `json:"text"`
		} `json:"lines"`
		LineNumber uint32 `json:"line_number"`
		Submatches []struct {
			Match struct {
				Text string `json:"text"`
			} `json:"match"`
			Start uint32 `json:"start"` // byte offset within the line, 0-based
			End   uint32 `json:"end"`
		} `json:"submatches"`
	} `json:"data"`
}

// ParseRipgrepBytes converts a ripgrep JSON event stream into matches tagged
// with the given rule ID. Non-match events and malformed lines are skipped;
// the second return value counts skipped entries.
func ParseRipgrepBytes(b []byte, ruleID string) ([]model.Match, int) {
	var out []model.Match
	dropped := 0

	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev ripgrepEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			dropped++
			continue
		}
		if ev.Type != "match" {
			continue
		}
		for _, sub := range ev.Data.Submatches {
			m := model.Match{
				File: normalizePath(ev.Data.Path.Text),
				Range: model.Range{
					Start: model.Position{Line: ev.Data.LineNumber, Column: sub.Start + 1},
					End:   model.Position{Line: ev.Data.LineNumber, Column: sub.End + 1},
				},
				RuleID:  ruleID,
				Snippet: strings.TrimRight(ev.Data.Lines.Text, "\n"),
			}
			if !m.Valid() {
				dropped++
				continue
			}
			out = append(out, m)
		}
	}
	if err := sc.Err(); err != nil {
		// Oversized or truncated tail lines count as discarded input, not failure.
		dropped++
	}
	return out, dropped
}

// RipgrepFile is a PatternSource backed by a saved `rg --json` output file.
type RipgrepFile struct {
	Path   string
	RuleID string

	// Dropped is populated after Matches returns.
	Dropped int
}

func (r *RipgrepFile) Matches() ([]model.Match, error) {
	b, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, err
	}
	matches, dropped := ParseRipgrepBytes(b, r.RuleID)
	r.Dropped = dropped
	return matches, nil
}

func normalizePath(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	return strings.TrimPrefix(p, "./")
}
