// Package report renders the engine result as JSON or markdown.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lintwarden/lintwarden/internal/aggregate"
	"github.com/lintwarden/lintwarden/internal/model"
)

type Meta struct {
	Tool          string `json:"tool"`
	Version       string `json:"version"`
	Timestamp     string `json:"timestamp"`
	FailOnWarning bool   `json:"fail_on_warning"`
	Guarded       int    `json:"guarded"`
	Unguarded     int    `json:"unguarded"`
	Discarded     int    `json:"discarded"`
}

type Report struct {
	Meta     Meta             `json:"meta"`
	Totals   aggregate.Totals `json:"totals"`
	Findings []model.Finding  `json:"findings"`
	Sample   []model.Match    `json:"sample,omitempty"`
}

// NewMeta stamps report metadata with the current time.
func NewMeta(tool, version string, failOnWarning bool, guarded, unguarded, discarded int) Meta {
	return Meta{
		Tool:          tool,
		Version:       version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		FailOnWarning: failOnWarning,
		Guarded:       guarded,
		Unguarded:     unguarded,
		Discarded:     discarded,
	}
}

// WriteJSON renders the full report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteMarkdown renders a summary table plus one row per finding.
func WriteMarkdown(w io.Writer, r Report) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s Report\n\n", r.Meta.Tool))
	sb.WriteString(fmt.Sprintf("**Timestamp:** %s\n", r.Meta.Timestamp))
	sb.WriteString(fmt.Sprintf("**Fail on warning:** %v\n\n", r.Meta.FailOnWarning))

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Severity | Count |\n")
	sb.WriteString("| :--- | :--- |\n")
	sb.WriteString(fmt.Sprintf("| Critical | %d |\n", r.Totals.Critical))
	sb.WriteString(fmt.Sprintf("| Warning | %d |\n", r.Totals.Warning))
	sb.WriteString(fmt.Sprintf("| Info | %d |\n", r.Totals.Info))
	sb.WriteString("\n")

	sb.WriteString("## Findings\n\n")
	if len(r.Findings) == 0 {
		sb.WriteString("_No findings._\n")
	} else {
		sb.WriteString("| Severity | Count | Title | Detail |\n")
		sb.WriteString("| :--- | :--- | :--- | :--- |\n")
		for _, f := range r.Findings {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
				f.Severity, f.Count, sanitizeCell(f.Title), sanitizeCell(f.Description)))
		}
	}

	if len(r.Sample) > 0 {
		sb.WriteString(fmt.Sprintf("\n## Unguarded sample (%d of %d)\n\n", len(r.Sample), r.Meta.Unguarded))
		sb.WriteString("| Location | Rule | Snippet |\n")
		sb.WriteString("|---|---|---|\n")
		for _, m := range r.Sample {
			sb.WriteString(fmt.Sprintf("| %s:%d:%d | %s | `%s` |\n",
				m.File, m.Range.Start.Line, m.Range.Start.Column, m.RuleID, sanitizeCell(m.Snippet)))
		}
	}

	if r.Meta.Discarded > 0 {
		sb.WriteString(fmt.Sprintf("\n> %d malformed input entr(ies) were discarded at ingestion.\n", r.Meta.Discarded))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
