// Package sarif renders unguarded matches as a SARIF 2.1.0 log.
package sarif

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lintwarden/lintwarden/internal/model"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Result struct {
	RuleID    string     `json:"ruleId"`
	Message   Message    `json:"message"`
	Level     string     `json:"level"` // error, warning, note
	Locations []Location `json:"locations"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

// Entry pairs one located match with the severity its category reports at.
type Entry struct {
	Match    model.Match
	Severity model.Severity
}

// Export writes a SARIF 2.1.0 log for the given entries. Entries sort by
// file, line, then rule ID so repeated runs are diffable.
func Export(w io.Writer, entries []Entry, toolName, toolVersion string) error {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Match, sorted[j].Match
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Range.Start.Line != b.Range.Start.Line {
			return a.Range.Start.Line < b.Range.Start.Line
		}
		return a.RuleID < b.RuleID
	})

	results := make([]Result, 0, len(sorted))
	for _, e := range sorted {
		m := e.Match
		uri := toURI(m.File)
		if uri == "" {
			uri = "UNKNOWN"
		}
		results = append(results, Result{
			RuleID: m.RuleID,
			Level:  sevToLevel(e.Severity),
			Message: Message{
				Text: strings.TrimSpace(m.Snippet),
			},
			Locations: []Location{
				{
					PhysicalLocation: PhysicalLocation{
						ArtifactLocation: ArtifactLocation{
							URI: uri,
						},
						Region: Region{
							StartLine:   int(m.Range.Start.Line),
							StartColumn: int(m.Range.Start.Column),
							EndLine:     int(m.Range.End.Line),
							EndColumn:   int(m.Range.End.Column),
						},
					},
				},
			},
		})
	}

	log := Log{
		Version: "2.1.0",
		// RTM schema recognized by GitHub/VSCode
		Schema: "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    toolName,
						Version: toolVersion,
					},
				},
				Results: results,
			},
		},
	}

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sarif: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write sarif: %w", err)
	}
	return nil
}

func sevToLevel(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "error"
	case model.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}
