package model

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityGood     Severity = "good"
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank returns an integer rank for comparison (Good=0, Critical=3).
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityCritical:
		return 3
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a severity string case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good", "ok":
		return SeverityGood, nil
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return "", fmt.Errorf("invalid severity: %s", s)
	}
}

// Finding is one severity-tagged, aggregatable unit of report output.
// Created once by a producer and recorded exactly once by the aggregator;
// never mutated after creation.
type Finding struct {
	Severity    Severity `json:"severity"`
	Count       uint64   `json:"count"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}
