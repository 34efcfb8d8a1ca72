// Package lifecycle pairs acquire and release occurrences of named resources
// per file and reports the imbalance.
package lifecycle

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lintwarden/lintwarden/internal/model"
)

// ResourceKind is one entry of the static resource registry: how a resource
// is acquired, how it is released, and how an imbalance is reported.
// Immutable configuration, not file-scoped.
type ResourceKind struct {
	ID             string         `yaml:"id"`
	AcquirePattern string         `yaml:"acquire"`
	ReleasePattern string         `yaml:"release"`
	Severity       model.Severity `yaml:"severity"`
	Summary        string         `yaml:"summary"`
	Remediation    string         `yaml:"remediation"`
}

//go:embed kinds.yaml
var defaultCatalog []byte

type catalogFile struct {
	Kinds []ResourceKind `yaml:"kinds"`
}

// DefaultRegistry returns the built-in resource catalog in declaration order.
func DefaultRegistry() ([]ResourceKind, error) {
	return parseCatalog(defaultCatalog)
}

// LoadRegistry reads a resource catalog from a YAML file. The file replaces
// the built-in catalog entirely.
func LoadRegistry(path string) ([]ResourceKind, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resource catalog %s: %w", path, err)
	}
	kinds, err := parseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("parse resource catalog %s: %w", path, err)
	}
	return kinds, nil
}

func parseCatalog(b []byte) ([]ResourceKind, error) {
	var doc catalogFile
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	for i, k := range doc.Kinds {
		if k.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if _, err := model.ParseSeverity(string(k.Severity)); err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", k.ID, err)
		}
	}
	return doc.Kinds, nil
}
