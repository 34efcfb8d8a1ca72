package adapters

import (
	"encoding/json"
	"os"

	"github.com/lintwarden/lintwarden/internal/lifecycle"
)

// Lifecycle counts arrive pre-aggregated from the pattern source:
// kind ID -> file -> occurrence count for each of the two event streams.
type countsDoc struct {
	Acquire map[string]map[string]uint64 `json:"acquire"`
	Release map[string]map[string]uint64 `json:"release"`
}

// ParseCountsBytes reads acquire/release hit counts. Missing sections are
// absence, not failure: an empty document yields zero hits.
func ParseCountsBytes(b []byte) (lifecycle.Hits, error) {
	var doc countsDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return lifecycle.Hits{}, err
	}
	return lifecycle.Hits{Acquire: doc.Acquire, Release: doc.Release}, nil
}

// ParseCountsFile reads counts from a saved JSON file.
func ParseCountsFile(path string) (lifecycle.Hits, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return lifecycle.Hits{}, err
	}
	return ParseCountsBytes(b)
}
