package lifecycle

import (
	"fmt"
	"sort"

	"github.com/lintwarden/lintwarden/internal/model"
)

// Hits carries per-kind, per-file acquire and release counts as produced by
// the pattern source: kind ID -> file -> occurrence count. Computed fresh
// each run, never persisted.
type Hits struct {
	Acquire map[string]map[string]uint64
	Release map[string]map[string]uint64
}

// CorrelateKind reports one finding per file whose acquire count exceeds its
// release count for the given kind. Files with more releases than acquires
// are silent; only a positive delta is an imbalance. A kind with zero acquire
// hits anywhere yields nothing. Files iterate in sorted order so repeated
// runs emit identical sequences.
func CorrelateKind(kind ResourceKind, acquireHits, releaseHits map[string]uint64) []model.Finding {
	files := make([]string, 0, len(acquireHits))
	for f, n := range acquireHits {
		if n > 0 {
			files = append(files, f)
		}
	}
	sort.Strings(files)

	var out []model.Finding
	for _, f := range files {
		acq := acquireHits[f]
		rel := releaseHits[f]
		if rel >= acq {
			continue
		}
		out = append(out, model.Finding{
			Severity:    kind.Severity,
			Count:       acq - rel,
			Title:       fmt.Sprintf("%s [%s]", kind.Summary, f),
			Description: fmt.Sprintf("%s (acquire=%d, release=%d)", kind.Remediation, acq, rel),
		})
	}
	return out
}

// Correlate runs CorrelateKind over the whole registry in declaration order.
// When no file triggers any imbalance across all kinds it emits the single
// all-good sentinel instead; the sentinel and imbalance findings are mutually
// exclusive outputs of one pass.
func Correlate(kinds []ResourceKind, hits Hits) []model.Finding {
	var out []model.Finding
	for _, kind := range kinds {
		out = append(out, CorrelateKind(kind, hits.Acquire[kind.ID], hits.Release[kind.ID])...)
	}
	if len(out) == 0 {
		out = append(out, model.Finding{
			Severity:    model.SeverityGood,
			Title:       "Resource lifecycle",
			Description: "all tracked resource acquisitions have matching cleanups",
		})
	}
	return out
}
