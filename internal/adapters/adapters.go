// Package adapters is the typed deserialization boundary between external
// pattern-matching tools and the correlation core. Each adapter unmarshals
// one tool's JSON output into Match or GuardRegion values; entries that fail
// shape validation are dropped and counted, never fatal.
package adapters

import (
	"github.com/lintwarden/lintwarden/internal/model"
)

// PatternSource produces a complete batch of candidate matches. The core
// never observes partial results; any upstream parallelism or timeouts must
// degrade to an empty batch before data crosses this boundary.
type PatternSource interface {
	Matches() ([]model.Match, error)
}

// GuardSource produces guard regions in the same coordinate space.
type GuardSource interface {
	Guards() ([]model.GuardRegion, error)
}

// sanitizeMatches drops malformed entries and reports how many were dropped.
func sanitizeMatches(in []model.Match) ([]model.Match, int) {
	out := in[:0:0]
	dropped := 0
	for _, m := range in {
		if !m.Valid() {
			dropped++
			continue
		}
		out = append(out, m)
	}
	return out, dropped
}

func sanitizeGuards(in []model.GuardRegion) ([]model.GuardRegion, int) {
	out := in[:0:0]
	dropped := 0
	for _, g := range in {
		if !g.Valid() {
			dropped++
			continue
		}
		out = append(out, g)
	}
	return out, dropped
}
