package model

// GuardKind classifies the protective construct a guard region represents.
type GuardKind string

const (
	GuardConditional      GuardKind = "conditional"
	GuardSafeNavigation   GuardKind = "safe_navigation"
	GuardExceptionHandler GuardKind = "exception_handler"
	GuardBlockForm        GuardKind = "block_form"
)

// Match is one occurrence of a candidate issue reported by a pattern source.
// Immutable once created.
type Match struct {
	File    string `json:"file"`    // relative, slash-normalized path
	Range   Range  `json:"range"`
	RuleID  string `json:"ruleId"`
	Snippet string `json:"snippet"` // matched source text, for display and token heuristics
}

// Valid reports whether the match is well-formed: non-empty file and an
// ordered range. Malformed matches are discarded at ingestion, never fatal.
func (m Match) Valid() bool {
	return m.File != "" && m.Range.Valid()
}

// GuardRegion is a source range representing a protective construct that can
// suppress matches it covers.
type GuardRegion struct {
	File  string    `json:"file"`
	Range Range     `json:"range"`
	Kind  GuardKind `json:"kind"`
}

// Valid reports whether the guard region is well-formed.
func (g GuardRegion) Valid() bool {
	return g.File != "" && g.Range.Valid()
}

// Covers reports whether g suppresses m: same file and full range containment.
func (g GuardRegion) Covers(m Match) bool {
	return g.File == m.File && g.Range.Contains(m.Range)
}
