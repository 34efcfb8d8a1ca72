package model

// Position is a 1-based line/column location inside a single source file.
// Positions order lexicographically: line major, column minor.
type Position struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// Before reports whether p is strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// After reports whether p is strictly after q.
func (p Position) After(q Position) bool {
	return q.Before(p)
}

// Range is a half-open span between two positions in one file, Start <= End.
// Ranges never cross file boundaries; comparing ranges from different files
// is meaningless and must be prevented by the caller.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Valid reports whether Start <= End.
func (r Range) Valid() bool {
	return !r.End.Before(r.Start)
}

// Contains reports whether inner lies fully within r: inner's start is at or
// after r's start and inner's end is at or before r's end. Reflexive.
func (r Range) Contains(inner Range) bool {
	return !inner.Start.Before(r.Start) && !inner.End.After(r.End)
}
