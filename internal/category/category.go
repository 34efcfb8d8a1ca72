// Package category maps numbered scan categories to enable/disable decisions
// from include/exclude filter expressions.
package category

import (
	"strconv"
	"strings"
)

// Category is one scan family. Enabled state is decided once at run start by
// a Filter and read-only afterwards.
type Category struct {
	Number int
	Name   string
}

// The built-in scan families, in run order.
var builtin = []Category{
	{1, "resource_lifecycle"},
	{2, "unguarded_access"},
	{3, "error_swallowing"},
	{4, "concurrency"},
	{5, "type_narrowing"},
}

// Builtin returns the registered categories in their fixed run order.
func Builtin() []Category {
	out := make([]Category, len(builtin))
	copy(out, builtin)
	return out
}

// ByName looks up a built-in category.
func ByName(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range builtin {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

// Filter decides category enablement for one run. A non-empty "only" set acts
// as an allow-list and takes precedence; otherwise the "skip" set acts as a
// deny-list, and an empty skip set enables everything. Fixed at construction.
type Filter struct {
	only map[string]struct{}
	skip map[string]struct{}
}

// NewFilter builds a filter from only/skip tokens. Tokens may be category
// numbers or names and are matched case-insensitively.
func NewFilter(only, skip []string) *Filter {
	return &Filter{only: toSet(only), skip: toSet(skip)}
}

// IsEnabled is a pure query against the fixed filter state.
func (f *Filter) IsEnabled(c Category) bool {
	if len(f.only) > 0 {
		return f.member(f.only, c)
	}
	return !f.member(f.skip, c)
}

func (f *Filter) member(set map[string]struct{}, c Category) bool {
	if _, ok := set[strconv.Itoa(c.Number)]; ok {
		return true
	}
	_, ok := set[c.Name]
	return ok
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
	return set
}

// ParseList splits a comma-separated filter expression into tokens.
func ParseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
