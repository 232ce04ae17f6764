// Package hierarchy derives display groupings from underscore-delimited
// project paths. It is independent from the taxonomy: a path can be grouped
// here even when the taxonomy would reject it, and vice versa.
package hierarchy

import (
	"sort"
	"strings"
)

// Separator splits a project path into segments.
const Separator = "_"

// DefaultTopLevel returns the built-in bucket names for well-known first
// segments. Unlisted segments are bucketed under their upper-cased name.
func DefaultTopLevel() map[string]string {
	return map[string]string{
		"study":      "STUDY",
		"routine":    "ROUTINE",
		"break":      "BREAK",
		"rest":       "REST",
		"exercise":   "EXERCISE",
		"sleep":      "SLEEP",
		"recreation": "RECREATION",
		"other":      "OTHER",
		"meal":       "MEAL",
		"program":    "Program",
		"arrange":    "ARRANGE",
	}
}

// Entry is one child → parent edge.
type Entry struct {
	Child  string
	Parent string
}

// Builder accumulates child → parent edges for every path prefix it has
// seen. The first registration of a child wins and is never overwritten.
// A Builder belongs to a single report pass and is not safe for concurrent use.
type Builder struct {
	topLevel map[string]string
	parents  map[string]string
}

// NewBuilder returns a Builder using topLevel for first-segment buckets.
// topLevel is copied; nil means no predefined buckets.
func NewBuilder(topLevel map[string]string) *Builder {
	tl := make(map[string]string, len(topLevel))
	for k, v := range topLevel {
		tl[k] = v
	}
	return &Builder{topLevel: tl, parents: make(map[string]string)}
}

// Register records an edge for each prefix of path. For the first segment the
// parent is its predefined bucket, or the upper-cased segment; deeper prefixes
// point at the prefix one segment shorter.
func (b *Builder) Register(path string) {
	if path == "" {
		return
	}
	parts := strings.Split(path, Separator)
	for i := 1; i <= len(parts); i++ {
		child := strings.Join(parts[:i], Separator)
		if _, ok := b.parents[child]; ok {
			continue
		}
		var parent string
		if i == 1 {
			parent = b.topLevelFor(child)
		} else {
			parent = strings.Join(parts[:i-1], Separator)
		}
		b.parents[child] = parent
	}
}

// Seed loads previously persisted edges. Existing edges are kept.
func (b *Builder) Seed(entries []Entry) {
	for _, e := range entries {
		if _, ok := b.parents[e.Child]; !ok {
			b.parents[e.Child] = e.Parent
		}
	}
}

// Parent returns the registered parent of child.
func (b *Builder) Parent(child string) (string, bool) {
	p, ok := b.parents[child]
	return p, ok
}

// Bucket returns the top-level bucket for path: the registered parent of its
// first segment, falling back to the upper-cased segment when unmapped.
func (b *Builder) Bucket(path string) string {
	first, _, _ := strings.Cut(path, Separator)
	if p, ok := b.parents[first]; ok {
		return p
	}
	return strings.ToUpper(first)
}

// Entries returns all edges ordered by child.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, 0, len(b.parents))
	for c, p := range b.parents {
		out = append(out, Entry{Child: c, Parent: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Child < out[j].Child })
	return out
}

// Len returns the number of registered children.
func (b *Builder) Len() int { return len(b.parents) }

func (b *Builder) topLevelFor(segment string) string {
	if p, ok := b.topLevel[segment]; ok {
		return p
	}
	return strings.ToUpper(segment)
}
