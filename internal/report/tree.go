// Package report aggregates logged durations into a category tree and
// renders day and period summaries.
//
// Aggregation is cumulative-inclusive: every node carries the full duration
// of every interval whose path runs through it, so a bucket equals the sum of
// everything beneath it rather than a partition among its children.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/papapumpkin/daylog/internal/clock"
	"github.com/papapumpkin/daylog/internal/hierarchy"
)

// node is one level of the aggregation tree.
type node struct {
	name     string
	duration int
	children map[string]*node
}

func newNode(name string) *node {
	return &node{name: name, children: make(map[string]*node)}
}

func (n *node) child(name string) *node {
	c, ok := n.children[name]
	if !ok {
		c = newNode(name)
		n.children[name] = c
	}
	return c
}

// sorted returns children by descending duration, then by name.
func (n *node) sorted() []*node {
	out := make([]*node, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].duration != out[j].duration {
			return out[i].duration > out[j].duration
		}
		return out[i].name < out[j].name
	})
	return out
}

func (n *node) visible() bool {
	return n.duration > 0 || len(n.children) > 0
}

// Tree accumulates durations per top-level bucket and path segment. A Tree
// belongs to one report pass.
type Tree struct {
	h    *hierarchy.Builder
	root *node
}

// NewTree returns an empty tree that resolves buckets through h. A nil h
// buckets every path under its upper-cased first segment.
func NewTree(h *hierarchy.Builder) *Tree {
	return &Tree{h: h, root: newNode("")}
}

// AddInterval adds seconds to the bucket of path and to every node along the
// rest of its segments.
func (t *Tree) AddInterval(path string, seconds int) {
	if path == "" {
		return
	}
	parts := strings.Split(path, hierarchy.Separator)
	cur := t.root.child(t.bucket(path))
	cur.duration += seconds
	for _, seg := range parts[1:] {
		cur = cur.child(seg)
		cur.duration += seconds
	}
}

func (t *Tree) bucket(path string) string {
	if t.h == nil {
		first, _, _ := strings.Cut(path, hierarchy.Separator)
		return strings.ToUpper(first)
	}
	return t.h.Bucket(path)
}

// Duration returns the accumulated seconds at bucket followed by segments,
// or 0 if no such node exists.
func (t *Tree) Duration(bucket string, segments ...string) int {
	cur, ok := t.root.children[bucket]
	if !ok {
		return 0
	}
	for _, s := range segments {
		if cur, ok = cur.children[s]; !ok {
			return 0
		}
	}
	return cur.duration
}

// Total returns the sum of all bucket durations.
func (t *Tree) Total() int {
	sum := 0
	for _, b := range t.root.children {
		sum += b.duration
	}
	return sum
}

// Buckets returns the top-level bucket names in render order.
func (t *Tree) Buckets() []string {
	var names []string
	for _, b := range t.root.sorted() {
		if b.visible() {
			names = append(names, b.name)
		}
	}
	return names
}

// Render emits each bucket as a blank line followed by "NAME: duration", then
// its descendants as "- name: duration" indented two spaces per level.
// When divisor > 1 every duration carries a per-day average.
func (t *Tree) Render(divisor int) []string {
	return t.render(func(b *node) string {
		return fmt.Sprintf("%s: %s", b.name, clock.FormatAverage(b.duration, divisor))
	}, divisor)
}

// RenderShare is Render for a single day: bucket lines show their share of
// total instead of an average.
func (t *Tree) RenderShare(total int) []string {
	return t.render(func(b *node) string {
		pct := 0.0
		if total > 0 {
			pct = float64(b.duration) / float64(total) * 100
		}
		return fmt.Sprintf("%s: %s (%.2f%%)", b.name, clock.Format(b.duration), pct)
	}, 1)
}

func (t *Tree) render(head func(*node) string, divisor int) []string {
	var lines []string
	for _, b := range t.root.sorted() {
		if !b.visible() {
			continue
		}
		lines = append(lines, "", head(b))
		lines = renderChildren(lines, b, 1, divisor)
	}
	return lines
}

func renderChildren(lines []string, n *node, depth, divisor int) []string {
	for _, c := range n.sorted() {
		if !c.visible() {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s- %s: %s",
			strings.Repeat("  ", depth), c.name, clock.FormatAverage(c.duration, divisor)))
		lines = renderChildren(lines, c, depth+1, divisor)
	}
	return lines
}
