// Package taxonomy holds the configured activity categories: each parent
// prefix and the fully-qualified labels allowed under it. A Taxonomy is
// built once per run and is read-only afterwards, so it can be shared by
// reference between validators without locking.
package taxonomy

import (
	"sort"
	"strings"
)

// maxExamples bounds the suggestions attached to a rejected label.
const maxExamples = 3

// Outcome is the result class of Classify.
type Outcome int

const (
	Valid        Outcome = iota // label is an allowed child of its parent
	TooGeneric                  // label equals a bare parent prefix
	WrongChild                  // label has a known parent prefix but is not allowed under it
	Unrecognized                // label matches no known parent prefix
)

// Verdict describes how a label relates to the taxonomy. Parent is set for
// TooGeneric and WrongChild; Examples holds up to three sorted allowed labels
// for WrongChild (from that parent) and Unrecognized (from all parents).
type Verdict struct {
	Outcome  Outcome
	Parent   string
	Examples []string
}

// Taxonomy maps parent prefixes to their allowed labels. The zero value and
// a nil *Taxonomy are both empty; every non-empty label is Unrecognized.
type Taxonomy struct {
	children map[string]map[string]struct{}
	// prefixes are ordered longest first so the most specific parent wins.
	prefixes []string
	all      []string
}

// New builds a Taxonomy from parent → allowed labels. The input is copied.
func New(categories map[string][]string) *Taxonomy {
	t := &Taxonomy{children: make(map[string]map[string]struct{}, len(categories))}
	seen := make(map[string]struct{})
	for parent, labels := range categories {
		set := make(map[string]struct{}, len(labels))
		for _, l := range labels {
			set[l] = struct{}{}
			if _, ok := seen[l]; !ok {
				seen[l] = struct{}{}
				t.all = append(t.all, l)
			}
		}
		t.children[parent] = set
		t.prefixes = append(t.prefixes, parent)
	}
	sort.Slice(t.prefixes, func(i, j int) bool {
		a, b := t.prefixes[i], t.prefixes[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	sort.Strings(t.all)
	return t
}

// Classify resolves label against the taxonomy.
func (t *Taxonomy) Classify(label string) Verdict {
	if t == nil {
		return Verdict{Outcome: Unrecognized}
	}
	if _, ok := t.children[label]; ok {
		return Verdict{Outcome: TooGeneric, Parent: label}
	}
	for _, parent := range t.prefixes {
		if !strings.HasPrefix(label, parent+"_") {
			continue
		}
		allowed := t.children[parent]
		if _, ok := allowed[label]; ok {
			return Verdict{Outcome: Valid, Parent: parent}
		}
		return Verdict{Outcome: WrongChild, Parent: parent, Examples: firstSorted(allowed)}
	}
	return Verdict{Outcome: Unrecognized, Examples: head(t.all)}
}

// Parents returns the parent prefixes in lexical order.
func (t *Taxonomy) Parents() []string {
	if t == nil {
		return nil
	}
	out := append([]string(nil), t.prefixes...)
	sort.Strings(out)
	return out
}

// Len returns the number of parent categories.
func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	return len(t.children)
}

func firstSorted(set map[string]struct{}) []string {
	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return head(labels)
}

func head(labels []string) []string {
	if len(labels) > maxExamples {
		labels = labels[:maxExamples]
	}
	if len(labels) == 0 {
		return nil
	}
	return append([]string(nil), labels...)
}
