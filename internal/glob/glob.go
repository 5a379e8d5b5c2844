// Package glob matches declared sidecar file patterns against the real
// children of a directory.
//
// Checking a compiled glob against every child is much more expensive than a
// direct name comparison, and most declared entries name exactly one file.
// So each pattern is first looked up as a literal name with a binary search
// over the sorted children; only when that fails is it compiled and matched
// as a glob.
package glob

import (
	"sort"

	gglob "github.com/gobwas/glob"
)

// Matcher computes which children match which patterns. A single Matcher can
// be reused across directories to avoid reallocating the match table.
type Matcher struct {
	fileMatches [][]int
	patMatched  []bool
}

// FindMatches populates the matcher from a new set of names and patterns.
// Names MUST be sorted lexicographically. When shortCircuit is true each
// pattern is matched with at most one name, which is cheaper when the caller
// only needs to know whether a pattern matched at all.
func (m *Matcher) FindMatches(names []string, patterns []string, shortCircuit bool) {
	m.fileMatches = resize(m.fileMatches, len(names))
	for i := range m.fileMatches {
		m.fileMatches[i] = m.fileMatches[i][:0]
	}
	m.patMatched = m.patMatched[:0]
	for range patterns {
		m.patMatched = append(m.patMatched, false)
	}
	for pi, pattern := range patterns {
		fi := sort.SearchStrings(names, pattern)
		if fi < len(names) && names[fi] == pattern {
			m.fileMatches[fi] = append(m.fileMatches[fi], pi)
			m.patMatched[pi] = true
			continue
		}
		g, err := gglob.Compile(pattern)
		if err != nil {
			// An uncompilable pattern matches nothing; check will report it
			// as unsatisfied.
			continue
		}
		for fi, name := range names {
			if g.Match(name) {
				m.fileMatches[fi] = append(m.fileMatches[fi], pi)
				m.patMatched[pi] = true
				if shortCircuit {
					break
				}
			}
		}
	}
}

// MatchedPatterns returns the indices of all patterns that matched the name
// at index fi. The returned slice is valid until the next FindMatches call.
func (m *Matcher) MatchedPatterns(fi int) []int {
	return m.fileMatches[fi]
}

// PatternMatched reports whether the pattern at index pi matched at least
// one name.
func (m *Matcher) PatternMatched(pi int) bool {
	return m.patMatched[pi]
}

// FileMatched reports whether the name at index fi matched at least one
// pattern.
func (m *Matcher) FileMatched(fi int) bool {
	return len(m.fileMatches[fi]) > 0
}

func resize(s [][]int, n int) [][]int {
	if cap(s) < n {
		return make([][]int, n)
	}
	return s[:n]
}
