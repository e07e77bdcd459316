package classifier

/*
	Modular patterns

	Fallback for sequences with no single global transformation,
	but whose recurring letters each follow their own consistent one.
*/

import (
	"sort"
	"strings"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

// PairGraph holds the transform set between every ordered pair of beats,
// keyed by beat index: graph[from][to].
type PairGraph map[int]map[int]TransformSet

// NewPairGraph compares every beat against every other beat
func NewPairGraph(beats []St.Beat) PairGraph {
	g := make(PairGraph, len(beats))
	for _, from := range beats {
		edges := make(map[int]TransformSet, len(beats)-1)
		for _, to := range beats {
			if from.Index == to.Index {
				continue
			}
			edges[to.Index] = Compare(from, to)
		}
		g[from.Index] = edges
	}
	return g
}

// Edge returns the transforms from one beat index to another
func (g PairGraph) Edge(from, to int) TransformSet {
	if edges, ok := g[from]; ok {
		if s, ok := edges[to]; ok {
			return s
		}
	}
	return TransformSet{}
}

// Motif is a recurring letter with the transforms that carry each
// occurrence to the next, the last step wrapping back to the first.
// Each step holds the highest priority transform of that edge.
type Motif struct {
	Letter    string
	Indices   []int
	Signature []Transform
}

// Label renders the signature, e.g. "rotated90cw/rotated90ccw"
func (m Motif) Label() string {
	labels := make([]string, len(m.Signature))
	for i, t := range m.Signature {
		labels[i] = t.Label()
	}
	return strings.Join(labels, "/")
}

// LetterOccurrences groups beat indices by letter, indices ascending.
// Beats without a letter are ignored.
func LetterOccurrences(beats []St.Beat) map[string][]int {
	occ := make(map[string][]int)
	for _, b := range beats {
		if b.Letter == "" {
			continue
		}
		occ[b.Letter] = append(occ[b.Letter], b.Index)
	}
	for _, idx := range occ {
		sort.Ints(idx)
	}
	return occ
}

// allConsecutive is true for runs like [3 4 5], and for single occurrences
func allConsecutive(idx []int) bool {
	for i := 1; i < len(idx); i++ {
		if idx[i] != idx[i-1]+1 {
			return false
		}
	}
	return true
}

// DetectModular returns the motifs whose every step is explained by some
// transform, and whether at least two of them have different signatures.
// Steps are compared in order, so a quarter turn that comes back the
// other way round is still a consistent motif.
func DetectModular(beats []St.Beat) ([]Motif, bool) {
	occ := LetterOccurrences(beats)

	var letters []string
	for letter, idx := range occ {
		if allConsecutive(idx) {
			continue
		}
		letters = append(letters, letter)
	}
	if len(letters) < 2 {
		return nil, false
	}
	sort.Strings(letters)

	graph := NewPairGraph(beats)

	var motifs []Motif
	signatures := make(map[string]bool)
	for _, letter := range letters {
		idx := occ[letter]

		sig := make([]Transform, 0, len(idx))
		for i := range idx {
			step := graph.Edge(idx[i], idx[(i+1)%len(idx)])
			if len(step) == 0 {
				sig = nil
				break
			}
			sig = append(sig, step.Sorted()[0])
		}
		if sig == nil {
			continue
		}

		m := Motif{Letter: letter, Indices: idx, Signature: sig}
		motifs = append(motifs, m)
		signatures[m.Label()] = true
	}

	return motifs, len(signatures) >= 2
}
