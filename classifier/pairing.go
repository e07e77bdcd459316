package classifier

import (
	St "github.com/austencloud/tka-scribe-sub004/types"
)

// Pair is two beats related by a fixed offset
type Pair struct {
	First  St.Beat
	Second St.Beat
}

// HalvedPairs pairs every beat of the first half with its partner
// half a sequence later. Odd or short sequences have no halved pairing.
func HalvedPairs(beats []St.Beat) []Pair {
	n := len(beats)
	if n < 2 || n%2 != 0 {
		return nil
	}
	half := n / 2
	pairs := make([]Pair, 0, half)
	for i := 0; i < half; i++ {
		pairs = append(pairs, Pair{First: beats[i], Second: beats[i+half]})
	}
	return pairs
}

// QuarteredPairs pairs each beat with the beat a quarter later,
// covering three of the four quarter transitions.
// Only defined when the length is divisible by four.
func QuarteredPairs(beats []St.Beat) []Pair {
	n := len(beats)
	if n < 4 || n%4 != 0 {
		return nil
	}
	q := n / 4
	pairs := make([]Pair, 0, 3*q)
	for i := 0; i < 3*q; i++ {
		pairs = append(pairs, Pair{First: beats[i], Second: beats[i+q]})
	}
	return pairs
}

// pairSets runs the comparator over every pair
func pairSets(pairs []Pair) []TransformSet {
	sets := make([]TransformSet, len(pairs))
	for i, p := range pairs {
		sets[i] = Compare(p.First, p.Second)
	}
	return sets
}
