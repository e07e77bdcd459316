package classifier

import (
	"fmt"
	"log/slog"
	"strings"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

// Classify determines whether a sequence loops and, when it does,
// which transformation relates each beat to its partner.
//
// The halved pairing is intersected across all pairs. When the length
// is divisible by four the quartered pairing is tried too, and a
// quarter-turn found there becomes the primary interval. With no common
// transformation the modular detector runs, then a per-component vote.
//
// Classify is pure: the same sequence always yields the same result.
func Classify(seq St.Sequence) St.ClassificationResult {
	res := St.ClassificationResult{
		SequenceID:            seq.ID,
		Components:            []string{},
		Intervals:             map[string]string{},
		CandidateDesignations: []St.CandidateDesignation{},
	}

	if !IsCircular(seq) {
		res.Notes = "not circular"
		return res
	}
	res.IsCircular = true

	halvedSets := pairSets(HalvedPairs(seq.Beats))
	halved := commonTransforms(halvedSets)

	quarterSets := pairSets(QuarteredPairs(seq.Beats))
	var quartered []Transform
	for _, t := range commonTransforms(quarterSets) {
		if t.Rotation == Rot90CW || t.Rotation == Rot90CCW {
			quartered = append(quartered, t)
		}
	}

	var ds []designation
	var method string
	var pairCount int

	switch {
	case len(quartered) > 0:
		method, pairCount = St.Quartered, len(quarterSets)
		direction := RotationDirection(seq.Beats)
		for _, t := range quartered {
			ds = append(ds, designation{transform: t, interval: St.Quartered, direction: direction})
		}
		// the halved half-turn stays on offer as the simpler explanation
		for _, t := range halved {
			if t.Rotation == Rot180 {
				ds = append(ds, designation{transform: t, interval: St.Halved})
			}
		}

	case len(halved) > 0:
		method, pairCount = St.Halved, len(halvedSets)
		for _, t := range halved {
			ds = append(ds, designation{transform: t, interval: St.Halved})
		}

	default:
		if motifs, ok := DetectModular(seq.Beats); ok {
			return modularResult(res, motifs)
		}
		method, pairCount = "component vote", len(halvedSets)
		for _, t := range componentVote(halvedSets) {
			ds = append(ds, designation{transform: t, interval: St.Halved})
		}
	}

	if len(ds) == 0 {
		res.Notes = fmt.Sprintf("circular, no common transformation across %d halved pairs", len(halvedSets))
		slog.Debug("No loop type found", slog.String("sequence", seq.ID), slog.Int("beats", len(seq.Beats)))
		return res
	}

	candidates := buildDesignations(ds)
	primary := candidates[0]

	res.LoopType = primary.Label
	res.Components = primary.Components
	res.Intervals = primary.Intervals
	res.RotationDirection = primary.RotationDirection
	res.CandidateDesignations = candidates
	res.NeedsVerification = true
	res.Notes = fmt.Sprintf("detected %s via %s pairing (%d pairs); candidates: %s",
		primary.Label, method, pairCount, candidateLabels(candidates))

	slog.Debug("Loop type found",
		slog.String("sequence", seq.ID),
		slog.String("loopType", res.LoopType),
		slog.String("method", method),
		slog.Int("candidates", len(candidates)))

	return res
}

// commonTransforms intersects the per-pair sets. Every member of the
// result holds for the whole pairing, sorted by priority.
func commonTransforms(sets []TransformSet) []Transform {
	if len(sets) == 0 {
		return nil
	}
	common := sets[0]
	for _, s := range sets[1:] {
		common = common.Intersect(s)
	}
	return pruneVacuousInversion(common).Sorted()
}

// pruneVacuousInversion drops T+inverted when T also holds: then every
// motion involved is a fixed point of inversion and the flag says nothing.
func pruneVacuousInversion(s TransformSet) TransformSet {
	out := make(TransformSet, len(s))
	for t := range s {
		if t.Inverted {
			partner := t
			partner.Inverted = false
			if partner == (Transform{}) {
				partner.Repeated = true
			}
			if s.Has(partner) {
				continue
			}
		}
		out.add(t)
	}
	return out
}

var voteBases = []Transform{
	{Rotation: Rot90CW},
	{Rotation: Rot90CCW},
	{Rotation: Rot180},
	{Mirrored: true},
	{Flipped: true},
	{Swapped: true},
	{Inverted: true},
	{Repeated: true},
}

// componentVote accepts a base label only when every pair's set
// contains it exactly. Compounds never count towards their parts.
func componentVote(sets []TransformSet) []Transform {
	if len(sets) == 0 {
		return nil
	}
	accepted := make(TransformSet)
	for _, base := range voteBases {
		matches := 0
		for _, s := range sets {
			if s.Has(base) {
				matches++
			}
		}
		if matches == len(sets) {
			accepted.add(base)
		}
	}
	return pruneVacuousInversion(accepted).Sorted()
}

func modularResult(res St.ClassificationResult, motifs []Motif) St.ClassificationResult {
	res.LoopType = CompModular
	res.Components = []string{CompModular}
	res.CandidateDesignations = []St.CandidateDesignation{modularDesignation()}
	res.NeedsVerification = true

	parts := make([]string, len(motifs))
	for i, m := range motifs {
		parts[i] = fmt.Sprintf("%s%v=%s", m.Letter, m.Indices, m.Label())
	}
	res.Notes = "detected modular via letter motifs: " + strings.Join(parts, ", ")
	return res
}

func candidateLabels(cs []St.CandidateDesignation) string {
	labels := make([]string, len(cs))
	for i, c := range cs {
		labels[i] = c.Label
		if iv := c.Intervals[IntervalRotation]; iv != "" {
			labels[i] += "@" + iv
		}
	}
	return strings.Join(labels, ", ")
}
