package classifier

import (
	St "github.com/austencloud/tka-scribe-sub004/types"
)

// positionMap is one of the base position checks
type positionMap struct {
	rotation Rotation
	mirrored bool
	flipped  bool
	apply    func(St.Location) St.Location
}

var positionMaps = []positionMap{
	{apply: identity},
	{rotation: Rot90CW, apply: Rotate90CW},
	{rotation: Rot90CCW, apply: Rotate90CCW},
	{rotation: Rot180, apply: Rotate180},
	{mirrored: true, apply: MirrorVertical},
	{flipped: true, apply: FlipHorizontal},
}

// transform assembles the compound label for one combination of base checks
func (pm positionMap) transform(swapped, inverted bool) Transform {
	t := Transform{
		Rotation: pm.rotation,
		Mirrored: pm.mirrored,
		Flipped:  pm.flipped,
		Swapped:  swapped,
		Inverted: inverted,
	}
	if t == (Transform{}) {
		t.Repeated = true
	}
	return t
}

// Compare returns every transform that maps b1 onto b2.
//
// Each base position map is tested against same-track and swapped-track
// correspondence, with motions either equal or inverted. Every match
// in the supported label set is returned, ambiguity is resolved later
// by the classifier. Missing fields fail the individual check.
//
// A swap is only meaningful when b1's two tracks carry different motion
// types, so no swap-bearing label is produced otherwise.
func Compare(b1, b2 St.Beat) TransformSet {
	set := make(TransformSet)
	swapOK := meaningfulSwap(b1)

	for _, pm := range positionMaps {
		for _, swapped := range []bool{false, true} {
			if swapped && !swapOK {
				continue
			}

			to1, to2 := b2.Primary, b2.Secondary
			if swapped {
				to1, to2 = b2.Secondary, b2.Primary
			}
			if !positionsMatch(pm.apply, b1.Primary, to1) || !positionsMatch(pm.apply, b1.Secondary, to2) {
				continue
			}

			for _, inverted := range []bool{false, true} {
				if !motionsMatch(b1.Primary.Motion, to1.Motion, inverted) ||
					!motionsMatch(b1.Secondary.Motion, to2.Motion, inverted) {
					continue
				}
				if t := pm.transform(swapped, inverted); supported(t) {
					set.add(t)
				}
			}
		}
	}

	return set
}

func meaningfulSwap(b St.Beat) bool {
	p, s := b.Primary.Motion, b.Secondary.Motion
	return p != "" && s != "" && p != s
}

func positionsMatch(apply func(St.Location) St.Location, from, to St.Track) bool {
	if !ValidLocation(from.Start) || !ValidLocation(from.End) ||
		!ValidLocation(to.Start) || !ValidLocation(to.End) {
		return false
	}
	return apply(from.Start) == to.Start && apply(from.End) == to.End
}

func motionsMatch(from, to St.MotionType, inverted bool) bool {
	if from == "" || to == "" {
		return false
	}
	if inverted {
		return InvertMotion(from) == to
	}
	return from == to
}
