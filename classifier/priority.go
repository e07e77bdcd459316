package classifier

import "sort"

// Priority tiers, lower wins. The ordering is observable in output:
//
//	pure rotations → rotation+inverted → rotation+swapped →
//	rotation+swapped+inverted → flipped+inverted, mirrored+swapped →
//	mirrored, flipped, swapped, inverted → repeated
const (
	tierRotation = iota * 10
	tierRotationInverted
	tierRotationSwapped
	tierRotationSwappedInverted
	tierCompound
	tierSimple
	tierRepeated
	tierUnknown
)

var rotationOrder = map[Rotation]int{
	Rot90CW:  0,
	Rot90CCW: 1,
	Rot180:   2,
}

// Priority ranks a transform, lower is preferred.
func Priority(t Transform) int {
	if t.Rotation != RotNone {
		r := rotationOrder[t.Rotation]
		switch {
		case !t.Swapped && !t.Inverted:
			return tierRotation + r
		case !t.Swapped:
			return tierRotationInverted + r
		case !t.Inverted:
			return tierRotationSwapped + r
		default:
			return tierRotationSwappedInverted + r
		}
	}

	switch {
	case t.Flipped && t.Inverted:
		return tierCompound
	case t.Mirrored && t.Swapped:
		return tierCompound + 1
	case t.Mirrored:
		return tierSimple
	case t.Flipped:
		return tierSimple + 1
	case t.Swapped:
		return tierSimple + 2
	case t.Inverted:
		return tierSimple + 3
	case t.Repeated:
		return tierRepeated
	}
	return tierUnknown
}

// sortByPriority orders in place, ties broken by label so output is stable
func sortByPriority(ts []Transform) {
	sort.SliceStable(ts, func(i, j int) bool {
		pi, pj := Priority(ts[i]), Priority(ts[j])
		if pi != pj {
			return pi < pj
		}
		return ts[i].Label() < ts[j].Label()
	})
}
