package classifier

/*
	Geometry

	Static permutation tables over the compass grid and the
	motion inversion. These are process-wide constants, nothing
	writes to them after init.
*/

import (
	St "github.com/austencloud/tka-scribe-sub004/types"
)

var rotate90CW = map[St.Location]St.Location{
	St.LocN:  St.LocE,
	St.LocNE: St.LocSE,
	St.LocE:  St.LocS,
	St.LocSE: St.LocSW,
	St.LocS:  St.LocW,
	St.LocSW: St.LocNW,
	St.LocW:  St.LocN,
	St.LocNW: St.LocNE,
}

var rotate90CCW = map[St.Location]St.Location{
	St.LocN:  St.LocW,
	St.LocNE: St.LocNW,
	St.LocE:  St.LocN,
	St.LocSE: St.LocNE,
	St.LocS:  St.LocE,
	St.LocSW: St.LocSE,
	St.LocW:  St.LocS,
	St.LocNW: St.LocSW,
}

var rotate180 = map[St.Location]St.Location{
	St.LocN:  St.LocS,
	St.LocNE: St.LocSW,
	St.LocE:  St.LocW,
	St.LocSE: St.LocNW,
	St.LocS:  St.LocN,
	St.LocSW: St.LocNE,
	St.LocW:  St.LocE,
	St.LocNW: St.LocSE,
}

// Mirror across the vertical axis: east and west trade places
var mirrorVertical = map[St.Location]St.Location{
	St.LocN:  St.LocN,
	St.LocNE: St.LocNW,
	St.LocE:  St.LocW,
	St.LocSE: St.LocSW,
	St.LocS:  St.LocS,
	St.LocSW: St.LocSE,
	St.LocW:  St.LocE,
	St.LocNW: St.LocNE,
}

// Flip across the horizontal axis: north and south trade places
var flipHorizontal = map[St.Location]St.Location{
	St.LocN:  St.LocS,
	St.LocNE: St.LocSE,
	St.LocE:  St.LocE,
	St.LocSE: St.LocNE,
	St.LocS:  St.LocN,
	St.LocSW: St.LocNW,
	St.LocW:  St.LocW,
	St.LocNW: St.LocSW,
}

// Rotate90CW returns the location a quarter turn clockwise,
// or the empty Location for anything outside the compass set.
func Rotate90CW(l St.Location) St.Location { return rotate90CW[l] }

// Rotate90CCW returns the location a quarter turn counter-clockwise
func Rotate90CCW(l St.Location) St.Location { return rotate90CCW[l] }

// Rotate180 returns the opposite location
func Rotate180(l St.Location) St.Location { return rotate180[l] }

// MirrorVertical swaps east and west
func MirrorVertical(l St.Location) St.Location { return mirrorVertical[l] }

// FlipHorizontal swaps north and south
func FlipHorizontal(l St.Location) St.Location { return flipHorizontal[l] }

func identity(l St.Location) St.Location {
	if !ValidLocation(l) {
		return ""
	}
	return l
}

// ValidLocation reports whether l is one of the eight compass points
func ValidLocation(l St.Location) bool {
	_, ok := rotate180[l]
	return ok
}

// InvertMotion swaps pro and anti, every other motion type is a fixed point.
func InvertMotion(m St.MotionType) St.MotionType {
	switch m {
	case St.MotionPro:
		return St.MotionAnti
	case St.MotionAnti:
		return St.MotionPro
	default:
		return m
	}
}
