package classifier

import (
	St "github.com/austencloud/tka-scribe-sub004/types"
)

// minDirectionVotes of the eight quarter-boundary samples must agree
const minDirectionVotes = 4

// RotationDirection samples the end location of both tracks at the four
// quarter boundaries (cyclic, last quarter back to the first) and returns
// the quarter-turn direction most samples follow.
// Ambiguous or unsupported sequences return the empty string.
func RotationDirection(beats []St.Beat) string {
	n := len(beats)
	if n < 4 || n%4 != 0 {
		return ""
	}
	q := n / 4

	var cw, ccw int
	for k := 0; k < 4; k++ {
		from := beats[(k+1)*q-1]
		to := beats[((k+2)*q-1)%n]
		for _, tr := range [2][2]St.Track{
			{from.Primary, to.Primary},
			{from.Secondary, to.Secondary},
		} {
			if !ValidLocation(tr[0].End) || !ValidLocation(tr[1].End) {
				continue
			}
			switch tr[1].End {
			case Rotate90CW(tr[0].End):
				cw++
			case Rotate90CCW(tr[0].End):
				ccw++
			}
		}
	}

	switch {
	case cw >= minDirectionVotes && cw > ccw:
		return St.DirectionCW
	case ccw >= minDirectionVotes && ccw > cw:
		return St.DirectionCCW
	default:
		return ""
	}
}
