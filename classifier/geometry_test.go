package classifier_test

import (
	"testing"

	Sc "github.com/austencloud/tka-scribe-sub004/classifier"
	St "github.com/austencloud/tka-scribe-sub004/types"
)

func TestGeometryLaws(t *testing.T) {
	for _, l := range St.Locations {
		t.Run("four quarter turns return to "+string(l), func(t *testing.T) {
			got := Sc.Rotate90CW(Sc.Rotate90CW(Sc.Rotate90CW(Sc.Rotate90CW(l))))
			assertString(t, string(got), string(l))
		})

		t.Run("two quarter turns make a half turn from "+string(l), func(t *testing.T) {
			assertString(t, string(Sc.Rotate90CW(Sc.Rotate90CW(l))), string(Sc.Rotate180(l)))
			assertString(t, string(Sc.Rotate90CCW(Sc.Rotate90CCW(l))), string(Sc.Rotate180(l)))
		})

		t.Run("cw and ccw cancel out at "+string(l), func(t *testing.T) {
			assertString(t, string(Sc.Rotate90CCW(Sc.Rotate90CW(l))), string(l))
		})

		t.Run("mirror and flip are involutions at "+string(l), func(t *testing.T) {
			assertString(t, string(Sc.MirrorVertical(Sc.MirrorVertical(l))), string(l))
			assertString(t, string(Sc.FlipHorizontal(Sc.FlipHorizontal(l))), string(l))
			assertString(t, string(Sc.Rotate180(Sc.Rotate180(l))), string(l))
		})

		t.Run("mirror then flip is a half turn at "+string(l), func(t *testing.T) {
			assertString(t, string(Sc.FlipHorizontal(Sc.MirrorVertical(l))), string(Sc.Rotate180(l)))
		})
	}

	t.Run("Unknown locations map to nothing", func(t *testing.T) {
		assertString(t, string(Sc.Rotate90CW("north")), "")
		assertString(t, string(Sc.MirrorVertical("")), "")
		assertBool(t, Sc.ValidLocation("x"), false)
		assertBool(t, Sc.ValidLocation(St.LocSW), true)
	})

	t.Run("Mirror keeps the vertical axis", func(t *testing.T) {
		assertString(t, string(Sc.MirrorVertical(St.LocN)), string(St.LocN))
		assertString(t, string(Sc.MirrorVertical(St.LocNE)), string(St.LocNW))
	})

	t.Run("Flip keeps the horizontal axis", func(t *testing.T) {
		assertString(t, string(Sc.FlipHorizontal(St.LocE)), string(St.LocE))
		assertString(t, string(Sc.FlipHorizontal(St.LocNE)), string(St.LocSE))
	})
}

func TestInvertMotion(t *testing.T) {
	cases := map[St.MotionType]St.MotionType{
		St.MotionPro:    St.MotionAnti,
		St.MotionAnti:   St.MotionPro,
		St.MotionStatic: St.MotionStatic,
		St.MotionDash:   St.MotionDash,
		St.MotionFloat:  St.MotionFloat,
	}
	for in, want := range cases {
		t.Run("inverts "+string(in), func(t *testing.T) {
			assertString(t, string(Sc.InvertMotion(in)), string(want))
			assertString(t, string(Sc.InvertMotion(Sc.InvertMotion(in))), string(in))
		})
	}
}
