package classifier

import (
	"fmt"
	"sort"
	"strings"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

// Rotation is the position rotation part of a Transform
type Rotation uint8

const (
	RotNone Rotation = iota
	Rot90CW
	Rot90CCW
	Rot180
)

// Component names, as persisted in results
const (
	CompRotated  = "rotated"
	CompMirrored = "mirrored"
	CompFlipped  = "flipped"
	CompSwapped  = "swapped"
	CompInverted = "inverted"
	CompRepeated = "repeated"
	CompModular  = "modular"
)

// Interval keys
const (
	IntervalRotation = "rotation"
	IntervalSwap     = "swap"
	IntervalMirror   = "mirror"
	IntervalFlip     = "flip"
	IntervalInvert   = "invert"
	IntervalRepeat   = "repeat"
)

// Transform is one member of the closed transformation label set.
// Compounds are combinations of the flags, never free-form strings.
// The struct is comparable and is used directly as a set key.
type Transform struct {
	Rotation Rotation
	Mirrored bool
	Flipped  bool
	Swapped  bool
	Inverted bool
	Repeated bool
}

var rotationLabels = map[Rotation]string{
	Rot90CW:  "rotated90cw",
	Rot90CCW: "rotated90ccw",
	Rot180:   "rotated180",
}

// Label renders the canonical label, e.g. "rotated90ccw+swapped+inverted"
func (t Transform) Label() string {
	var parts []string
	if t.Rotation != RotNone {
		parts = append(parts, rotationLabels[t.Rotation])
	}
	if t.Mirrored {
		parts = append(parts, CompMirrored)
	}
	if t.Flipped {
		parts = append(parts, CompFlipped)
	}
	if t.Swapped {
		parts = append(parts, CompSwapped)
	}
	if t.Inverted {
		parts = append(parts, CompInverted)
	}
	if t.Repeated {
		parts = append(parts, CompRepeated)
	}
	return strings.Join(parts, "+")
}

func (t Transform) String() string { return t.Label() }

// ParseTransform reads a canonical label back into a Transform.
// Only labels the comparator can produce are accepted.
func ParseTransform(label string) (Transform, error) {
	var t Transform
	if label == "" {
		return t, fmt.Errorf("empty transform label")
	}
	for _, part := range strings.Split(label, "+") {
		switch part {
		case "rotated90cw":
			t.Rotation = Rot90CW
		case "rotated90ccw":
			t.Rotation = Rot90CCW
		case "rotated180":
			t.Rotation = Rot180
		case CompMirrored:
			t.Mirrored = true
		case CompFlipped:
			t.Flipped = true
		case CompSwapped:
			t.Swapped = true
		case CompInverted:
			t.Inverted = true
		case CompRepeated:
			t.Repeated = true
		default:
			return Transform{}, fmt.Errorf("unknown transform component %q in %q", part, label)
		}
	}
	if !supported(t) || t.Label() != label {
		return Transform{}, fmt.Errorf("unsupported transform label %q", label)
	}
	return t, nil
}

// supported is the closed label set. Anything the base checks can
// construct outside of it is discarded by the comparator.
func supported(t Transform) bool {
	switch {
	case t.Repeated:
		return t == Transform{Repeated: true}
	case t.Rotation != RotNone:
		return !t.Mirrored && !t.Flipped
	case t.Mirrored:
		return !t.Flipped && !t.Inverted
	case t.Flipped:
		return !t.Swapped
	case t.Swapped && t.Inverted:
		return false
	default:
		return t.Swapped || t.Inverted
	}
}

// Components returns the sorted base component names
func (t Transform) Components() []string {
	var c []string
	if t.Rotation != RotNone {
		c = append(c, CompRotated)
	}
	if t.Mirrored {
		c = append(c, CompMirrored)
	}
	if t.Flipped {
		c = append(c, CompFlipped)
	}
	if t.Swapped {
		c = append(c, CompSwapped)
	}
	if t.Inverted {
		c = append(c, CompInverted)
	}
	if t.Repeated {
		c = append(c, CompRepeated)
	}
	sort.Strings(c)
	return c
}

// Intervals maps every component of t to the pairing granularity it was found at
func (t Transform) Intervals(interval string) map[string]string {
	iv := make(map[string]string)
	if t.Rotation != RotNone {
		iv[IntervalRotation] = interval
	}
	if t.Mirrored {
		iv[IntervalMirror] = interval
	}
	if t.Flipped {
		iv[IntervalFlip] = interval
	}
	if t.Swapped {
		iv[IntervalSwap] = interval
	}
	if t.Inverted {
		iv[IntervalInvert] = interval
	}
	if t.Repeated {
		iv[IntervalRepeat] = interval
	}
	return iv
}

// Description is the human readable form, e.g. "Rotated 180° + Swapped".
// A non-empty direction overrides the direction carried by a 90° label.
func (t Transform) Description(direction string) string {
	var parts []string
	switch t.Rotation {
	case Rot180:
		parts = append(parts, "Rotated 180°")
	case Rot90CW, Rot90CCW:
		dir := direction
		if dir == "" {
			dir = St.DirectionCW
			if t.Rotation == Rot90CCW {
				dir = St.DirectionCCW
			}
		}
		parts = append(parts, "Rotated 90° "+strings.ToUpper(dir))
	}
	if t.Mirrored {
		parts = append(parts, "Mirrored")
	}
	if t.Flipped {
		parts = append(parts, "Flipped")
	}
	if t.Swapped {
		parts = append(parts, "Swapped")
	}
	if t.Inverted {
		parts = append(parts, "Inverted")
	}
	if t.Repeated {
		parts = append(parts, "Repeated")
	}
	return strings.Join(parts, " + ")
}

// TransformSet is the set of transforms relating two beats
type TransformSet map[Transform]struct{}

// Has reports set membership
func (s TransformSet) Has(t Transform) bool {
	_, ok := s[t]
	return ok
}

func (s TransformSet) add(t Transform) { s[t] = struct{}{} }

// Intersect returns the members present in both sets
func (s TransformSet) Intersect(o TransformSet) TransformSet {
	out := make(TransformSet)
	for t := range s {
		if o.Has(t) {
			out.add(t)
		}
	}
	return out
}

// Sorted returns the members by priority, highest first
func (s TransformSet) Sorted() []Transform {
	out := make([]Transform, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sortByPriority(out)
	return out
}

// Labels is Sorted rendered as labels
func (s TransformSet) Labels() []string {
	sorted := s.Sorted()
	labels := make([]string, len(sorted))
	for i, t := range sorted {
		labels[i] = t.Label()
	}
	return labels
}
