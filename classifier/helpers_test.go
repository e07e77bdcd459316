package classifier_test

import (
	"slices"
	"strings"
	"testing"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

func tr(start, end St.Location, m St.MotionType) St.Track {
	return St.Track{Start: start, End: end, Motion: m}
}

func mkBeat(i int, letter string, p, s St.Track) St.Beat {
	return St.Beat{Index: i, Letter: letter, Primary: p, Secondary: s}
}

// mkSeq indexes the beats 1..n and builds a start position from two end locations
func mkSeq(id string, pEnd, sEnd St.Location, beats ...St.Beat) St.Sequence {
	for i := range beats {
		beats[i].Index = i + 1
	}
	return St.Sequence{
		ID:    id,
		Beats: beats,
		Start: &St.StartPosition{
			Primary:   St.Track{End: pEnd},
			Secondary: St.Track{End: sEnd},
		},
	}
}

func assertString(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func assertInt(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func assertBool(t *testing.T, got, want bool) {
	t.Helper()
	if got != want {
		t.Errorf("got %t, want %t", got, want)
	}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func assertStringContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("%q does not contain %q", got, want)
	}
}

func assertError(t *testing.T, got, want error) {
	t.Helper()
	if got != want {
		t.Errorf("got error %v, want %v", got, want)
	}
}

func assertGotError(t *testing.T, got error) {
	t.Helper()
	if got == nil {
		t.Error("expected an error, got none")
	}
}
