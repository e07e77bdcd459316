package classifier_test

import (
	"encoding/json"
	"testing"

	Sc "github.com/austencloud/tka-scribe-sub004/classifier"
	St "github.com/austencloud/tka-scribe-sub004/types"
)

const rawDocument = `[
	{"word": "ABAB", "author": "someone"},
	{"beat": 0, "sequence_start_position": "alpha",
	 "blue_attributes": {"end_loc": "n"}, "red_attributes": {"end_loc": "s"}},
	{"beat": 2, "letter": "B",
	 "blue_attributes": {"motion_type": "pro", "start_loc": "e", "end_loc": "s"},
	 "red_attributes": {"motion_type": "anti", "start_loc": "w", "end_loc": "n"}},
	{"beat": 1, "letter": "A",
	 "blue_attributes": {"motion_type": "PRO", "start_loc": "N ", "end_loc": "e"},
	 "red_attributes": {"motion_type": "pro", "start_loc": "s", "end_loc": "w"}},
	{"beat": 3, "letter": "A",
	 "blue_attributes": {"motion_type": "pro", "start_loc": "s", "end_loc": "w"},
	 "red_attributes": {"motion_type": "pro", "start_loc": "n", "end_loc": "e"}},
	{"beat": 5, "letter": "B",
	 "blue_attributes": {"motion_type": "pro", "start_loc": "w", "end_loc": "n"},
	 "red_attributes": {"motion_type": "anti", "start_loc": "e", "end_loc": "s"}}
]`

func decodeRaw(t *testing.T, doc string) []St.RawEntry {
	t.Helper()
	var entries []St.RawEntry
	if err := json.Unmarshal([]byte(doc), &entries); err != nil {
		t.Fatalf("could not decode document: %v", err)
	}
	return entries
}

func TestExtract(t *testing.T) {
	entries := decodeRaw(t, rawDocument)

	t.Run("Uses the metadata word when no id is given", func(t *testing.T) {
		seq := Sc.Extract("", entries)
		assertString(t, seq.ID, "ABAB")
	})

	t.Run("Keeps an explicit id", func(t *testing.T) {
		seq := Sc.Extract("seq-1", entries)
		assertString(t, seq.ID, "seq-1")
	})

	t.Run("Orders and reindexes beats", func(t *testing.T) {
		seq := Sc.Extract("", entries)
		assertInt(t, len(seq.Beats), 4)
		for i, b := range seq.Beats {
			assertInt(t, b.Index, i+1)
		}
		assertString(t, seq.Beats[0].Letter, "A")
		assertString(t, seq.Beats[1].Letter, "B")
		assertString(t, seq.Beats[3].Letter, "B")
	})

	t.Run("Normalizes case and whitespace", func(t *testing.T) {
		seq := Sc.Extract("", entries)
		assertString(t, string(seq.Beats[0].Primary.Start), "n")
		assertString(t, string(seq.Beats[0].Primary.Motion), "pro")
	})

	t.Run("Reads the start position", func(t *testing.T) {
		seq := Sc.Extract("", entries)
		if seq.Start == nil {
			t.Fatal("start position missing")
		}
		assertString(t, string(seq.Start.Primary.End), "n")
		assertString(t, string(seq.Start.Secondary.End), "s")
	})

	t.Run("Extracted document classifies as a half turn", func(t *testing.T) {
		got := Sc.Classify(Sc.Extract("", entries))
		assertString(t, got.LoopType, "rotated180")
	})

	t.Run("Missing start position leaves Start nil", func(t *testing.T) {
		seq := Sc.Extract("x", entries[2:])
		if seq.Start != nil {
			t.Errorf("got start %+v, want nil", seq.Start)
		}
		assertBool(t, Sc.IsCircular(seq), false)
	})

	t.Run("Unknown locations are treated as missing", func(t *testing.T) {
		assertString(t, string(Sc.ParseLocation("north")), "")
		assertString(t, string(Sc.ParseLocation(" SW")), "sw")
	})

	t.Run("Missing track attributes stay empty", func(t *testing.T) {
		seq := Sc.Extract("x", decodeRaw(t, `[{"beat": 1, "letter": "A"}]`))
		assertInt(t, len(seq.Beats), 1)
		assertString(t, string(seq.Beats[0].Primary.End), "")
	})
}

func TestRotationDirection(t *testing.T) {
	t.Run("Clockwise quarter turns", func(t *testing.T) {
		assertString(t, Sc.RotationDirection(quarterSeq().Beats), St.DirectionCW)
	})

	t.Run("Counter-clockwise quarter turns", func(t *testing.T) {
		seq := mkSeq("ccw", St.LocN, St.LocS,
			mkBeat(0, "", tr(St.LocN, St.LocW, pro), tr(St.LocS, St.LocE, pro)),
			mkBeat(0, "", tr(St.LocW, St.LocS, pro), tr(St.LocE, St.LocN, pro)),
			mkBeat(0, "", tr(St.LocS, St.LocE, pro), tr(St.LocN, St.LocW, pro)),
			mkBeat(0, "", tr(St.LocE, St.LocN, pro), tr(St.LocW, St.LocS, pro)),
		)
		assertString(t, Sc.RotationDirection(seq.Beats), St.DirectionCCW)
	})

	t.Run("Half turns have no direction", func(t *testing.T) {
		assertString(t, Sc.RotationDirection(halfTurnSeq().Beats[:2]), "")
		seq := mkSeq("still", St.LocN, St.LocS,
			mkBeat(0, "", tr(St.LocN, St.LocN, static), tr(St.LocS, St.LocS, static)),
			mkBeat(0, "", tr(St.LocN, St.LocN, static), tr(St.LocS, St.LocS, static)),
			mkBeat(0, "", tr(St.LocN, St.LocN, static), tr(St.LocS, St.LocS, static)),
			mkBeat(0, "", tr(St.LocN, St.LocN, static), tr(St.LocS, St.LocS, static)),
		)
		assertString(t, Sc.RotationDirection(seq.Beats), "")
	})
}
