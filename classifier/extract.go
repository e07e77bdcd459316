package classifier

import (
	"log/slog"
	"sort"
	"strings"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

// Extract normalizes raw sequence entries into a Sequence.
//
// Entries are told apart by structure, not value:
//   - an entry carrying sequence_start_position, or beat 0, is the start position
//   - an entry with beat >= 1 is a beat
//   - anything else (the metadata header) is skipped
//
// Beats are ordered by beat number and reindexed 1..n.
// If id is empty the metadata word is used.
func Extract(id string, entries []St.RawEntry) St.Sequence {
	seq := St.Sequence{ID: id}

	type numbered struct {
		n    int
		beat St.Beat
	}
	var beats []numbered

	for _, e := range entries {
		switch {
		case e.SequenceStartPosition != "" || (e.Beat != nil && *e.Beat == 0):
			seq.Start = &St.StartPosition{
				Primary:   rawTrack(e.BlueAttributes),
				Secondary: rawTrack(e.RedAttributes),
			}
		case e.Beat != nil && *e.Beat > 0:
			beats = append(beats, numbered{
				n: *e.Beat,
				beat: St.Beat{
					Letter:    e.Letter,
					Primary:   rawTrack(e.BlueAttributes),
					Secondary: rawTrack(e.RedAttributes),
				},
			})
		default:
			if seq.ID == "" && e.Word != "" {
				seq.ID = e.Word
			}
		}
	}

	sort.SliceStable(beats, func(i, j int) bool { return beats[i].n < beats[j].n })

	seq.Beats = make([]St.Beat, len(beats))
	for i, b := range beats {
		if b.n != i+1 {
			slog.Debug("Beat numbering not contiguous, reindexing",
				slog.String("sequence", seq.ID),
				slog.Int("beat", b.n),
				slog.Int("index", i+1))
		}
		b.beat.Index = i + 1
		seq.Beats[i] = b.beat
	}

	return seq
}

func rawTrack(rt *St.RawTrack) St.Track {
	if rt == nil {
		return St.Track{}
	}
	return St.Track{
		Start:  ParseLocation(rt.StartLoc),
		End:    ParseLocation(rt.EndLoc),
		Motion: ParseMotion(rt.MotionType),
	}
}

// ParseLocation normalizes a raw location.
// Unknown values come back empty, which every check treats as missing.
func ParseLocation(s string) St.Location {
	l := St.Location(strings.ToLower(strings.TrimSpace(s)))
	if !ValidLocation(l) {
		return ""
	}
	return l
}

// ParseMotion normalizes a raw motion type, empty stays empty
func ParseMotion(s string) St.MotionType {
	return St.MotionType(strings.ToLower(strings.TrimSpace(s)))
}

// IsCircular reports whether the sequence ends where it started.
// Both tracks must match and a sequence under two beats never loops.
func IsCircular(seq St.Sequence) bool {
	if len(seq.Beats) < 2 || seq.Start == nil {
		return false
	}
	last := seq.Beats[len(seq.Beats)-1]
	return sameEnd(seq.Start.Primary, last.Primary) && sameEnd(seq.Start.Secondary, last.Secondary)
}

func sameEnd(a, b St.Track) bool {
	return ValidLocation(a.End) && a.End == b.End
}
