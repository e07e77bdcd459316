package types

/*

	These are the "immutable" core types of Scribe,
	provided for cross-package use (e.g. Plugins) and testing.

	There are no functions defined here.
	Geometry, extraction and classification live in /classifier/.

*/

import "time"

// Location is a point on the 8-point compass grid.
// The empty Location means the field was missing in the source data.
type Location string

const (
	LocN  Location = "n"
	LocNE Location = "ne"
	LocE  Location = "e"
	LocSE Location = "se"
	LocS  Location = "s"
	LocSW Location = "sw"
	LocW  Location = "w"
	LocNW Location = "nw"
)

// Locations lists the closed compass set in clockwise order from north.
var Locations = [8]Location{LocN, LocNE, LocE, LocSE, LocS, LocSW, LocW, LocNW}

// MotionType is the kind of movement a track performs during a beat.
type MotionType string

const (
	MotionPro    MotionType = "pro"
	MotionAnti   MotionType = "anti"
	MotionStatic MotionType = "static"
	MotionDash   MotionType = "dash"
	MotionFloat  MotionType = "float"
)

// MotionTypes lists every known motion type
var MotionTypes = [5]MotionType{MotionPro, MotionAnti, MotionStatic, MotionDash, MotionFloat}

// Track is one of the two independent channels of a beat.
type Track struct {
	Start  Location
	End    Location
	Motion MotionType
}

// Beat is one discrete movement event.
// Index is 1-based, index 0 is reserved for the start position.
type Beat struct {
	Index     int
	Letter    string // event label, only used by modular detection and display
	Primary   Track
	Secondary Track
}

// StartPosition is the pseudo-beat at index 0.
// Only the End location of each track is meaningful.
type StartPosition struct {
	Primary   Track
	Secondary Track
}

// Sequence is an ordered list of contiguous beats plus its start position.
type Sequence struct {
	ID    string
	Beats []Beat
	Start *StartPosition
}

// Interval granularity values
const (
	Halved    = "halved"
	Quartered = "quartered"
)

// Rotation direction values
const (
	DirectionCW  = "cw"
	DirectionCCW = "ccw"
)

// CandidateDesignation is one equally valid classification offered for human review.
type CandidateDesignation struct {
	Components        []string          `json:"components"`
	Intervals         map[string]string `json:"intervals"`
	RotationDirection string            `json:"rotationDirection,omitempty"`
	Label             string            `json:"label"`
	Description       string            `json:"description"`
	Confirmed         bool              `json:"confirmed"`
}

// ClassificationResult is computed fresh for every sequence.
// LoopType is empty when no classification was found.
type ClassificationResult struct {
	SequenceID            string                 `json:"sequenceId"`
	IsCircular            bool                   `json:"isCircular"`
	LoopType              string                 `json:"loopType"`
	Components            []string               `json:"components"`
	Intervals             map[string]string      `json:"intervals"`
	RotationDirection     string                 `json:"rotationDirection,omitempty"`
	CandidateDesignations []CandidateDesignation `json:"candidateDesignations"`
	NeedsVerification     bool                   `json:"needsVerification"`
	Notes                 string                 `json:"notes"`
	ClassifiedAt          time.Time              `json:"classifiedAt"`
}

// RawTrack is one track's attributes as stored in sequence documents.
type RawTrack struct {
	MotionType string `json:"motion_type,omitempty"`
	StartLoc   string `json:"start_loc,omitempty"`
	EndLoc     string `json:"end_loc,omitempty"`
}

// RawEntry is one element of a stored sequence document.
// The same shape carries the metadata header, the start position and the beats,
// which are told apart by which fields are present.
type RawEntry struct {
	Word                  string    `json:"word,omitempty"`
	Author                string    `json:"author,omitempty"`
	Beat                  *int      `json:"beat,omitempty"`
	Letter                string    `json:"letter,omitempty"`
	SequenceStartPosition string    `json:"sequence_start_position,omitempty"`
	BlueAttributes        *RawTrack `json:"blue_attributes,omitempty"`
	RedAttributes         *RawTrack `json:"red_attributes,omitempty"`
}
