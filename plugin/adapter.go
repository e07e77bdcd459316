package plugin

/*

	The Adapter sits aside /batch/ and /web/
	Contains core interfaces for Plugins:
	where sequences come from and where results go.

*/

import (
	"context"
	"errors"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownOutput = errors.New("unknown output")
	ErrInvalidID     = errors.New("invalid sequence id")
)

// SequenceSource supplies extracted sequences
type SequenceSource interface {
	Sequences(ctx context.Context) ([]St.Sequence, error)         // Every sequence, ordered by ID
	Sequence(ctx context.Context, id string) (St.Sequence, error) // One sequence or ErrNotFound
}

// ResultOutput can be used to define a place for classifications to go,
// one by one or in batches if supported by the output type.
// Writes are keyed by sequence ID, the last write wins.
type ResultOutput interface {
	WriteResult(r *St.ClassificationResult) error                            // Write singleton result
	WriteBatch(rs []*St.ClassificationResult) error                          // Write batches of results
	Result(ctx context.Context, id string) (*St.ClassificationResult, error) // One result or ErrNotFound
	Results(ctx context.Context) ([]*St.ClassificationResult, error)         // Every stored result
	Flush() error                                                            // Flush any buffered data
	Close() error                                                            // Close the adapter and release resources
	Type() string                                                            // ID for output
}

// normalizeResult restores the empty collections a decoder turns into nil
func normalizeResult(r *St.ClassificationResult) {
	if r.Components == nil {
		r.Components = []string{}
	}
	if r.Intervals == nil {
		r.Intervals = map[string]string{}
	}
	if r.CandidateDesignations == nil {
		r.CandidateDesignations = []St.CandidateDesignation{}
	}
	for i := range r.CandidateDesignations {
		c := &r.CandidateDesignations[i]
		if c.Components == nil {
			c.Components = []string{}
		}
		if c.Intervals == nil {
			c.Intervals = map[string]string{}
		}
	}
}
