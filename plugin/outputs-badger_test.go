package plugin_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	Sp "github.com/austencloud/tka-scribe-sub004/plugin"
	St "github.com/austencloud/tka-scribe-sub004/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBadgerStore(t *testing.T) {
	t.Run("Opens an in-memory store", func(t *testing.T) {
		store, closedb := makeTestBadgerStore(t)
		defer closedb()

		assert.Equal(t, 5, store.BatchSize)
		assert.Contains(t, store.Type(), "BadgerDB")
	})

	t.Run("Opens an on-disk store", func(t *testing.T) {
		store, err := Sp.NewBadgerStore(Sp.DefaultBadgerConfig(t.TempDir()))
		require.NoError(t, err)
		assert.NoError(t, store.Close())
	})

	t.Run("Requires a path on disk", func(t *testing.T) {
		_, err := Sp.NewBadgerStore(Sp.BadgerConfig{BatchSize: 1})
		assert.Error(t, err)
	})
}

func TestBadgerStore_WriteResult(t *testing.T) {
	ctx := context.Background()

	t.Run("Buffers until the batch size is reached", func(t *testing.T) {
		store, closedb := makeTestBadgerStore(t)
		defer closedb()

		for i := 0; i < 4; i++ {
			require.NoError(t, store.WriteResult(testResult(fmt.Sprintf("seq-%d", i), "rotated180")))
		}
		results, err := store.Results(ctx)
		require.NoError(t, err)
		assert.Len(t, results, 0)

		// the test store batch size is 5
		require.NoError(t, store.WriteResult(testResult("seq-4", "swapped")))
		results, err = store.Results(ctx)
		require.NoError(t, err)
		assert.Len(t, results, 5)
		assert.Len(t, store.Buffer, 0)
	})

	t.Run("Flush writes a partial batch", func(t *testing.T) {
		store, closedb := makeTestBadgerStore(t)
		defer closedb()

		require.NoError(t, store.WriteResult(testResult("only", "mirrored")))
		require.NoError(t, store.Flush())

		got, err := store.Result(ctx, "only")
		require.NoError(t, err)
		assert.Equal(t, "mirrored", got.LoopType)
	})

	t.Run("Last write wins", func(t *testing.T) {
		store, closedb := makeTestBadgerStore(t)
		defer closedb()

		require.NoError(t, store.WriteBatch([]*St.ClassificationResult{testResult("dup", "swapped")}))
		require.NoError(t, store.WriteBatch([]*St.ClassificationResult{testResult("dup", "rotated180")}))

		got, err := store.Result(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, "rotated180", got.LoopType)
	})
}

func TestBadgerStore_Result(t *testing.T) {
	ctx := context.Background()
	store, closedb := makeTestBadgerStore(t)
	defer closedb()

	want := testResult("abc", "rotated90cw")
	want.RotationDirection = St.DirectionCW
	require.NoError(t, store.WriteBatch([]*St.ClassificationResult{want}))

	t.Run("Round trips through the store", func(t *testing.T) {
		got, err := store.Result(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, want.LoopType, got.LoopType)
		assert.Equal(t, want.Components, got.Components)
		assert.Equal(t, want.Intervals, got.Intervals)
		assert.Equal(t, St.DirectionCW, got.RotationDirection)
		assert.True(t, want.ClassifiedAt.Equal(got.ClassifiedAt))
	})

	t.Run("Unclassified results keep empty collections", func(t *testing.T) {
		empty := &St.ClassificationResult{
			SequenceID:            "empty",
			Components:            []string{},
			Intervals:             map[string]string{},
			CandidateDesignations: []St.CandidateDesignation{},
		}
		require.NoError(t, store.WriteBatch([]*St.ClassificationResult{empty}))

		got, err := store.Result(ctx, "empty")
		require.NoError(t, err)
		assert.NotNil(t, got.Components)
		assert.NotNil(t, got.Intervals)
		assert.NotNil(t, got.CandidateDesignations)
	})

	t.Run("Missing result is ErrNotFound", func(t *testing.T) {
		_, err := store.Result(ctx, "nope")
		assert.ErrorIs(t, err, Sp.ErrNotFound)
	})

	t.Run("Results skip the sequence keyspace", func(t *testing.T) {
		require.NoError(t, store.PutSequences([]St.Sequence{{ID: "abc"}}))
		results, err := store.Results(ctx)
		require.NoError(t, err)
		for _, r := range results {
			assert.NotEmpty(t, r.SequenceID)
		}
		assert.Len(t, results, 2)
	})
}

func TestBadgerStore_Sequences(t *testing.T) {
	ctx := context.Background()
	store, closedb := makeTestBadgerStore(t)
	defer closedb()

	seqs := []St.Sequence{
		{
			ID: "b",
			Beats: []St.Beat{
				{Index: 1, Letter: "A", Primary: St.Track{Start: St.LocN, End: St.LocE, Motion: St.MotionPro}},
			},
			Start: &St.StartPosition{Primary: St.Track{End: St.LocN}},
		},
		{ID: "a"},
	}
	require.NoError(t, store.PutSequences(seqs))

	t.Run("Lists sequences by ID", func(t *testing.T) {
		got, err := store.Sequences(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})

	t.Run("Reads one sequence", func(t *testing.T) {
		got, err := store.Sequence(ctx, "b")
		require.NoError(t, err)
		require.Len(t, got.Beats, 1)
		assert.Equal(t, St.LocE, got.Beats[0].Primary.End)
		require.NotNil(t, got.Start)
		assert.Equal(t, St.LocN, got.Start.Primary.End)
	})

	t.Run("Missing sequence is ErrNotFound", func(t *testing.T) {
		_, err := store.Sequence(ctx, "zzz")
		assert.ErrorIs(t, err, Sp.ErrNotFound)
	})

	t.Run("Cancelled context stops a scan", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := store.Sequences(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// Helpers //

func makeTestBadgerStore(t *testing.T) (*Sp.BadgerStore, func()) {
	t.Helper()

	store, err := Sp.NewBadgerStore(Sp.InMemoryBadgerConfig())
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
	}
	return store, cleanup
}

func testResult(id, loopType string) *St.ClassificationResult {
	return &St.ClassificationResult{
		SequenceID:            id,
		IsCircular:            true,
		LoopType:              loopType,
		Components:            []string{"rotated"},
		Intervals:             map[string]string{"rotation": St.Halved},
		CandidateDesignations: []St.CandidateDesignation{{Label: loopType, Components: []string{"rotated"}}},
		NeedsVerification:     true,
		ClassifiedAt:          time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}
