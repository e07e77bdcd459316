package batch

/*
	Batch driver

	Loads sequences from a source, classifies them on a bounded
	worker pool and either reports (dry-run) or persists (apply).
*/

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	Sc "github.com/austencloud/tka-scribe-sub004/classifier"
	So "github.com/austencloud/tka-scribe-sub004/obvy"
	Sp "github.com/austencloud/tka-scribe-sub004/plugin"
	St "github.com/austencloud/tka-scribe-sub004/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	ModeDryRun = "dry-run"
	ModeApply  = "apply"
)

var ErrInvalidMode = errors.New("invalid mode")

type Runner struct {
	Source  Sp.SequenceSource
	Output  Sp.ResultOutput // required in apply mode
	Workers int
	Mode    string
	Target  string // a single sequence ID, empty for all
	Stats   *So.StatsInternal
	Now     func() time.Time
}

// Run classifies every selected sequence.
// In apply mode the first store failure cancels the remaining work and
// is returned, batches already flushed stay in the store.
func (rn *Runner) Run(ctx context.Context) (*Report, error) {
	switch rn.Mode {
	case ModeDryRun:
	case ModeApply:
		if rn.Output == nil {
			return nil, fmt.Errorf("%w: apply needs an output", ErrInvalidMode)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, rn.Mode)
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx, span := startRunSpan(ctx, runID, rn.Mode, rn.Target)
	defer span.End()

	rep, err := rn.run(ctx, runID)
	setRunSpanResult(span, rep, err)

	rn.Stats.RecBatchTimer(time.Since(start))
	if err != nil {
		rn.Stats.RecRun(rn.Mode, "error")
		slog.Error("Batch run failed",
			slog.String("run", runID),
			slog.String("mode", rn.Mode),
			slog.Any("error", err))
		return nil, err
	}
	rn.Stats.RecRun(rn.Mode, "ok")

	rep.Elapsed = time.Since(start)
	slog.Info("Batch run complete",
		slog.String("run", runID),
		slog.String("mode", rn.Mode),
		slog.Int("total", rep.Total),
		slog.Int("classified", rep.Classified),
		slog.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

func (rn *Runner) run(ctx context.Context, runID string) (*Report, error) {
	seqs, err := rn.load(ctx)
	if err != nil {
		return nil, err
	}

	now := rn.Now
	if now == nil {
		now = time.Now
	}
	workers := rn.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]St.ClassificationResult, len(seqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, seq := range seqs {
		i, seq := i, seq
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			_, span := startClassifySpan(gctx, seq.ID, len(seq.Beats))
			res := Sc.Classify(seq)
			res.ClassifiedAt = now().UTC()
			res.Notes = fmt.Sprintf("%s; run %s", res.Notes, runID)
			setClassifySpanResult(span, res)
			span.End()

			results[i] = res
			rn.Stats.RecClassified(res.LoopType)

			if rn.Mode == ModeApply {
				if err := rn.Output.WriteResult(&results[i]); err != nil {
					return fmt.Errorf("store result %s: %w", seq.ID, err)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if rn.Mode == ModeApply {
		if err := rn.Output.Flush(); err != nil {
			return nil, fmt.Errorf("flush results: %w", err)
		}
	}

	return NewReport(runID, rn.Mode, results), nil
}

func (rn *Runner) load(ctx context.Context) ([]St.Sequence, error) {
	if rn.Source == nil {
		return nil, errors.New("no sequence source")
	}

	if rn.Target != "" {
		seq, err := rn.Source.Sequence(ctx, rn.Target)
		if err != nil {
			return nil, fmt.Errorf("load sequence %s: %w", rn.Target, err)
		}
		return []St.Sequence{seq}, nil
	}

	seqs, err := rn.Source.Sequences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sequences: %w", err)
	}
	sort.SliceStable(seqs, func(i, j int) bool { return seqs[i].ID < seqs[j].ID })
	return seqs, nil
}
