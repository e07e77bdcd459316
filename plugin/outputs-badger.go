package plugin

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	St "github.com/austencloud/tka-scribe-sub004/types"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// Key prefixes, one keyspace per record kind
const (
	prefixSequence = "seq/"
	prefixResult   = "loop/"
)

// BadgerConfig holds configuration for a BadgerStore
type BadgerConfig struct {
	Path       string // ignored when InMemory
	InMemory   bool
	SyncWrites bool
	BatchSize  int
	Logger     *slog.Logger // nil disables badger's own logging
}

// DefaultBadgerConfig is the on-disk store used by the CLI
func DefaultBadgerConfig(path string) BadgerConfig {
	return BadgerConfig{
		Path:       path,
		SyncWrites: true,
		BatchSize:  500,
	}
}

// InMemoryBadgerConfig is for tests, nothing touches the disk
func InMemoryBadgerConfig() BadgerConfig {
	return BadgerConfig{
		InMemory:  true,
		BatchSize: 5,
	}
}

// BadgerStore persists sequences and their classification results.
// It is both a SequenceSource and a ResultOutput.
type BadgerStore struct {
	MU        sync.Mutex
	DB        *badger.DB
	BatchSize int
	Buffer    []*St.ClassificationResult
}

// badgerLogger adapts slog to badger's Logger interface
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("path is required for persistent store")
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path).WithCompression(options.ZSTD)
	}
	opts = opts.WithNumVersionsToKeep(1).WithSyncWrites(cfg.SyncWrites)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		slog.Error("BadgerStore failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	slog.Info("BadgerStore opened",
		slog.String("path", cfg.Path),
		slog.Bool("inMemory", cfg.InMemory),
		slog.Int("batchSize", cfg.BatchSize))

	return &BadgerStore{
		DB:        db,
		BatchSize: cfg.BatchSize,
		Buffer:    make([]*St.ClassificationResult, 0, cfg.BatchSize),
	}, nil
}

// WriteResult queues up a batch of results,
// when batchsize is reached, it calls flushLocked()
// which calls WriteBatch() with the new batch
func (bs *BadgerStore) WriteResult(r *St.ClassificationResult) error {
	bs.MU.Lock()
	defer bs.MU.Unlock()

	bs.Buffer = append(bs.Buffer, r)
	if len(bs.Buffer) >= bs.BatchSize {
		return bs.flushLocked()
	}
	return nil
}

// WriteBatch encodes and writes results in one badger write batch
func (bs *BadgerStore) WriteBatch(rs []*St.ClassificationResult) error {
	wb := bs.DB.NewWriteBatch()
	defer wb.Cancel()

	for _, r := range rs {
		v, err := encode(r)
		if err != nil {
			return fmt.Errorf("encode result %s: %w", r.SequenceID, err)
		}
		if err := wb.Set(ResultKey(r.SequenceID), v); err != nil {
			slog.Error("BadgerStore failed to set key in batch",
				slog.Any("error", err),
				slog.String("sequence", r.SequenceID))
			return fmt.Errorf("write batch error: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		slog.Error("BadgerStore failed to flush batch", slog.Any("error", err))
		return fmt.Errorf("batch flush error: %w", err)
	}

	return nil
}

// Flush is the public method that blocks,
// it sends data to WriteBatch and then clears the buffer
func (bs *BadgerStore) Flush() error {
	bs.MU.Lock()
	defer bs.MU.Unlock()

	if len(bs.Buffer) == 0 {
		return nil
	}
	return bs.flushLocked()
}

// flushLocked mimics Flush without locking
func (bs *BadgerStore) flushLocked() error {
	err := bs.WriteBatch(bs.Buffer)
	bs.Buffer = bs.Buffer[:0]
	return err
}

// Close returns a Flush error but still attempts to close
func (bs *BadgerStore) Close() error {
	slog.Info("BadgerStore closing, flushing buffer",
		slog.Int("bufferSize", len(bs.Buffer)))
	flushErr := bs.Flush()
	closeErr := bs.DB.Close()

	if flushErr != nil {
		slog.Error("BadgerStore failed to flush on close", slog.Any("error", flushErr))
		return fmt.Errorf("flush failed, close may have failed: %w", flushErr)
	}

	if closeErr != nil {
		slog.Error("BadgerStore failed to close database", slog.Any("error", closeErr))
		return fmt.Errorf("close failed: %w", closeErr)
	}

	slog.Info("BadgerStore closed successfully")
	return nil
}

func (bs *BadgerStore) Type() string { return "BadgerDB" }

// Result reads one stored classification
func (bs *BadgerStore) Result(ctx context.Context, id string) (*St.ClassificationResult, error) {
	var r St.ClassificationResult
	if err := bs.get(ctx, ResultKey(id), &r); err != nil {
		return nil, err
	}
	normalizeResult(&r)
	return &r, nil
}

// Results reads every stored classification, ordered by sequence ID
func (bs *BadgerStore) Results(ctx context.Context) ([]*St.ClassificationResult, error) {
	var results []*St.ClassificationResult
	err := bs.scan(ctx, prefixResult, func(val []byte) error {
		var r St.ClassificationResult
		if err := decode(val, &r); err != nil {
			return fmt.Errorf("result decode error: %w", err)
		}
		normalizeResult(&r)
		results = append(results, &r)
		return nil
	})

	slog.Debug("BadgerStore Results", slog.Int("count", len(results)))
	return results, err
}

// PutSequences stores sequences for later classification, keyed by ID
func (bs *BadgerStore) PutSequences(seqs []St.Sequence) error {
	wb := bs.DB.NewWriteBatch()
	defer wb.Cancel()

	for _, seq := range seqs {
		v, err := encode(&seq)
		if err != nil {
			return fmt.Errorf("encode sequence %s: %w", seq.ID, err)
		}
		if err := wb.Set(SequenceKey(seq.ID), v); err != nil {
			return fmt.Errorf("write batch error: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		slog.Error("BadgerStore failed to flush sequences", slog.Any("error", err))
		return fmt.Errorf("batch flush error: %w", err)
	}
	return nil
}

// Sequence reads one stored sequence
func (bs *BadgerStore) Sequence(ctx context.Context, id string) (St.Sequence, error) {
	var seq St.Sequence
	err := bs.get(ctx, SequenceKey(id), &seq)
	return seq, err
}

// Sequences reads every stored sequence, ordered by ID
func (bs *BadgerStore) Sequences(ctx context.Context) ([]St.Sequence, error) {
	var seqs []St.Sequence
	err := bs.scan(ctx, prefixSequence, func(val []byte) error {
		var seq St.Sequence
		if err := decode(val, &seq); err != nil {
			return fmt.Errorf("sequence decode error: %w", err)
		}
		seqs = append(seqs, seq)
		return nil
	})
	return seqs, err
}

func (bs *BadgerStore) get(ctx context.Context, key []byte, into interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return bs.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return decode(val, into)
		})
	})
}

// scan walks one prefix in key order.
// badger hands each value to fn inside the read transaction.
func (bs *BadgerStore) scan(ctx context.Context, prefix string, fn func(val []byte) error) error {
	p := []byte(prefix)
	return bs.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = p
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := it.Item().Value(fn); err != nil {
				slog.Error("BadgerStore callback failure", slog.Any("error", err))
				return fmt.Errorf("item data error: %w", err)
			}
		}
		return nil
	})
}

// ResultKey is the key of a sequence's classification
func ResultKey(id string) []byte { return []byte(prefixResult + id) }

// SequenceKey is the key of a stored sequence
func SequenceKey(id string) []byte { return []byte(prefixSequence + id) }

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, into interface{}) error {
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(into)
}
