package plugin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	St "github.com/austencloud/tka-scribe-sub004/types"
)

// MemoryOutput keeps results in a map, used for dry runs and the web surface
type MemoryOutput struct {
	mu      sync.RWMutex
	results map[string]St.ClassificationResult
}

func NewMemoryOutput() *MemoryOutput {
	return &MemoryOutput{results: make(map[string]St.ClassificationResult)}
}

func (mo *MemoryOutput) WriteResult(r *St.ClassificationResult) error {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	mo.results[r.SequenceID] = *r
	return nil
}

func (mo *MemoryOutput) WriteBatch(rs []*St.ClassificationResult) error {
	mo.mu.Lock()
	defer mo.mu.Unlock()
	for _, r := range rs {
		mo.results[r.SequenceID] = *r
	}
	return nil
}

func (mo *MemoryOutput) Result(ctx context.Context, id string) (*St.ClassificationResult, error) {
	mo.mu.RLock()
	defer mo.mu.RUnlock()
	r, ok := mo.results[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return &r, nil
}

// Results returns copies ordered by sequence ID
func (mo *MemoryOutput) Results(ctx context.Context) ([]*St.ClassificationResult, error) {
	mo.mu.RLock()
	defer mo.mu.RUnlock()

	ids := make([]string, 0, len(mo.results))
	for id := range mo.results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*St.ClassificationResult, len(ids))
	for i, id := range ids {
		r := mo.results[id]
		out[i] = &r
	}
	return out, nil
}

func (mo *MemoryOutput) Flush() error { return nil }
func (mo *MemoryOutput) Close() error { return nil }
func (mo *MemoryOutput) Type() string { return "Memory" }
