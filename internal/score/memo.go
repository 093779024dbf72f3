package score

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// DefaultMemoEntries bounds a Memo when no size is configured.
const DefaultMemoEntries = 4096

// Memo caches results of a Calculator. Compute is referentially
// transparent, so a cached Result is always the same as a fresh one.
type Memo struct {
	calc  Calculator
	cache *ristretto.Cache
}

// NewMemo wraps calc with a cache holding up to maxEntries results.
func NewMemo(calc Calculator, maxEntries int64) (*Memo, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoEntries
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("score.NewMemo: %w", err)
	}
	return &Memo{calc: calc, cache: cache}, nil
}

// Compute returns the cached result for in, computing it on a miss.
func (m *Memo) Compute(in Input) Result {
	key := in.Key()
	if v, ok := m.cache.Get(key); ok {
		if r, ok := v.(Result); ok {
			return r.Clone()
		}
	}
	r := m.calc.Compute(in)
	m.cache.Set(key, r.Clone(), 1)
	return r
}

// Wait blocks until pending cache writes are applied.
func (m *Memo) Wait() {
	m.cache.Wait()
}

// Close releases the cache.
func (m *Memo) Close() {
	m.cache.Close()
}

// Clone returns a copy of r that shares no pointers with it.
func (r Result) Clone() Result {
	c := r
	if r.Discard != nil {
		d := *r.Discard
		c.Discard = &d
	}
	if r.SelfDraw != nil {
		s := *r.SelfDraw
		c.SelfDraw = &s
	}
	return c
}
