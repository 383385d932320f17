package memo

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/opencorechess/plyengine/internal/rules"
)

// BoundedMemo is a transposition memo backed by ristretto, for
// long-running processes (the REPL, the bench harness) that would
// otherwise grow MapMemo without bound across many games. Eviction is
// cost-based admission rather than depth-based replacement, trading a
// small amount of search quality (an evicted deep entry might be
// re-derived) for a hard memory ceiling.
type BoundedMemo struct {
	cache *ristretto.Cache[rules.Fingerprint, Entry]
}

// NewBoundedMemo returns a memo that admits roughly maxEntries entries,
// each costed at 1, before ristretto starts evicting by its sampled-LFU
// policy.
func NewBoundedMemo(maxEntries int64) (*BoundedMemo, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[rules.Fingerprint, Entry]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &BoundedMemo{cache: cache}, nil
}

func (b *BoundedMemo) Lookup(fp rules.Fingerprint) (Entry, bool) {
	return b.cache.Get(fp)
}

func (b *BoundedMemo) Store(fp rules.Fingerprint, e Entry) {
	if existing, ok := b.cache.Get(fp); ok && existing.Depth > e.Depth {
		return
	}
	b.cache.Set(fp, e, 1)
}

func (b *BoundedMemo) Clear() {
	b.cache.Clear()
}

// Close releases the cache's background goroutines. Callers that
// replace a BoundedMemo (e.g. starting a new game) should Close the old
// one.
func (b *BoundedMemo) Close() {
	b.cache.Close()
}
