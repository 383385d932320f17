// Package memo implements the transposition memo the search kernel
// consults to skip re-deriving scores for positions reached by more
// than one move order.
package memo

import (
	"errors"
	"math"
	"sync"

	"github.com/opencorechess/plyengine/internal/rules"
)

// ErrCorruption is returned by Validate when a looked-up entry's bound
// or score cannot be a legitimate search result: an unrecognized Bound
// value, or a NaN score. This should only ever
// surface under a programming bug (e.g. a fingerprint collision between
// unrelated memo implementations sharing a cache); it is the search
// kernel's one fatal assertion over the memo's contents (spec.md §7).
var ErrCorruption = errors.New("memo: entry bound/score is not a legitimate search result")

// Bound records whether Entry.Score is exact, or only a bound on the
// true value because the search that produced it was cut off by alpha
// or beta.
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

// Entry is what the memo stores for one position. Age is the halfmove
// clock at the position the entry was computed for; it carries no
// correctness weight on its own and exists only so a replacement policy
// may use it as a tiebreaker (e.g. prefer the newer of two same-depth
// entries).
type Entry struct {
	Move  rules.Move
	Depth int
	Score float64
	Bound Bound
	Age   int
}

// Validate reports ErrCorruption if e could not possibly have been
// produced by a correct search call: score is NaN, or Bound is outside
// {Exact, LowerBound, UpperBound}. It does not (and cannot, without the
// probing call's own alpha/beta) check the tighter per-bound invariants
// from spec.md §4.3; those are enforced by construction in search.Tabular's
// store step, not re-derived here.
func (e Entry) Validate() error {
	if math.IsNaN(e.Score) {
		return ErrCorruption
	}
	if e.Bound != Exact && e.Bound != LowerBound && e.Bound != UpperBound {
		return ErrCorruption
	}
	return nil
}

// Memo is the transposition memo contract the search kernel depends on.
// Implementations must be safe for concurrent use only if the caller
// intends to search concurrently; the search kernel itself is
// single-threaded per call, but the façade may share one memo across
// successive searches.
type Memo interface {
	Lookup(fp rules.Fingerprint) (Entry, bool)
	Store(fp rules.Fingerprint, e Entry)
	// Clear discards every entry, used when a position change makes the
	// memo's contents no longer relevant (e.g. starting a new game).
	Clear()
}

// MapMemo is the default memo: an unbounded map guarded by a mutex. It
// never evicts, which is fine for a single game's worth of search but
// unbounded over many games; BoundedMemo exists for that case.
type MapMemo struct {
	mu      sync.RWMutex
	entries map[rules.Fingerprint]Entry
}

// NewMapMemo returns an empty MapMemo.
func NewMapMemo() *MapMemo {
	return &MapMemo{entries: make(map[rules.Fingerprint]Entry)}
}

func (m *MapMemo) Lookup(fp rules.Fingerprint) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[fp]
	return e, ok
}

func (m *MapMemo) Store(fp rules.Fingerprint, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[fp]; ok && existing.Depth > e.Depth {
		// A deeper search already produced a result for this position;
		// a shallower one is strictly less informative and is dropped.
		return
	}
	m.entries[fp] = e
}

func (m *MapMemo) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[rules.Fingerprint]Entry)
}

// Size returns the number of entries currently stored, for tests and
// bench reporting.
func (m *MapMemo) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
