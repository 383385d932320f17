package memo

import (
	"math"
	"testing"

	"github.com/opencorechess/plyengine/internal/rules"
	"github.com/stretchr/testify/require"
)

func fp(b byte) rules.Fingerprint {
	var f rules.Fingerprint
	f[0] = b
	return f
}

func TestMapMemoStoreAndLookup(t *testing.T) {
	m := NewMapMemo()
	key := fp(1)

	_, ok := m.Lookup(key)
	require.False(t, ok)

	m.Store(key, Entry{Score: 1.5, Depth: 4, Bound: Exact})
	entry, ok := m.Lookup(key)
	require.True(t, ok)
	require.Equal(t, 1.5, entry.Score)
	require.Equal(t, Exact, entry.Bound)
}

func TestMapMemoKeepsDeeperEntry(t *testing.T) {
	m := NewMapMemo()
	key := fp(2)

	m.Store(key, Entry{Score: 1, Depth: 5, Bound: Exact})
	m.Store(key, Entry{Score: 2, Depth: 2, Bound: Exact})

	entry, ok := m.Lookup(key)
	require.True(t, ok)
	require.Equal(t, 5, entry.Depth)
	require.Equal(t, 1.0, entry.Score)
}

func TestMapMemoClear(t *testing.T) {
	m := NewMapMemo()
	m.Store(fp(3), Entry{Score: 1, Depth: 1})
	require.Equal(t, 1, m.Size())
	m.Clear()
	require.Equal(t, 0, m.Size())
}

func TestEntryValidateAcceptsWellFormedEntries(t *testing.T) {
	for _, b := range []Bound{Exact, LowerBound, UpperBound} {
		require.NoError(t, Entry{Score: 1, Bound: b}.Validate())
	}
}

func TestEntryValidateRejectsNaNScore(t *testing.T) {
	require.ErrorIs(t, Entry{Score: math.NaN(), Bound: Exact}.Validate(), ErrCorruption)
}

func TestEntryValidateRejectsUnknownBound(t *testing.T) {
	require.ErrorIs(t, Entry{Score: 1, Bound: Bound(250)}.Validate(), ErrCorruption)
}

func TestBoundedMemoStoreAndLookup(t *testing.T) {
	bm, err := NewBoundedMemo(1000)
	require.NoError(t, err)
	defer bm.Close()

	key := fp(4)
	bm.Store(key, Entry{Score: 3, Depth: 2, Bound: LowerBound})

	// Ristretto admits asynchronously; this test only asserts Store and
	// Lookup don't error or panic, not that the value is immediately
	// visible.
	_, _ = bm.Lookup(key)
}
