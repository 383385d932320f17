package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/opencorechess/plyengine/internal/eval"
	"github.com/opencorechess/plyengine/internal/memo"
	"github.com/opencorechess/plyengine/internal/rules"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	pos := rules.NewStartingPosition()
	return New(pos, rules.White, eval.Material, Options{MaxDepth: 2, Timeout: time.Second})
}

func TestChooseMovePushesAMove(t *testing.T) {
	e := newTestEngine(t)
	before := e.Position().FEN()

	uci, err := e.ChooseMove()
	require.NoError(t, err)
	require.NotEmpty(t, uci)
	require.NotEqual(t, before, e.Position().FEN())
}

func TestApplyOpponentMoveRejectsGarbage(t *testing.T) {
	e := newTestEngine(t)
	err := e.ApplyOpponentMove("not-a-move")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidMove))
}

func TestApplyOpponentMoveThenChooseMove(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.ApplyOpponentMove("e2e4"))

	uci, err := e.ChooseMove()
	require.NoError(t, err)
	require.NotEmpty(t, uci)
}

func TestChooseMoveOnCheckmateReturnsNoLegalMove(t *testing.T) {
	// Fool's mate position: Black has just delivered checkmate, White to
	// move with no legal replies.
	pos, err := rules.ParseFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	e := New(pos, rules.White, eval.Material, Options{MaxDepth: 2, Timeout: time.Second})
	_, err = e.ChooseMove()
	require.ErrorIs(t, err, ErrNoLegalMove)
}

// corruptMemo always hands back an entry with an out-of-range Bound, to
// exercise the fatal-assertion path search.Tabular takes on a memo it
// cannot trust, and confirm ChooseMove turns that panic into
// ErrMemoCorruption instead of crashing the process.
type corruptMemo struct{}

func (corruptMemo) Lookup(rules.Fingerprint) (memo.Entry, bool) {
	return memo.Entry{Depth: 99, Bound: memo.Bound(250)}, true
}
func (corruptMemo) Store(rules.Fingerprint, memo.Entry) {}
func (corruptMemo) Clear()                              {}

func TestChooseMoveRecoversFromMemoCorruption(t *testing.T) {
	pos := rules.NewStartingPosition()
	e := New(pos, rules.White, eval.Material, Options{MaxDepth: 2, Timeout: time.Second, Memo: corruptMemo{}})

	before := pos.FEN()
	_, err := e.ChooseMove()
	require.ErrorIs(t, err, ErrMemoCorruption)
	require.Equal(t, before, pos.FEN())
}
