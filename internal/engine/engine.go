// Package engine is the façade a caller plays against: it owns the
// position, the side it plays, the evaluator it scores with, and the
// transposition memo it carries across turns.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/opencorechess/plyengine/internal/eval"
	"github.com/opencorechess/plyengine/internal/iterative"
	"github.com/opencorechess/plyengine/internal/memo"
	"github.com/opencorechess/plyengine/internal/rules"
	"github.com/opencorechess/plyengine/internal/search"
)

// Options configures an Engine at construction. Zero-value Options
// selects sensible defaults (see New).
type Options struct {
	MaxDepth       int
	Timeout        time.Duration
	RandomTieBreak bool
	Logger         Logger
	Memo           memo.Memo
}

// Engine plays one color in an ongoing game.
type Engine struct {
	Color     rules.Color
	Evaluator eval.Func
	Memo      memo.Memo
	Logger    Logger

	maxDepth int
	timeout  time.Duration
	opts     search.Options

	pos *rules.Position
}

// New returns an Engine seeded at pos, playing color, scoring with
// evaluator. A zero Options searches to depth 30 with a 5 second budget,
// matching the reference engine's depth and time defaults. The
// randomized tie-break is off unless Options.RandomTieBreak is set, so a
// zero Options always keeps the first of several equally scored moves.
func New(pos *rules.Position, color rules.Color, evaluator eval.Func, opts Options) *Engine {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = 30
	}
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = NopLogger{}
	}
	if opts.Memo == nil {
		opts.Memo = memo.NewMapMemo()
	}
	return &Engine{
		Color:     color,
		Evaluator: evaluator,
		Memo:      opts.Memo,
		Logger:    opts.Logger,
		maxDepth:  opts.MaxDepth,
		timeout:   opts.Timeout,
		opts:      search.Options{RandomTieBreak: opts.RandomTieBreak},
		pos:       pos,
	}
}

// Position returns the current position. Callers must not Push/Pop it
// directly; use ApplyOpponentMove and ChooseMove.
func (e *Engine) Position() *rules.Position {
	return e.pos
}

// ApplyOpponentMove records a move played by whichever side the engine
// is not playing. uci must be legal from the current position.
func (e *Engine) ApplyOpponentMove(uci string) error {
	mv, err := e.pos.ParseUCI(uci)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidMove, uci, err)
	}
	e.pos.Push(mv)
	return nil
}

// ChooseMove runs iterative deepening from the current position,
// pushes the chosen move, and returns it as a UCI string. It returns
// ErrNoLegalMove if the position has no legal moves (checkmate or
// stalemate), ErrMakeUnmakeImbalance if the search kernel somehow left
// the position stack unbalanced (a defensive check backing Property 1,
// not an expected outcome), and ErrMemoCorruption if search.Tabular
// ever panics on a memo entry it cannot trust.
func (e *Engine) ChooseMove() (move string, err error) {
	if terminal, _ := e.pos.Terminal(); terminal {
		return "", ErrNoLegalMove
	}

	depthBefore := e.pos.Depth()
	defer func() {
		if r := recover(); r != nil {
			e.pos.TruncateTo(depthBefore)
			if rerr, ok := r.(error); ok && errors.Is(rerr, ErrMemoCorruption) {
				err = rerr
				return
			}
			panic(r)
		}
	}()

	var nodes uint64
	opts := e.opts
	opts.Nodes = &nodes

	outcome := iterative.Run(e.pos, e.maxDepth, e.timeout, e.Color, e.Evaluator, e.Memo, opts,
		func(depth int, elapsed time.Duration, result search.Result) {
			uci := ""
			if result.HasMove {
				uci = e.pos.UCI(result.Move)
			}
			e.Logger.LogDepth(depth, elapsed, uci, result.Score, nodes)
		})

	if e.pos.Depth() != depthBefore {
		return "", ErrMakeUnmakeImbalance
	}
	if !outcome.HasMove {
		return "", ErrNoLegalMove
	}

	uci := e.pos.UCI(outcome.Move)
	e.pos.Push(outcome.Move)
	return uci, nil
}
