// Package search implements the negamax-based search kernel: plain
// negamax, negamax with alpha-beta pruning, and the memo-backed
// "tabular" variant the engine façade actually drives. Classic
// (non-negamax) minimax and minimax+alpha-beta variants live alongside
// it in variants.go. cmd/plybench drives only Tabular; Negamax,
// AlphaBeta and the minimax variants are compared against each other by
// this package's tests.
package search

import (
	"math"
	"math/rand"

	"github.com/opencorechess/plyengine/internal/eval"
	"github.com/opencorechess/plyengine/internal/memo"
	"github.com/opencorechess/plyengine/internal/rules"
)

// Result is a search outcome: a score for the side to move at the root,
// and the best move found, if any (HasMove is false at a terminal or
// depth-0 node, and Move is then the zero value).
type Result struct {
	Score   float64
	Move    rules.Move
	HasMove bool
}

// Options configures a single search call.
type Options struct {
	// RandomTieBreak, when true, gives every move tied for best a 25%
	// chance of replacing the incumbent rather than always keeping the
	// first move found. Disable for deterministic tests.
	RandomTieBreak bool
	// Rand is the tie-break source. A nil Rand with RandomTieBreak true
	// falls back to a package-level default source.
	Rand *rand.Rand
	// Nodes, if non-nil, is incremented once per node visited.
	Nodes *uint64
}

var defaultRand = rand.New(rand.NewSource(1))

func (o Options) tieBreakWins() bool {
	if !o.RandomTieBreak {
		return false
	}
	r := o.Rand
	if r == nil {
		r = defaultRand
	}
	return r.Float64() > 0.75
}

func (o Options) tick() {
	if o.Nodes != nil {
		*o.Nodes++
	}
}

// Negamax is the unpruned reference search: every legal move is tried,
// the child is scored from the opponent's point of view and negated,
// and the best (negated) score wins. It is a reference for the other
// searches in this package's tests; Tabular is what the engine actually
// plays with.
func Negamax(pos *rules.Position, depth int, color rules.Color, evalFn eval.Func, opts Options) Result {
	opts.tick()
	if depth == 0 {
		return Result{Score: evalFn(pos, color)}
	}
	if terminal, _ := pos.Terminal(); terminal {
		return Result{Score: evalFn(pos, color)}
	}

	moves := pos.LegalMoves()
	best := math.Inf(-1)
	var bestMove rules.Move
	hasMove := false

	for _, mv := range moves {
		pos.Push(mv)
		child := Negamax(pos, depth-1, opponent(color), evalFn, opts)
		pos.Pop()
		score := -child.Score

		if !hasMove || score > best || (score == best && opts.tieBreakWins()) {
			best = score
			bestMove = mv
			hasMove = true
		}
	}
	return Result{Score: best, Move: bestMove, HasMove: hasMove}
}

// AlphaBeta is Negamax with an alpha-beta window, no transposition memo.
func AlphaBeta(pos *rules.Position, depth int, alpha, beta float64, color rules.Color, evalFn eval.Func, opts Options) Result {
	opts.tick()
	if depth == 0 {
		return Result{Score: evalFn(pos, color)}
	}
	if terminal, _ := pos.Terminal(); terminal {
		return Result{Score: evalFn(pos, color)}
	}

	moves := pos.LegalMoves()
	best := math.Inf(-1)
	var bestMove rules.Move
	hasMove := false
	newAlpha := alpha

	for _, mv := range moves {
		pos.Push(mv)
		child := AlphaBeta(pos, depth-1, -beta, -newAlpha, opponent(color), evalFn, opts)
		pos.Pop()
		score := -child.Score

		if !hasMove || score > best || (score == best && opts.tieBreakWins()) {
			best = score
			bestMove = mv
			hasMove = true
		}
		if best > newAlpha {
			newAlpha = best
		}
		if newAlpha >= beta {
			break
		}
	}
	return Result{Score: best, Move: bestMove, HasMove: hasMove}
}

// Tabular is AlphaBeta plus a transposition memo: an entry deep enough
// to cover the remaining depth either short-circuits the subtree (an
// EXACT entry, or a bound that closes the window) or narrows the window;
// shallower entries are ignored by the probe. Move ordering sorts legal
// moves by the EXACT score their child position already has on record,
// highest first (unscored children sort last). That score is from the
// child's side to move, i.e. the opponent's, point of view.
//
// The store step classifies the result against the ORIGINAL alpha
// passed into this call, not the alpha narrowed by the memo probe
// above. Using the narrowed value here would misclassify a result as an
// upper bound when it is actually exact, corrupting the memo for every
// future probe of this position — this is the one place in the function
// where the two alphas must not be conflated.
func Tabular(pos *rules.Position, depth int, alpha, beta float64, color rules.Color, evalFn eval.Func, m memo.Memo, opts Options) Result {
	opts.tick()
	if depth == 0 {
		return Result{Score: evalFn(pos, color)}
	}
	if terminal, _ := pos.Terminal(); terminal {
		return Result{Score: evalFn(pos, color)}
	}

	originalAlpha := alpha
	newAlpha, newBeta := alpha, beta

	fp := pos.Fingerprint()
	if entry, ok := m.Lookup(fp); ok && entry.Depth >= depth {
		if err := entry.Validate(); err != nil {
			panic(err)
		}
		switch entry.Bound {
		case memo.Exact:
			return Result{Score: entry.Score, Move: entry.Move, HasMove: true}
		case memo.LowerBound:
			if entry.Score > newAlpha {
				newAlpha = entry.Score
			}
		case memo.UpperBound:
			if entry.Score < newBeta {
				newBeta = entry.Score
			}
		}
		if newAlpha >= newBeta {
			return Result{Score: entry.Score, Move: entry.Move, HasMove: true}
		}
	}

	moves := orderMoves(pos, m, pos.LegalMoves())
	best := math.Inf(-1)
	var bestMove rules.Move
	hasMove := false

	for _, mv := range moves {
		pos.Push(mv)
		child := Tabular(pos, depth-1, -newBeta, -newAlpha, opponent(color), evalFn, m, opts)
		pos.Pop()
		score := -child.Score

		if !hasMove || score > best || (score == best && opts.tieBreakWins()) {
			best = score
			bestMove = mv
			hasMove = true
		}
		if best > newAlpha {
			newAlpha = best
		}
		if newAlpha >= newBeta {
			break
		}
	}

	bound := memo.Exact
	switch {
	case best <= originalAlpha:
		bound = memo.UpperBound
	case best >= newBeta:
		bound = memo.LowerBound
	}
	m.Store(fp, memo.Entry{Move: bestMove, Depth: depth, Score: best, Bound: bound, Age: pos.HalfmoveClock()})

	return Result{Score: best, Move: bestMove, HasMove: hasMove}
}

func opponent(color rules.Color) rules.Color {
	if color == rules.White {
		return rules.Black
	}
	return rules.White
}
