package search

import (
	"math"

	"github.com/opencorechess/plyengine/internal/eval"
	"github.com/opencorechess/plyengine/internal/rules"
)

// Minimax is the classic (non-negamax) formulation: White maximizes,
// Black minimizes, and the two cases are written out separately rather
// than folded together with a sign flip. This package's tests
// cross-check Negamax's score against this independently-structured
// implementation of the same search; cmd/plybench does not call it.
func Minimax(pos *rules.Position, depth int, evalFn eval.Func, opts Options) Result {
	if pos.Turn() == rules.White {
		return searchMax(pos, depth, evalFn, opts)
	}
	return searchMin(pos, depth, evalFn, opts)
}

func searchMax(pos *rules.Position, depth int, evalFn eval.Func, opts Options) Result {
	opts.tick()
	if depth == 0 {
		return Result{Score: evalFn(pos, rules.White)}
	}
	if terminal, _ := pos.Terminal(); terminal {
		return Result{Score: evalFn(pos, rules.White)}
	}
	best := math.Inf(-1)
	var bestMove rules.Move
	hasMove := false
	for _, mv := range pos.LegalMoves() {
		pos.Push(mv)
		child := searchMin(pos, depth-1, evalFn, opts)
		pos.Pop()
		if !hasMove || child.Score > best || (child.Score == best && opts.tieBreakWins()) {
			best, bestMove, hasMove = child.Score, mv, true
		}
	}
	return Result{Score: best, Move: bestMove, HasMove: hasMove}
}

func searchMin(pos *rules.Position, depth int, evalFn eval.Func, opts Options) Result {
	opts.tick()
	if depth == 0 {
		return Result{Score: evalFn(pos, rules.White)}
	}
	if terminal, _ := pos.Terminal(); terminal {
		return Result{Score: evalFn(pos, rules.White)}
	}
	best := math.Inf(1)
	var bestMove rules.Move
	hasMove := false
	for _, mv := range pos.LegalMoves() {
		pos.Push(mv)
		child := searchMax(pos, depth-1, evalFn, opts)
		pos.Pop()
		if !hasMove || child.Score < best || (child.Score == best && opts.tieBreakWins()) {
			best, bestMove, hasMove = child.Score, mv, true
		}
	}
	return Result{Score: best, Move: bestMove, HasMove: hasMove}
}

// MinimaxAlphaBeta is Minimax plus pruning, again written as separate
// max/min cases instead of negamax's sign-flipped recursion.
func MinimaxAlphaBeta(pos *rules.Position, depth int, evalFn eval.Func, opts Options) Result {
	if pos.Turn() == rules.White {
		return maxAB(pos, depth, math.Inf(-1), math.Inf(1), evalFn, opts)
	}
	return minAB(pos, depth, math.Inf(-1), math.Inf(1), evalFn, opts)
}

func maxAB(pos *rules.Position, depth int, alpha, beta float64, evalFn eval.Func, opts Options) Result {
	opts.tick()
	if depth == 0 {
		return Result{Score: evalFn(pos, rules.White)}
	}
	if terminal, _ := pos.Terminal(); terminal {
		return Result{Score: evalFn(pos, rules.White)}
	}
	best := math.Inf(-1)
	var bestMove rules.Move
	hasMove := false
	for _, mv := range pos.LegalMoves() {
		pos.Push(mv)
		child := minAB(pos, depth-1, alpha, beta, evalFn, opts)
		pos.Pop()
		if !hasMove || child.Score > best || (child.Score == best && opts.tieBreakWins()) {
			best, bestMove, hasMove = child.Score, mv, true
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return Result{Score: best, Move: bestMove, HasMove: hasMove}
}

func minAB(pos *rules.Position, depth int, alpha, beta float64, evalFn eval.Func, opts Options) Result {
	opts.tick()
	if depth == 0 {
		return Result{Score: evalFn(pos, rules.White)}
	}
	if terminal, _ := pos.Terminal(); terminal {
		return Result{Score: evalFn(pos, rules.White)}
	}
	best := math.Inf(1)
	var bestMove rules.Move
	hasMove := false
	for _, mv := range pos.LegalMoves() {
		pos.Push(mv)
		child := maxAB(pos, depth-1, alpha, beta, evalFn, opts)
		pos.Pop()
		if !hasMove || child.Score < best || (child.Score == best && opts.tieBreakWins()) {
			best, bestMove, hasMove = child.Score, mv, true
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return Result{Score: best, Move: bestMove, HasMove: hasMove}
}
