// Package iterative implements the iterative deepening driver: it calls
// the tabular search at depth 1, 2, 3, ... reusing the same
// transposition memo across iterations, stopping once the wall clock
// runs out and always returning the last depth that finished completely
// rather than a partial iteration.
package iterative

import (
	"time"

	"github.com/opencorechess/plyengine/internal/eval"
	"github.com/opencorechess/plyengine/internal/memo"
	"github.com/opencorechess/plyengine/internal/rules"
	"github.com/opencorechess/plyengine/internal/search"
)

// Outcome is the result of a deepening run: the best move and score
// found by the deepest iteration that completed within budget, and how
// deep that iteration went.
type Outcome struct {
	search.Result
	Depth int
}

// OnDepth, if set, is called once after every completed iteration, for
// callers that want to log progress (move, score, depth, elapsed).
type OnDepth func(depth int, elapsed time.Duration, result search.Result)

// Run searches pos with increasing depth up to maxDepth, stopping when
// timeout elapses. It never returns a partial iteration. There is no
// mid-iteration cancellation, since Tabular itself doesn't poll a
// clock; instead, after each iteration completes, the elapsed time
// plus a projection of how long the next iteration would take
// (elapsed + (elapsed - previousElapsed)) is compared against timeout,
// and the loop stops before starting an iteration it doesn't expect to
// finish in time.
func Run(pos *rules.Position, maxDepth int, timeout time.Duration, color rules.Color, evalFn eval.Func, m memo.Memo, opts search.Options, onDepth OnDepth) Outcome {
	start := time.Now()
	var best Outcome
	var previousElapsed time.Duration

	for depth := 1; depth <= maxDepth; depth++ {
		result := search.Tabular(pos, depth, negInf, posInf, color, evalFn, m, opts)
		elapsed := time.Since(start)

		best = Outcome{Result: result, Depth: depth}
		if onDepth != nil {
			onDepth(depth, elapsed, result)
		}

		if elapsed >= timeout {
			return best
		}

		projected := elapsed + (elapsed - previousElapsed)
		if projected >= timeout {
			return best
		}
		previousElapsed = elapsed
	}
	return best
}

const (
	negInf = -1e18
	posInf = 1e18
)
