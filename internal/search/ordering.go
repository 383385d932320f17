package search

import (
	"sort"

	"github.com/opencorechess/plyengine/internal/memo"
	"github.com/opencorechess/plyengine/internal/rules"
)

// orderMoves sorts candidates by the EXACT score recorded in the memo
// for the child position each move reaches, descending. The recorded
// score is from the point of view of the side to move in the child (the
// opponent of the side choosing among candidates), so the move whose
// child scored highest for that side comes first. A move whose child
// isn't in the memo, or is only a bound rather than an exact score,
// sorts after every move that does have an exact child score.
func orderMoves(pos *rules.Position, m memo.Memo, candidates []rules.Move) []rules.Move {
	type scored struct {
		mv    rules.Move
		score float64
	}
	ranked := make([]scored, len(candidates))
	for i, mv := range candidates {
		pos.Push(mv)
		fp := pos.Fingerprint()
		pos.Pop()

		key := negInf
		if entry, ok := m.Lookup(fp); ok && entry.Bound == memo.Exact {
			key = entry.Score
		}
		ranked[i] = scored{mv: mv, score: key}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]rules.Move, len(ranked))
	for i, r := range ranked {
		out[i] = r.mv
	}
	return out
}

const negInf = -1e18
