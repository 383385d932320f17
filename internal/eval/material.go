package eval

import "github.com/opencorechess/plyengine/internal/rules"

// These weights mirror the classic king/queen/rook/minor/pawn weighting
// used throughout the corpus: queen 9, rook 5, knight and bishop 3 each,
// pawn 1. King is weighted at 200 purely as a material-count sentinel
// (two kings always cancel; it only matters if a position is somehow
// missing one).
const (
	kingWeight   = 200
	queenWeight  = 9
	rookWeight   = 5
	minorWeight  = 3
	pawnWeight   = 1
	mobilityTerm = 0.1
	pawnPenalty  = 0.5
)

// Material counts pieces, pawn structure, and mobility. It is the
// heaviest of the four evaluators: doubled pawns, blocked pawns, and the
// pawns countIsolated counts all cost half a pawn, and the side with more
// legal replies from the current position gets a small mobility bonus.
// Following the reference evaluator's sign convention, countIsolated
// counts pawns that DO have a same-color pawn on one of the eight
// neighboring squares; a truly isolated pawn is not penalized.
func Material(pos *rules.Position, color rules.Color) float64 {
	enemy := opponent(color)

	kingWt := len(pos.Pieces(rules.King, color)) - len(pos.Pieces(rules.King, enemy))
	queenWt := len(pos.Pieces(rules.Queen, color)) - len(pos.Pieces(rules.Queen, enemy))
	rookWt := len(pos.Pieces(rules.Rook, color)) - len(pos.Pieces(rules.Rook, enemy))
	bishWt := len(pos.Pieces(rules.Bishop, color)) - len(pos.Pieces(rules.Bishop, enemy))
	kntWt := len(pos.Pieces(rules.Knight, color)) - len(pos.Pieces(rules.Knight, enemy))

	myPawns := pos.Pieces(rules.Pawn, color)
	theirPawns := pos.Pieces(rules.Pawn, enemy)
	pawnWt := len(myPawns) - len(theirPawns)
	dblPawnWt := countDoubled(myPawns) - countDoubled(theirPawns)
	isoPawnWt := countIsolated(myPawns) - countIsolated(theirPawns)

	myMoves, theirMoves := movesForBoth(pos, color)
	blkdPawnWt := countBlocked(myPawns, myMoves) - countBlocked(theirPawns, theirMoves)
	mvmntWt := len(myMoves) - len(theirMoves)

	score := float64(kingWeight*kingWt) + float64(queenWeight*queenWt) +
		float64(rookWeight*rookWt) + float64(minorWeight*(kntWt+bishWt)) +
		float64(pawnWt)
	score -= pawnPenalty * float64(dblPawnWt+blkdPawnWt+isoPawnWt)
	score += mobilityTerm * float64(mvmntWt)
	return score
}

func opponent(color rules.Color) rules.Color {
	if color == rules.White {
		return rules.Black
	}
	return rules.White
}

// movesForBoth returns the legal moves available to color and to its
// opponent from the current position. The side to move's own legal
// moves are read directly; the other side's are sampled by pushing the
// first available reply and reading legal moves from there, mirroring
// how the reference material evaluator samples the non-moving side
// without a true null move.
func movesForBoth(pos *rules.Position, color rules.Color) (mine, theirs []rules.Move) {
	turnMoves := pos.LegalMoves()
	if pos.Turn() == color {
		mine = turnMoves
		if len(turnMoves) > 0 {
			pos.Push(turnMoves[0])
			theirs = pos.LegalMoves()
			pos.Pop()
		}
	} else {
		theirs = turnMoves
		if len(turnMoves) > 0 {
			pos.Push(turnMoves[0])
			mine = pos.LegalMoves()
			pos.Pop()
		}
	}
	return mine, theirs
}

func countDoubled(pawns []rules.Square) int {
	set := make(map[rules.Square]bool, len(pawns))
	for _, sq := range pawns {
		set[sq] = true
	}
	n := 0
	for _, sq := range pawns {
		if set[sq+8] || set[sq-8] {
			n++
		}
	}
	return n
}

var isolationOffsets = []int{-9, -8, -7, -1, 1, 7, 8, 9}

func countIsolated(pawns []rules.Square) int {
	set := make(map[rules.Square]bool, len(pawns))
	for _, sq := range pawns {
		set[sq] = true
	}
	n := 0
	for _, sq := range pawns {
		for _, d := range isolationOffsets {
			nsq := int(sq) + d
			if nsq >= 0 && nsq < 64 && set[rules.Square(nsq)] {
				n++
				break
			}
		}
	}
	return n
}

func countBlocked(pawns []rules.Square, legalMoves []rules.Move) int {
	has := make(map[rules.Square]bool, len(legalMoves))
	for _, mv := range legalMoves {
		has[mv.S1()] = true
	}
	n := 0
	for _, sq := range pawns {
		if !has[sq] {
			n++
		}
	}
	return n
}
