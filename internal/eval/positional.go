package eval

import "github.com/opencorechess/plyengine/internal/rules"

// captureValue is the classic capture-value table: pawn, knight,
// bishop, rook, queen. King is unreachable in a legal position but kept
// for symmetry with the reference table.
func captureValue(kind rules.PieceType) int {
	switch kind {
	case rules.Pawn:
		return 100
	case rules.Knight:
		return 320
	case rules.Bishop:
		return 330
	case rules.Rook:
		return 500
	case rules.Queen:
		return 900
	case rules.King:
		return 20000
	default:
		return 0
	}
}

// Positional scores the move that produced pos, from the point of view
// of whoever just played it rather than color itself: color is the side
// now on move, so the mover is its opponent. This mirrors the reference
// evaluator's "turn = not color" flip, and the resulting delta is
// returned unscaled and unflipped, exactly as the reference does, even
// though that means the number is not consistently signed relative to
// color the way the other evaluators are. It is one of the documented
// quirks this evaluator is meant to reproduce, not correct.
//
// The blunder check asks whether the mover's OWN color still attacks
// the square the piece landed on, not whether the opponent does. That
// is backwards for detecting a blunder, but it is what the reference
// evaluator computes, and this reproduces it faithfully. It is a real
// attack-map query (rook/bishop/queen ray and pawn/knight/king step
// attacks against the destination square), so it fires whenever another
// friendly piece's attack pattern genuinely covers that square — a
// friendly rook behind the piece on the same file, say — not just when
// movegen happens to offer a move there.
func Positional(pos *rules.Position, color rules.Color) float64 {
	mv, ok := pos.LastMove()
	if !ok {
		// Root of the search tree: no move has been played yet to score.
		return 0
	}
	mover := opponent(color)

	pos.Pop()
	capturedType := pos.PieceAt(mv.S2()).Type()
	pos.Push(mv)

	movedType := pos.PieceAt(mv.S2()).Type()

	score := float64(captureValue(capturedType))
	score += float64(psqtValue(movedType, mover, mv.S1()))
	if len(pos.Attackers(mv.S2(), mover)) > 0 {
		score -= float64(captureValue(movedType))
	}
	return score
}
