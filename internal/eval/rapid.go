package eval

import "github.com/opencorechess/plyengine/internal/rules"

// Rapid is a cheaper, composite evaluator meant for fast, shallow
// search: bare material (no pawn-structure or mobility terms), a
// mobility-ratio activity score, central pawn control, and a king
// safety composite.
func Rapid(pos *rules.Position, color rules.Color) float64 {
	return rapidMaterial(pos, color) + rapidActivity(pos, color) +
		rapidKingSafety(pos, color) + rapidCenterControl(pos, color)
}

// rapidMaterial is Material without the pawn-structure and mobility
// terms: king/queen/rook/minor/pawn counts only.
func rapidMaterial(pos *rules.Position, color rules.Color) float64 {
	enemy := opponent(color)
	kingWt := len(pos.Pieces(rules.King, color)) - len(pos.Pieces(rules.King, enemy))
	queenWt := len(pos.Pieces(rules.Queen, color)) - len(pos.Pieces(rules.Queen, enemy))
	rookWt := len(pos.Pieces(rules.Rook, color)) - len(pos.Pieces(rules.Rook, enemy))
	bishWt := len(pos.Pieces(rules.Bishop, color)) - len(pos.Pieces(rules.Bishop, enemy))
	kntWt := len(pos.Pieces(rules.Knight, color)) - len(pos.Pieces(rules.Knight, enemy))
	pawnWt := len(pos.Pieces(rules.Pawn, color)) - len(pos.Pieces(rules.Pawn, enemy))

	return float64(kingWeight*kingWt) + float64(queenWeight*queenWt) +
		float64(rookWeight*rookWt) + float64(minorWeight*(kntWt+bishWt)) +
		float64(pawnWt)
}

// allPieces returns every square occupied by color.
func allPieces(pos *rules.Position, color rules.Color) []rules.Square {
	var squares []rules.Square
	for _, kind := range []rules.PieceType{rules.King, rules.Queen, rules.Rook, rules.Bishop, rules.Knight, rules.Pawn} {
		squares = append(squares, pos.Pieces(kind, color)...)
	}
	return squares
}

func countMoves(squares []rules.Square, moves []rules.Move) int {
	has := make(map[rules.Square]bool, len(squares))
	for _, sq := range squares {
		has[sq] = true
	}
	n := 0
	for _, mv := range moves {
		if has[mv.S1()] {
			n++
		}
	}
	return n
}

const activityClip = 1.5

// rapidActivity compares each side's legal-move count per piece it has
// on the board, clipped to keep a lone piece's mobility from dominating
// the score in the endgame.
func rapidActivity(pos *rules.Position, color rules.Color) float64 {
	enemy := opponent(color)
	myPieces := allPieces(pos, color)
	theirPieces := allPieces(pos, enemy)

	myMoves, theirMoves := movesForBoth(pos, color)
	myCount := countMoves(myPieces, myMoves)
	theirCount := countMoves(theirPieces, theirMoves)

	var activity float64
	switch {
	case len(myPieces) == 0 && len(theirPieces) == 0:
		activity = 0
	case len(myPieces) == 0:
		activity = -1 * float64(theirCount) / float64(len(theirPieces))
	case len(theirPieces) == 0:
		activity = float64(myCount) / float64(len(myPieces))
	default:
		activity = float64(myCount)/float64(len(myPieces)) - float64(theirCount)/float64(len(theirPieces))
	}

	if activity > activityClip {
		activity = activityClip
	} else if activity < -activityClip {
		activity = -activityClip
	}
	return activity
}

// rapidCenterControl counts pawns on ranks 3-4 (square indices 16..31)
// for each side.
func rapidCenterControl(pos *rules.Position, color rules.Color) float64 {
	enemy := opponent(color)
	my := 0
	for _, sq := range pos.Pieces(rules.Pawn, color) {
		if sq >= 16 && sq <= 31 {
			my++
		}
	}
	their := 0
	for _, sq := range pos.Pieces(rules.Pawn, enemy) {
		if sq >= 16 && sq <= 31 {
			their++
		}
	}
	return float64(my - their)
}

// rapidKingSafety has an in-check override (via a true attack-map query
// on the king's own square, which a legal-move generator could never
// answer since it never offers king-capture moves) and otherwise sums
// five sub-scores: a king-mobility diff, a friendly-pawn shield count, a
// non-pawn defender count, the attacker term subtracted so more enemy
// attackers hurts, and a protection-ray count along the eight compass
// directions. The rounded composite is then clamped: above 2 becomes 2,
// below -2 becomes -1 (an exact -2 is kept), and 0 is nudged to +-1 by
// the sign of the unrounded total, which is -1 when the total is exactly
// 0. So the term never swamps the rest of the score and, with a king on
// the board, is never 0.
func rapidKingSafety(pos *rules.Position, color rules.Color) float64 {
	kings := pos.Pieces(rules.King, color)
	if len(kings) == 0 {
		return 0
	}
	king := kings[0]
	enemy := opponent(color)

	if len(pos.Attackers(king, enemy)) > 0 {
		return -2
	}

	myMoves, theirMoves := movesForBoth(pos, color)
	escapeVal := float64(countMoves([]rules.Square{king}, myMoves) - countMoves(pos.Pieces(rules.King, enemy), theirMoves))

	pawnShieldVal := 0.0
	for _, sq := range neighborhood(king, 2) {
		if hasPieceOfType(pos, sq, rules.Pawn, color) {
			pawnShieldVal++
		}
	}

	defenderVal := 0.0
	for _, sq := range neighborhoodBox(king, 2, 3) {
		if pieceAt := pos.PieceAt(sq); pieceAt.Color() == color && pieceAt.Type() != rules.Pawn && pieceAt.Type() != 0 {
			defenderVal++
		}
	}

	attackerVal := rapidAttackerTerm(pos, king, color, enemy)

	protectionVal := rayProtection(pos, king, color)

	total := protectionVal - attackerVal + defenderVal + pawnShieldVal + escapeVal
	rounded := roundHalfAwayFromZero(total)
	switch {
	case rounded > 2:
		return 2
	case rounded < -2:
		return -1
	case rounded == 0:
		if total > 0 {
			return 1
		}
		return -1
	default:
		return rounded
	}
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int(v + 0.5))
	}
	return -float64(int(-v + 0.5))
}

func hasPieceOfType(pos *rules.Position, sq rules.Square, kind rules.PieceType, color rules.Color) bool {
	p := pos.PieceAt(sq)
	return p.Type() == kind && p.Color() == color
}

// neighborhood returns the squares within radius (Chebyshev distance, in
// both files and ranks) of sq, excluding sq itself and any square off
// the board. It is neighborhoodBox with equal file and rank radii — the
// "5x5" box the reference uses for the pawn shield.
func neighborhood(sq rules.Square, radius int) []rules.Square {
	return neighborhoodBox(sq, radius, radius)
}

// neighborhoodBox returns the squares within fileRadius files and
// rankRadius ranks of sq, excluding sq itself and any square off the
// board. Defenders and attackers use the reference's wider "5x8" box
// (fileRadius 2, rankRadius 3); the pawn shield uses the square "5x5"
// box (fileRadius 2, rankRadius 2), i.e. neighborhood(sq, 2).
func neighborhoodBox(sq rules.Square, fileRadius, rankRadius int) []rules.Square {
	file := int(sq) % 8
	rank := int(sq) / 8
	var out []rules.Square
	for df := -fileRadius; df <= fileRadius; df++ {
		for dr := -rankRadius; dr <= rankRadius; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			nf, nr := file+df, rank+dr
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			out = append(out, rules.Square(nr*8+nf))
		}
	}
	return out
}

// rapidAttackerTerm is the king-safety "attackers" sub-score: opponent
// pieces within the 5x8 neighborhood of side's own king, minus side's
// own pieces within the 5x8 neighborhood of the opponent's king.
// rapidKingSafety subtracts it, so more enemy material massed near this
// king counts against side's king safety and more of side's own material
// massed near the enemy king counts for it.
func rapidAttackerTerm(pos *rules.Position, king rules.Square, color, enemy rules.Color) float64 {
	nearMyKing := 0
	for _, sq := range neighborhoodBox(king, 2, 3) {
		if p := pos.PieceAt(sq); p.Type() != 0 && p.Color() == enemy {
			nearMyKing++
		}
	}

	nearTheirKing := 0
	if enemyKings := pos.Pieces(rules.King, enemy); len(enemyKings) > 0 {
		for _, sq := range neighborhoodBox(enemyKings[0], 2, 3) {
			if p := pos.PieceAt(sq); p.Type() != 0 && p.Color() == color {
				nearTheirKing++
			}
		}
	}

	return float64(nearMyKing - nearTheirKing)
}

// rayProtection walks the eight compass rays from the king outward. A
// ray counts as protecting the king if the first piece it meets belongs
// to color, or if it runs off the board before meeting any piece; it
// stops counting (without crediting the ray) as soon as it meets an
// enemy piece.
func rayProtection(pos *rules.Position, king rules.Square, color rules.Color) float64 {
	dirs := [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	file := int(king) % 8
	rank := int(king) / 8

	total := 0.0
	for _, d := range dirs {
		for step := 1; step <= 7; step++ {
			nf, nr := file+d[0]*step, rank+d[1]*step
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				total++
				break
			}
			sq := rules.Square(nr*8 + nf)
			p := pos.PieceAt(sq)
			if p.Type() == 0 {
				continue
			}
			if p.Color() == color {
				total++
			}
			break
		}
	}
	return total
}
