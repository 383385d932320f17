package eval

import (
	"testing"

	"github.com/opencorechess/plyengine/internal/rules"
	"github.com/stretchr/testify/require"
)

func TestMaterialIsZeroAtStartingPosition(t *testing.T) {
	pos := rules.NewStartingPosition()
	require.Zero(t, Material(pos, rules.White))
	require.Zero(t, Material(pos, rules.Black))
}

func TestMaterialFavorsSideUpAPiece(t *testing.T) {
	// Remove Black's queen by FEN rather than playing it out, to isolate
	// the material term from mobility/pawn-structure noise.
	pos, err := rules.ParseFEN("rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	require.Greater(t, Material(pos, rules.White), 0.0)
	require.Less(t, Material(pos, rules.Black), 0.0)
}

func TestRapidMaterialIsZeroAtStartingPosition(t *testing.T) {
	pos := rules.NewStartingPosition()
	require.Zero(t, rapidMaterial(pos, rules.White))
}

func TestRapidClipsActivity(t *testing.T) {
	pos := rules.NewStartingPosition()
	score := rapidActivity(pos, rules.White)
	require.LessOrEqual(t, score, activityClip)
	require.GreaterOrEqual(t, score, -activityClip)
}

func TestPositionalZeroAtRoot(t *testing.T) {
	pos := rules.NewStartingPosition()
	require.Zero(t, Positional(pos, rules.White))
}

func TestPositionalLeavesPositionUnchanged(t *testing.T) {
	pos := rules.NewStartingPosition()
	mv := pos.LegalMoves()[0]
	pos.Push(mv)

	// Whatever the move was, Positional must be able to recompute it
	// without disturbing the position (Push/Pop balance inside the
	// evaluator itself).
	before := pos.FEN()
	_ = Positional(pos, rules.Black)
	require.Equal(t, before, pos.FEN())
}

func TestCombinedIsAverageOfPositionalAndRapid(t *testing.T) {
	pos := rules.NewStartingPosition()
	mv := pos.LegalMoves()[0]
	pos.Push(mv)

	want := 0.5*Positional(pos, rules.White) + 0.5*Rapid(pos, rules.White)
	require.Equal(t, want, Combined(pos, rules.White))
}

func TestRegistryHasAllFourEvaluators(t *testing.T) {
	for _, name := range []string{"material", "positional", "rapid", "combined"} {
		require.Contains(t, Registry, name)
	}
}

func TestPositionalAppliesBlunderPenaltyWhenOwnColorStillAttacksDestination(t *testing.T) {
	// White plays Ra2-e2. The White queen on e5 has an open file down
	// to e2, so the rook's own color still attacks its landing square —
	// the reference's blunder condition — and the penalty must actually
	// subtract the rook's capture value, not silently no-op.
	pos, err := rules.ParseFEN("k7/8/8/4Q3/8/8/R7/7K w - - 0 1")
	require.NoError(t, err)

	mv, err := pos.ParseUCI("a2e2")
	require.NoError(t, err)
	pos.Push(mv)

	mover := rules.White
	dest := rules.Square(12) // e2
	attackers := pos.Attackers(dest, mover)
	require.Equal(t, []rules.Square{rules.Square(36)}, attackers) // queen on e5

	want := float64(psqtValue(rules.Rook, mover, rules.Square(8))) - float64(captureValue(rules.Rook))
	require.Equal(t, want, Positional(pos, rules.Black))
}

func TestRapidKingSafetyReturnsMinusTwoInCheck(t *testing.T) {
	// White king is in check from the rook on e8; the override must
	// fire via a real attack-map query against the king's own square,
	// which legal move generation (no king-capture moves) can never
	// answer.
	pos, err := rules.ParseFEN("4r3/8/8/8/8/8/8/4K2k w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, -2.0, rapidKingSafety(pos, rules.White))
}

func TestRapidAttackerTermCountsMassedMaterialNearEachKing(t *testing.T) {
	// Two Black pieces (knight e3, bishop e4) sit in White king's 5x8
	// neighborhood and one White piece (knight e6) sits in Black
	// king's, so the term is 2 - 1 = 1, not the identically-zero value
	// the old king-square attack-map query always produced.
	pos, err := rules.ParseFEN("4k3/8/4N3/8/4b3/4n3/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, 1.0, rapidAttackerTerm(pos, rules.Square(4), rules.White, rules.Black))
}

func TestPSQTMirrorsEquivalentSquaresEqually(t *testing.T) {
	// psqtValue mirrors White's table vertically for Black rather than
	// transcribing a second table (see DESIGN.md), so a White piece on
	// its back rank and the equivalent Black piece on its own back rank
	// must read the same bonus, not a negated one: the positional
	// evaluator scores every move from the mover's own point of view
	// and never flips by color (a documented quirk, not a bug here).
	require.Equal(t, psqtValue(rules.King, rules.White, rules.Square(4)), psqtValue(rules.King, rules.Black, rules.Square(60)))
	require.Equal(t, psqtValue(rules.Rook, rules.White, rules.Square(0)), psqtValue(rules.Rook, rules.Black, rules.Square(56)))
}
