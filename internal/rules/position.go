// Package rules adapts github.com/corentings/chess/v2, an immutable,
// functional board library, to the make/unmake style the search kernel
// expects: Push mutates a Position in place and records enough state for
// Pop to restore it exactly.
package rules

import (
	"fmt"

	"github.com/corentings/chess/v2"
)

// Move is the library's move type, re-exported so callers never import
// corentings/chess/v2 directly.
type Move = chess.Move

// Color mirrors chess.Color so callers don't need the upstream import
// for anything but move construction.
type Color = chess.Color

const (
	White = chess.White
	Black = chess.Black
)

// PieceType mirrors chess.PieceType.
type PieceType = chess.PieceType

const (
	King   = chess.King
	Queen  = chess.Queen
	Rook   = chess.Rook
	Bishop = chess.Bishop
	Knight = chess.Knight
	Pawn   = chess.Pawn
)

// Square mirrors chess.Square, a 0..63 board index.
type Square = chess.Square

// Piece mirrors chess.Piece, a color+kind pair.
type Piece = chess.Piece

// Fingerprint is a position's content hash, used as the transposition
// memo key. It must not depend on move-history bookkeeping, only on the
// reachable position itself.
type Fingerprint [16]byte

// Position wraps *chess.Position with a snapshot stack so that Push/Pop
// behave like the make/unmake pair a negamax search expects, even though
// the underlying library returns a new value from every update instead
// of mutating in place.
type snapshot struct {
	prev *chess.Position
	move Move
}

type Position struct {
	cur   *chess.Position
	stack []snapshot
}

// NewStartingPosition returns a Position set to the standard initial
// chess position.
func NewStartingPosition() *Position {
	return &Position{cur: chess.StartingPosition()}
}

// ParseFEN builds a Position from Forsyth-Edwards notation.
func ParseFEN(fen string) (*Position, error) {
	game, err := chess.NewGame(chess.FEN(fen))
	if err != nil {
		return nil, fmt.Errorf("rules: parse fen %q: %w", fen, err)
	}
	return &Position{cur: game.Position()}, nil
}

// FEN renders the current position as Forsyth-Edwards notation.
func (p *Position) FEN() string {
	return p.cur.String()
}

// Turn returns the side to move.
func (p *Position) Turn() Color {
	return p.cur.Turn()
}

// Fingerprint returns a content hash suitable as a transposition memo key.
func (p *Position) Fingerprint() Fingerprint {
	return p.cur.Hash()
}

// HalfmoveClock returns the position's halfmove clock, for fifty-move
// draw detection by callers that need it.
func (p *Position) HalfmoveClock() int {
	return p.cur.HalfMoveClock()
}

// LegalMoves returns every legal move from the current position. The
// slice is owned by the caller; the search kernel may sort it in place.
func (p *Position) LegalMoves() []Move {
	return p.cur.ValidMoves()
}

// Method mirrors chess.Method, the reason a game ended.
type Method = chess.Method

// Checkmate is the only Method for which Winner is meaningful.
const Checkmate = chess.Checkmate

// Terminal reports whether the position has no legal continuation, and
// if so, by what method (checkmate, stalemate, draw).
func (p *Position) Terminal() (terminal bool, method Method) {
	m := p.cur.Status()
	return m != chess.NoMethod, m
}

// Winner returns the color that delivered checkmate. Only meaningful
// when Terminal reports method == chess.Checkmate: the side to move at
// a mated position is the loser, so the winner is the other color.
func (p *Position) Winner() Color {
	if p.cur.Turn() == chess.White {
		return chess.Black
	}
	return chess.White
}

// PieceAt returns the piece occupying sq, or the empty piece if sq is
// vacant.
func (p *Position) PieceAt(sq Square) Piece {
	return p.cur.Board().Piece(sq)
}

// Pieces returns every square occupied by a piece of the given kind and
// color.
func (p *Position) Pieces(kind PieceType, color Color) []Square {
	var squares []Square
	for sq := Square(0); sq < 64; sq++ {
		pc := p.cur.Board().Piece(sq)
		if pc.Type() == kind && pc.Color() == color {
			squares = append(squares, sq)
		}
	}
	return squares
}

// Attackers returns every square holding a piece of the given color that
// attacks sq, via a true attack-map query in the manner of python-chess's
// board.attackers(): each piece's own attack pattern (step or ray) is
// tested directly against sq, rather than asking the move generator
// "which moves land on sq". That distinction matters because legal moves
// never land on a square a friendly piece occupies, never capture a
// king, and disappear entirely for a pinned piece — none of which stop a
// piece from attacking a square in the chess sense. Turn is irrelevant
// here: every piece of color is checked regardless of whose move it is.
func (p *Position) Attackers(sq Square, color Color) []Square {
	board := p.cur.Board()
	var attackers []Square
	for from := Square(0); from < 64; from++ {
		piece := board.Piece(from)
		if piece.Type() == 0 || piece.Color() != color {
			continue
		}
		if attacksSquare(board, from, piece, sq) {
			attackers = append(attackers, from)
		}
	}
	return attackers
}

// attacksSquare reports whether the piece at from (already known to
// belong to the attacking color) attacks sq, given the current board
// occupancy for ray pieces.
func attacksSquare(board *chess.Board, from Square, piece Piece, sq Square) bool {
	if from == sq {
		return false
	}
	ff, fr := int(from)%8, int(from)/8
	tf, tr := int(sq)%8, int(sq)/8
	df, dr := tf-ff, tr-fr

	switch piece.Type() {
	case Knight:
		ad, ar := abs(df), abs(dr)
		return (ad == 1 && ar == 2) || (ad == 2 && ar == 1)
	case King:
		return abs(df) <= 1 && abs(dr) <= 1
	case Pawn:
		forward := 1
		if piece.Color() == Black {
			forward = -1
		}
		return dr == forward && abs(df) == 1
	case Bishop:
		return abs(df) == abs(dr) && rayClear(board, from, sq, sign(df), sign(dr))
	case Rook:
		return (df == 0) != (dr == 0) && rayClear(board, from, sq, sign(df), sign(dr))
	case Queen:
		if df != 0 && dr != 0 && abs(df) != abs(dr) {
			return false
		}
		return rayClear(board, from, sq, sign(df), sign(dr))
	default:
		return false
	}
}

// rayClear reports whether every square strictly between from and sq
// along the (dx, dy) direction is empty, i.e. nothing blocks the ray
// before it reaches sq. sq itself, friendly or enemy occupied, never
// blocks — it's the destination being tested, not an obstacle.
func rayClear(board *chess.Board, from, sq Square, dx, dy int) bool {
	ff, fr := int(from)%8, int(from)/8
	tf, tr := int(sq)%8, int(sq)/8
	steps := abs(tf - ff)
	if v := abs(tr - fr); v > steps {
		steps = v
	}
	for i := 1; i < steps; i++ {
		f, r := ff+dx*i, fr+dy*i
		if board.Piece(Square(r*8+f)).Type() != 0 {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// Push plays m, saving the prior position so Pop can restore it. Push
// and Pop must always be balanced: every Push this search performs is
// matched by exactly one Pop once that branch is fully explored.
func (p *Position) Push(m Move) {
	p.stack = append(p.stack, snapshot{prev: p.cur, move: m})
	p.cur = p.cur.Update(&m)
}

// Pop undoes the most recent Push. Calling Pop with no matching Push is
// a programming error and panics, since a silent no-op would mask a
// make/unmake imbalance in the search kernel.
func (p *Position) Pop() {
	n := len(p.stack)
	if n == 0 {
		panic("rules: Pop called with no matching Push")
	}
	p.cur = p.stack[n-1].prev
	p.stack = p.stack[:n-1]
}

// LastMove returns the move that produced the current position and
// whether one exists (false at the root snapshot, with nothing pushed
// yet).
func (p *Position) LastMove() (Move, bool) {
	if len(p.stack) == 0 {
		return Move{}, false
	}
	return p.stack[len(p.stack)-1].move, true
}

// Depth returns how many unmatched Push calls are outstanding, i.e. how
// far the current position is from the snapshot at construction. Tests
// use this to assert Property 1 (make/unmake balance) directly.
func (p *Position) Depth() int {
	return len(p.stack)
}

// TruncateTo pops down to the given depth directly, bypassing the usual
// one-at-a-time Pop. It exists for callers recovering from a panic
// part-way through a recursive search: the position stack may be left
// deeper than it was on entry, and there is no well-defined single move
// to Pop back to that state one call at a time from outside the
// recursion that grew it.
func (p *Position) TruncateTo(depth int) {
	if depth < 0 || depth > len(p.stack) {
		panic("rules: TruncateTo target out of range")
	}
	if depth == len(p.stack) {
		return
	}
	p.cur = p.stack[depth].prev
	p.stack = p.stack[:depth]
}

// ParseUCI decodes a UCI move string (e.g. "e2e4", "e7e8q") against the
// current position.
func (p *Position) ParseUCI(uci string) (Move, error) {
	m, err := chess.UCINotation{}.Decode(p.cur, uci)
	if err != nil {
		return Move{}, fmt.Errorf("rules: parse uci %q: %w", uci, err)
	}
	return *m, nil
}

// UCI encodes a move as a UCI string relative to the current position.
func (p *Position) UCI(m Move) string {
	return chess.UCINotation{}.Encode(p.cur, &m)
}

// Clone returns a deep-enough copy for callers that want to explore a
// branch without disturbing the original (e.g. tests that run several
// searches from the same starting position).
func (p *Position) Clone() *Position {
	stack := make([]snapshot, len(p.stack))
	copy(stack, p.stack)
	return &Position{cur: p.cur, stack: stack}
}
