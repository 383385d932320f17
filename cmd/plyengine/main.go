// Command plyengine is a minimal REPL: it reads one UCI move per line on
// the human's turn, prints the board, and plays the engine's own move
// otherwise. It is intentionally not a UCI/xboard protocol engine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/opencorechess/plyengine/internal/engine"
	"github.com/opencorechess/plyengine/internal/eval"
	"github.com/opencorechess/plyengine/internal/memo"
	"github.com/opencorechess/plyengine/internal/rules"
	"go.uber.org/zap"
)

var (
	evaluator = flag.String("eval", "rapid", "evaluator: material, positional, rapid, or combined")
	maxDepth  = flag.Int("depth", 30, "maximum search depth")
	timeout   = flag.Duration("timeout", 5*time.Second, "per-move search budget")
	human     = flag.String("color", "white", "which color the human plays: white or black")
	quiet     = flag.Bool("quiet", false, "suppress per-depth search logging")
	memoKind  = flag.String("memo", "map", "transposition memo: map (unbounded) or bounded (ristretto, fixed capacity)")
	memoCap   = flag.Int64("memo-capacity", 1_000_000, "approximate entry capacity when -memo=bounded")
)

var (
	whiteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	blackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	lightSq    = lipgloss.NewStyle().Background(lipgloss.Color("15")).Foreground(lipgloss.Color("0"))
	darkSq     = lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("0"))
)

func main() {
	flag.Parse()

	evalFn, ok := eval.Registry[*evaluator]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown evaluator %q\n", *evaluator)
		os.Exit(1)
	}

	humanColor := rules.White
	if strings.EqualFold(*human, "black") {
		humanColor = rules.Black
	}
	engineColor := rules.Black
	if humanColor == rules.Black {
		engineColor = rules.White
	}

	logger := engine.Logger(engine.NopLogger{})
	if !*quiet {
		zl, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "zap: %v\n", err)
			os.Exit(1)
		}
		defer zl.Sync()
		logger = &zapLogger{log: zl.Sugar()}
	}

	var m memo.Memo
	switch *memoKind {
	case "map":
		m = memo.NewMapMemo()
	case "bounded":
		bm, err := memo.NewBoundedMemo(*memoCap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "memo: %v\n", err)
			os.Exit(1)
		}
		defer bm.Close()
		m = bm
	default:
		fmt.Fprintf(os.Stderr, "unknown -memo %q: want map or bounded\n", *memoKind)
		os.Exit(1)
	}

	pos := rules.NewStartingPosition()
	eng := engine.New(pos, engineColor, evalFn, engine.Options{
		MaxDepth: *maxDepth,
		Timeout:  *timeout,
		Logger:   logger,
		Memo:     m,
	})

	printBoard(pos)
	reader := bufio.NewReader(os.Stdin)

	for {
		if terminal, _ := pos.Terminal(); terminal {
			break
		}

		if pos.Turn() == humanColor {
			fmt.Print("your move (uci): ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			line = strings.TrimSpace(line)
			if line == "quit" {
				return
			}
			if err := eng.ApplyOpponentMove(line); err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				continue
			}
		} else {
			move, err := eng.ChooseMove()
			if err != nil {
				fmt.Fprintf(os.Stderr, "%v\n", err)
				break
			}
			fmt.Printf("engine plays %s\n", move)
		}
		printBoard(pos)
	}

	if terminal, method := pos.Terminal(); terminal {
		if method == rules.Checkmate {
			fmt.Printf("checkmate, %s wins\n", colorName(pos.Winner()))
		} else {
			fmt.Printf("draw (%v)\n", method)
		}
	}
}

func colorName(c rules.Color) string {
	if c == rules.Black {
		return "black"
	}
	return "white"
}

func printBoard(pos *rules.Position) {
	var b strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq := rules.Square(rank*8 + file)
			piece := pos.PieceAt(sq)
			glyph := pieceGlyph(piece)

			style := lightSq
			if (rank+file)%2 == 0 {
				style = darkSq
			}
			b.WriteString(style.Render(fmt.Sprintf(" %s ", glyph)))
		}
		b.WriteString("\n")
	}
	fmt.Println(b.String())
}

var pieceLetters = map[rules.PieceType]string{
	rules.Pawn:   "P",
	rules.Knight: "N",
	rules.Bishop: "B",
	rules.Rook:   "R",
	rules.Queen:  "Q",
	rules.King:   "K",
}

func pieceGlyph(p rules.Piece) string {
	letter, ok := pieceLetters[p.Type()]
	if !ok {
		return "."
	}
	if p.Color() == rules.Black {
		return blackStyle.Render(strings.ToLower(letter))
	}
	return whiteStyle.Render(letter)
}

// zapLogger adapts a zap.SugaredLogger to engine.Logger.
type zapLogger struct {
	log *zap.SugaredLogger
}

func (z *zapLogger) LogDepth(depth int, elapsed time.Duration, uci string, score float64, nodes uint64) {
	z.log.Infow("search depth complete",
		"depth", depth,
		"elapsed", elapsed,
		"move", uci,
		"score", score,
		"nodes", nodes,
	)
}
