// Command plybench replays a fixed set of historical games through the
// search kernel at a chosen depth and evaluator, reporting nodes
// searched and per-ply decision time statistics. With -plot it also
// renders a bar chart of per-game average decision time as an SVG.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/opencorechess/plyengine/internal/eval"
	"github.com/opencorechess/plyengine/internal/memo"
	"github.com/opencorechess/plyengine/internal/rules"
	"github.com/opencorechess/plyengine/internal/search"
	"gonum.org/v1/gonum/stat"
)

var (
	depth     = flag.Int("depth", 4, "depth to search to")
	evaluator = flag.String("eval", "material", "evaluator: material, positional, rapid, or combined")
	plot      = flag.String("plot", "", "if set, write an SVG bar chart of per-game average ply time to this path")
)

type gameResult struct {
	description string
	nodes       uint64
	plyTimes    []float64 // seconds
}

func runGame(g game, depth int, evalFn eval.Func) gameResult {
	pos := rules.NewStartingPosition()
	m := memo.NewMapMemo()
	var nodes uint64

	result := gameResult{description: g.description}
	for _, uci := range g.moves {
		mv, err := pos.ParseUCI(uci)
		if err != nil {
			log.Fatalf("bench: %v", err)
		}

		start := time.Now()
		search.Tabular(pos, depth, -1e18, 1e18, pos.Turn(), evalFn, m, search.Options{Nodes: &nodes})
		result.plyTimes = append(result.plyTimes, time.Since(start).Seconds())

		pos.Push(mv)
	}
	result.nodes = nodes
	return result
}

func main() {
	flag.Parse()

	evalFn, ok := eval.Registry[*evaluator]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown evaluator %q\n", *evaluator)
		os.Exit(1)
	}

	var results []gameResult
	var totalNodes uint64
	start := time.Now()

	for _, g := range games {
		r := runGame(g, *depth, evalFn)
		results = append(results, r)
		totalNodes += r.nodes
		mean, stddev := stat.MeanStdDev(r.plyTimes, nil)
		fmt.Printf("%-55s nodes=%-10d mean_ply=%.4fs stddev=%.4fs\n", r.description, r.nodes, mean, stddev)
	}

	elapsed := time.Since(start)
	fmt.Printf("total nodes=%d elapsed=%s nps=%.0f\n", totalNodes, elapsed, float64(totalNodes)/elapsed.Seconds())

	if *plot != "" {
		if err := renderPlot(*plot, results); err != nil {
			log.Fatalf("bench: plot: %v", err)
		}
	}
}

func renderPlot(path string, results []gameResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const (
		width     = 600
		height    = 300
		barWidth  = 80
		barGap    = 20
		baseline  = height - 40
		maxBarLen = height - 80
	)

	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Text(width/2, 20, "average decision time per ply (s)", "text-anchor:middle;font-size:14px")

	var means []float64
	for _, r := range results {
		mean, _ := stat.MeanStdDev(r.plyTimes, nil)
		means = append(means, mean)
	}
	maxMean := 0.0
	for _, m := range means {
		if m > maxMean {
			maxMean = m
		}
	}
	if maxMean == 0 {
		maxMean = 1
	}

	for i := range results {
		barHeight := int(means[i] / maxMean * float64(maxBarLen))
		x := 40 + i*(barWidth+barGap)
		y := baseline - barHeight
		canvas.Rect(x, y, barWidth, barHeight, "fill:steelblue")
		canvas.Text(x+barWidth/2, baseline+15, fmt.Sprintf("g%d", i+1), "text-anchor:middle;font-size:12px")
		canvas.Text(x+barWidth/2, y-5, fmt.Sprintf("%.3f", means[i]), "text-anchor:middle;font-size:10px")
	}

	canvas.End()
	return nil
}
