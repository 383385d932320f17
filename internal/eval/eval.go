// Package eval implements the position evaluators the search kernel
// consumes: material, positional, rapid, and combined. Every evaluator
// scores a position from the point of view of color, positive meaning
// good for color.
package eval

import "github.com/opencorechess/plyengine/internal/rules"

// Func scores pos from color's point of view. Implementations must be
// side-effect free: they may Push/Pop the position internally (the
// positional evaluator does, to see what the last move captured) but
// must leave it exactly as they found it.
type Func func(pos *rules.Position, color rules.Color) float64

// Named evaluators, keyed the way cmd/plybench and cmd/plyengine select
// them from a flag.
var Registry = map[string]Func{
	"material":   Material,
	"positional": Positional,
	"rapid":      Rapid,
	"combined":   Combined,
}
