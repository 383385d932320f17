package eval

import "github.com/opencorechess/plyengine/internal/rules"

// Combined blends Positional and Rapid evenly, trading off the former's
// move-local detail against the latter's cheaper positional composite.
func Combined(pos *rules.Position, color rules.Color) float64 {
	return 0.5*Positional(pos, color) + 0.5*Rapid(pos, color)
}
