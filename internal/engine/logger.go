package engine

import "time"

// Logger is the façade's logging seam. Search itself never logs (it's
// the hot path); only the iterative driver reports, once per completed
// depth. NopLogger is the zero-cost default; cmd/plyengine wires a real
// implementation backed by zap.
type Logger interface {
	LogDepth(depth int, elapsed time.Duration, uci string, score float64, nodes uint64)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) LogDepth(depth int, elapsed time.Duration, uci string, score float64, nodes uint64) {
}
