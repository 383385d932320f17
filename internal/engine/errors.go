package engine

import (
	"errors"

	"github.com/opencorechess/plyengine/internal/memo"
)

// Sentinel errors the façade returns, wrapped with context via fmt.Errorf
// and %w so callers can still match them with errors.Is.
var (
	ErrInvalidMove = errors.New("engine: invalid move")
	ErrNoLegalMove = errors.New("engine: no legal move available")
	// ErrMemoCorruption is memo.ErrCorruption under the façade's own name:
	// search.Tabular panics with memo.ErrCorruption when a looked-up entry
	// cannot be a legitimate search result, and ChooseMove recovers that
	// panic and returns that same error value, so callers only need to
	// know the engine package's sentinels.
	ErrMemoCorruption      = memo.ErrCorruption
	ErrMakeUnmakeImbalance = errors.New("engine: search left the position stack unbalanced")
)
