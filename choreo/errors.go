package choreo

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a reorder is requested while another is in flight.
// The engine has no cancellation; callers retry after the completion signal.
var ErrBusy = errors.New("choreo: reorder already in flight")

// ErrNotPreparing is returned by NotifyMutated when no capture is pending.
var ErrNotPreparing = errors.New("choreo: no prepared reorder awaiting mutation")

// PermutationError reports a permutation that is not a bijection over its
// index range or that moves a sticky index. It fails the request before any
// state is touched.
type PermutationError struct {
	Index  int
	Reason string
}

func (e *PermutationError) Error() string {
	return fmt.Sprintf("choreo: invalid permutation at index %d: %s", e.Index, e.Reason)
}
