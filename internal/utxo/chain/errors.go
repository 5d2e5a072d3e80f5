package chain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist in storage.
var ErrNotFound = errors.New("not found")

// ResolutionError reports an input whose spent output could not be resolved.
type ResolutionError struct {
	TxID     string
	Index    uint32
	PrevTxID string
	PrevVout uint32
	Err      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve input %s:%d spending %s:%d: %v", e.TxID, e.Index, e.PrevTxID, e.PrevVout, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
