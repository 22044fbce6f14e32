package sync

import (
	"fmt"
)

// WriteError wraps a destination failure on one batch of a grid write.
// Batch is the 1-based sequence number of the failed batch - batches before
// it have already landed in the destination, batches after it were never
// attempted.
type WriteError struct {
	Batch int
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("error writing batch %v to worksheet (%v)", e.Batch, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// SwapError is the error returned when the finalize step runs without a
// staging sheet to swap in - the write phase never ran or failed silently.
type SwapError struct {
	Sheet string
}

func (e *SwapError) Error() string {
	return fmt.Sprintf("unable to swap in staging sheet '%s' - sheet does not exist", e.Sheet)
}
