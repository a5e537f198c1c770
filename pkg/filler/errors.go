package filler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for size tokens that cannot be turned into a
	// positive byte count.
	ErrInvalidSize = errors.New("invalid size")
	// ErrDeviceNotFound is returned by Wait once the attempt limit is reached.
	ErrDeviceNotFound = errors.New("device not found")
)

// TransferError reports a file that could not be sent to the device. ExitCode
// is -1 when the transfer tool could not be run or was killed.
type TransferError struct {
	Name     string
	ExitCode int
	Err      error
}

func (e *TransferError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("send %s: exit code %d", e.Name, e.ExitCode)
	}
	return fmt.Sprintf("send %s: %v (exit code %d)", e.Name, e.Err, e.ExitCode)
}

func (e *TransferError) Unwrap() error { return e.Err }
