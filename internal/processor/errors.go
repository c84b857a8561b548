package processor

import (
	"errors"
	"fmt"
)

var (
	ErrInputMissing    = errors.New("input folder does not exist")
	ErrOutputCreate    = errors.New("failed to create output folder")
	ErrScriptMissing   = errors.New("processing script not found")
	ErrLaunch          = errors.New("failed to start processing script")
	ErrExternalFailure = errors.New("processing script failed")
	ErrBusy            = errors.New("a processing run is already in progress")
)

// ExternalError is returned when the external program exits with a non-zero status
type ExternalError struct {
	ExitCode int
	Stderr   string
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%v (exit code %d):\n%s", ErrExternalFailure, e.ExitCode, e.Stderr)
}

func (e *ExternalError) Is(target error) bool {
	return target == ErrExternalFailure
}
