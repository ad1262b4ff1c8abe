package gate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable is returned when a probe could not get any response.
	ErrUnreachable = errors.New("target unreachable")

	// ErrUnexpectedStatus is returned when the response status is not accepted.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrInvalidTarget is returned when the target endpoint cannot be parsed.
	ErrInvalidTarget = errors.New("invalid target endpoint")

	// ErrGaveUp is returned when the attempt limit or timeout is exhausted.
	ErrGaveUp = errors.New("gave up waiting for target")

	// ErrNoCommand is returned when the handoff is given an empty argv.
	ErrNoCommand = errors.New("no command to execute")

	// ErrCommandNotFound is returned when the command is not on PATH.
	ErrCommandNotFound = errors.New("command not found")
)

// Exit codes used for failed handoffs, following shell conventions.
const (
	ExitCannotExecute = 126
	ExitNotFound      = 127
)

// HandoffError reports that the target command could not be started.
type HandoffError struct {
	Command string
	Code    int
	Err     error
}

func (e *HandoffError) Error() string {
	return fmt.Sprintf("handoff to %q failed: %v", e.Command, e.Err)
}

func (e *HandoffError) Unwrap() error {
	return e.Err
}
