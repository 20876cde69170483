package overlay

import (
	"errors"
	"fmt"
)

// ErrEnvironmentMissing matches any EnvError.
var ErrEnvironmentMissing = errors.New("environment variable not set")

// EnvError reports a required environment variable that is absent.
type EnvError struct {
	Name string
}

func (e *EnvError) Error() string {
	return fmt.Sprintf("environment variable %s not set", e.Name)
}

func (e *EnvError) Is(target error) bool {
	return target == ErrEnvironmentMissing
}

// TransportError reports a failed IPC call.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "ipc " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a reply or event that did not match the expected schema.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return "decode " + e.What + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
