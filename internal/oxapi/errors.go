package oxapi

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState matches every *StateError.
	ErrInvalidState = errors.New("invalid session state")
	// ErrAuthentication matches every *AuthenticationError.
	ErrAuthentication = errors.New("authentication failed")
	// ErrRemoteFault matches every *RemoteFault.
	ErrRemoteFault = errors.New("remote fault")
	// ErrUnexpectedResult is returned when a call succeeds but its result has
	// the wrong shape, e.g. an add that does not yield a positive identifier.
	ErrUnexpectedResult = errors.New("unexpected result")
)

// RemoteFault is a protocol-level fault reported by the remote service for
// an otherwise well-formed call.
type RemoteFault struct {
	Method  string
	Code    int
	Message string
}

func (f *RemoteFault) Error() string {
	return fmt.Sprintf("%s: remote fault %d: %s", f.Method, f.Code, f.Message)
}

func (f *RemoteFault) Is(target error) bool { return target == ErrRemoteFault }

// AuthenticationError is returned when the service rejects a logon.
type AuthenticationError struct {
	Fault *RemoteFault
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("logon rejected (code %d): %s", e.Fault.Code, e.Fault.Message)
}

func (e *AuthenticationError) Is(target error) bool { return target == ErrAuthentication }

func (e *AuthenticationError) Unwrap() error { return e.Fault }

// StateError is returned, without contacting the service, when an operation
// is not valid in the client's current session state.
type StateError struct {
	Method string
	State  State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: not allowed while session is %s", e.Method, e.State)
}

func (e *StateError) Is(target error) bool { return target == ErrInvalidState }

func unexpected(method string, v any) error {
	return fmt.Errorf("%s: %w: %v (%T)", method, ErrUnexpectedResult, v, v)
}
