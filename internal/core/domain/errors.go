package domain

import (
	"errors"
	"fmt"
)

// Remote call failures.
var (
	ErrInvalidRequest    = errors.New("invalid request endpoint")
	ErrNoResponse        = errors.New("no response received")
	ErrMalformedResponse = errors.New("failed to process response")
	ErrUnauthorized      = errors.New("unauthorized")
)

var ErrMissingCredentials = errors.New("missing email or password")

// Content view failures.
var (
	ErrModuleNotFound   = errors.New("module not found")
	ErrViewNotFound     = errors.New("view not found")
	ErrStaleEpoch       = errors.New("stale load epoch")
	ErrInjectionPending = errors.New("injection payload not installed for current epoch")
	ErrReloadBusy       = errors.New("view is still loading")
	ErrInvalidEvent     = errors.New("invalid lifecycle event")
)

// User-facing login failure messages.
const (
	MsgMissingCredentials = "Please enter email and password"
	MsgLoginFailed        = "Login failed"
)

// ServerRejectedError carries a message supplied by the remote service.
type ServerRejectedError struct {
	StatusCode int
	Message    string
}

func (e *ServerRejectedError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("server rejected: %s", e.Message)
	}
	return fmt.Sprintf("server rejected (%d): %s", e.StatusCode, e.Message)
}

// AuthFailedError is the single failure a login surfaces. Reason is safe to
// show to the user.
type AuthFailedError struct {
	Reason string
	Cause  error
}

func (e *AuthFailedError) Error() string {
	if e.Cause == nil {
		return "auth failed: " + e.Reason
	}
	return fmt.Sprintf("auth failed: %s: %v", e.Reason, e.Cause)
}

func (e *AuthFailedError) Unwrap() error { return e.Cause }

// LoginFailureReason picks the user-facing reason for a failed login.
func LoginFailureReason(err error) string {
	var rejected *ServerRejectedError
	switch {
	case errors.As(err, &rejected) && rejected.Message != "":
		return rejected.Message
	case errors.Is(err, ErrMissingCredentials):
		return MsgMissingCredentials
	default:
		return MsgLoginFailed
	}
}
