package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies every failure the model-selection components surface.
type Kind string

const (
	KindInvalidInput         Kind = "invalid_input"
	KindConfig               Kind = "config_error"
	KindUpstreamUnavailable  Kind = "upstream_unavailable"
	KindClassificationFailed Kind = "classification_failed"
	KindNoEligibleModel      Kind = "no_eligible_model"
)

// UpstreamCause refines KindUpstreamUnavailable.
type UpstreamCause string

const (
	CauseAuth        UpstreamCause = "auth_error"
	CauseRateLimited UpstreamCause = "rate_limited"
	CauseUpstream    UpstreamCause = "upstream_error"
)

// Error is the structured error returned by the catalog and autorouter.
type Error struct {
	Kind  Kind
	Cause UpstreamCause
	// Message is safe to show to clients.
	Message string
	// Details holds per-field messages for invalid input.
	Details map[string]string
	// Log is the underlying error, for server-side logging only.
	Log error
}

func (e *Error) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Cause, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Log
}

// InvalidInputError rejects a request before any work is done.
func InvalidInputError(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Message: msg}
}

// ValidationError carries per-field binding failures.
func ValidationError(details map[string]string) *Error {
	return &Error{Kind: KindInvalidInput, Message: "Invalid request body", Details: details}
}

// ConfigError reports a missing or unusable setting.
func ConfigError(msg string) *Error {
	return &Error{Kind: KindConfig, Message: msg}
}

// UpstreamUnavailableError reports a failed catalog upstream.
func UpstreamUnavailableError(cause UpstreamCause, msg string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Cause: cause, Message: msg, Log: err}
}

// UpstreamStatusError maps an upstream HTTP status onto an UpstreamCause.
func UpstreamStatusError(status int, msg string, err error) *Error {
	cause := CauseUpstream
	switch status {
	case http.StatusUnauthorized:
		cause = CauseAuth
	case http.StatusTooManyRequests:
		cause = CauseRateLimited
	}
	return UpstreamUnavailableError(cause, msg, err)
}

// ClassificationError reports a failed or unparseable classifier call.
func ClassificationError(msg string, err error) *Error {
	return &Error{Kind: KindClassificationFailed, Message: msg, Log: err}
}

// NoEligibleModelError reports that there was nothing to choose from.
func NoEligibleModelError(msg string) *Error {
	return &Error{Kind: KindNoEligibleModel, Message: msg}
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
