package github

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
)

// Configuration errors
var (
	// ErrInvalidServer indicates a server address that cannot be used as an API base
	ErrInvalidServer = errors.New("invalid GitHub server URL")
	// ErrInvalidRepository indicates a malformed owner/name pair
	ErrInvalidRepository = errors.New("invalid repository")
	// ErrUserAgentAlreadySet is returned by SetDefaultUserAgent after the first call
	ErrUserAgentAlreadySet = errors.New("default user agent already set")
)

// ErrorKind classifies a failed fetch. Exactly one kind applies to each failure.
type ErrorKind int

const (
	// KindNetwork is a transport failure: connection, DNS, TLS, timeout or body read
	KindNetwork ErrorKind = iota + 1
	// KindCanceled means the caller canceled the context before the response
	// completed. An expired deadline is a KindNetwork timeout.
	KindCanceled
	// KindJSONDeserialization means the body is not valid JSON
	KindJSONDeserialization
	// KindJSONDecoding means the JSON is valid but does not match the expected schema
	KindJSONDecoding
	// KindAPI is a well-formed error response from the API
	KindAPI
	// KindDoesNotExist is a 404. GitHub answers 404 both for a missing tag and
	// for a tag that has no release, so the two cannot be told apart.
	KindDoesNotExist
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindCanceled:
		return "canceled"
	case KindJSONDeserialization:
		return "JSON deserialization error"
	case KindJSONDecoding:
		return "JSON decoding error"
	case KindAPI:
		return "API error"
	case KindDoesNotExist:
		return "does not exist"
	default:
		return "unknown error"
	}
}

// Error is the failure result of a fetch.
//
// Err carries the underlying cause for KindNetwork, KindCanceled,
// KindJSONDeserialization and KindJSONDecoding. StatusCode, Envelope and
// APIError are set only for KindAPI.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Envelope   *Envelope
	APIError   *GitHubError
	Err        error
}

// Sentinels for errors.Is. They match any *Error of the same kind; any other
// *Error target must be Equal.
var (
	ErrNetwork             = &Error{Kind: KindNetwork}
	ErrCanceled            = &Error{Kind: KindCanceled}
	ErrJSONDeserialization = &Error{Kind: KindJSONDeserialization}
	ErrJSONDecoding        = &Error{Kind: KindJSONDecoding}
	ErrAPI                 = &Error{Kind: KindAPI}
	ErrDoesNotExist        = &Error{Kind: KindDoesNotExist}
)

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindAPI:
		msg := http.StatusText(e.StatusCode)
		if e.APIError != nil && e.APIError.Message != "" {
			msg = e.APIError.Message
		}
		return fmt.Sprintf("github: API error: status %d: %s", e.StatusCode, msg)
	case KindDoesNotExist:
		return "github: does not exist"
	}

	if e.Err != nil {
		return fmt.Sprintf("github: %s: %v", e.Kind, e.Err)
	}
	return "github: " + e.Kind.String()
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a sentinel by kind and any other *Error by Equal
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if isSentinel(t) {
		return e.Kind == t.Kind
	}
	return e.Equal(t)
}

func isSentinel(err *Error) bool {
	switch err {
	case ErrNetwork, ErrCanceled, ErrJSONDeserialization, ErrJSONDecoding, ErrAPI, ErrDoesNotExist:
		return true
	}
	return false
}

// Equal reports whether e and other describe the same failure: kind, status,
// payload, response headers and cause message all match.
func (e *Error) Equal(other *Error) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.Kind == other.Kind &&
		e.StatusCode == other.StatusCode &&
		reflect.DeepEqual(e.APIError, other.APIError) &&
		reflect.DeepEqual(e.Envelope, other.Envelope) &&
		sameCause(e.Err, other.Err)
}

func sameCause(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || a.Error() == b.Error()
}

// ErrorKey is a comparable summary of an *Error for use as a map key.
// Equal errors have equal keys.
type ErrorKey struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

// Key returns the comparable identity of e
func (e *Error) Key() ErrorKey {
	key := ErrorKey{Kind: e.Kind, StatusCode: e.StatusCode}
	switch {
	case e.APIError != nil:
		key.Message = e.APIError.Message
	case e.Err != nil:
		key.Message = e.Err.Error()
	}
	return key
}

// IsDoesNotExist checks if err is a 404 outcome
func IsDoesNotExist(err error) bool {
	return errors.Is(err, ErrDoesNotExist)
}

// IsUnauthorized checks if err is an API error for bad or insufficient credentials
func IsUnauthorized(err error) bool {
	var fetchErr *Error
	if !errors.As(err, &fetchErr) || fetchErr.Kind != KindAPI {
		return false
	}
	return fetchErr.StatusCode == http.StatusUnauthorized || fetchErr.StatusCode == http.StatusForbidden
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func canceledError(err error) *Error {
	return &Error{Kind: KindCanceled, Err: err}
}

func deserializationError(err error) *Error {
	return &Error{Kind: KindJSONDeserialization, Err: err}
}

func decodingError(err error) *Error {
	return &Error{Kind: KindJSONDecoding, Err: err}
}

func apiError(statusCode int, envelope *Envelope, payload *GitHubError) *Error {
	return &Error{Kind: KindAPI, StatusCode: statusCode, Envelope: envelope, APIError: payload}
}
