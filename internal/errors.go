package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/reactssr/pkg/sanitizer"
)

// Sentinel errors for the host.
var (
	// ErrNoOperation is returned by Invoke when an endpoint has no operation.
	ErrNoOperation = errors.New("endpoint has no operation")

	// ErrUnknownEndpointKind is raised at startup when no route handler
	// is registered for an endpoint kind.
	ErrUnknownEndpointKind = errors.New("no route handler registered for endpoint kind")
)

// Status codes without a net/http constant.
const statusClientClosedRequest = 499

// defaultPanicStackSize is the stack trace size captured for recovered panics.
const defaultPanicStackSize = 4096

// HTTPError represents an HTTP error with all data needed for rendering.
// It implements the error interface and provides structured data for
// error handlers and for page data envelopes.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Title is an optional title for the error (defaults derived from Code).
	Title string

	// ErrorCode is an application-specific error code (for i18n, client handling).
	ErrorCode string

	// RequestID is the request tracking ID.
	RequestID string

	// Errors holds field-level or additional messages.
	// When empty, Message is used as the single error item.
	Errors []ErrorItem

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Title = title
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// WithFieldError adds a keyed error item, e.g. a form field validation message.
func WithFieldError(key, message string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Errors = append(e.Errors, ErrorItem{Key: key, Message: message})
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError reports whether err is or wraps an *HTTPError.
func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// PanicError represents a recovered panic.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorItem is a single user-facing error message.
// It encodes as a plain JSON string when Key is empty,
// and as {"key": ..., "message": ...} otherwise.
type ErrorItem struct {
	Key     string
	Message string
}

// MarshalJSON implements json.Marshaler.
func (i ErrorItem) MarshalJSON() ([]byte, error) {
	if i.Key == "" {
		return json.Marshal(i.Message)
	}
	return json.Marshal(struct {
		Key     string `json:"key"`
		Message string `json:"message"`
	}{i.Key, i.Message})
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *ErrorItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*i = ErrorItem{Message: s}
		return nil
	}
	var kv struct {
		Key     string `json:"key"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &kv); err != nil {
		return err
	}
	*i = ErrorItem{Key: kv.Key, Message: kv.Message}
	return nil
}

// ErrorResult is the classification of an error into user-facing data.
type ErrorResult struct {
	ErrorCode string
	Errors    []ErrorItem
	Status    int
}

// ClassifyError converts any error into an ErrorResult.
// HTTPErrors keep their status, code and messages; context errors map to
// timeout/cancel statuses; everything else becomes a generic 500 without
// exposing the error text. Messages are stripped of HTML.
func ClassifyError(err error) ErrorResult {
	var res ErrorResult

	switch {
	case err == nil:
		return ErrorResult{}
	case IsHTTPError(err):
		httpErr := AsHTTPError(err)
		res.Status = httpErr.Code
		res.ErrorCode = httpErr.ErrorCode
		if len(httpErr.Errors) > 0 {
			res.Errors = append(res.Errors, httpErr.Errors...)
		} else if httpErr.Message != "" {
			res.Errors = []ErrorItem{{Message: httpErr.Message}}
		}
	case errors.Is(err, context.DeadlineExceeded):
		res.Status = http.StatusGatewayTimeout
		res.ErrorCode = "timeout"
	case errors.Is(err, context.Canceled):
		res.Status = statusClientClosedRequest
		res.ErrorCode = "canceled"
	default:
		res.Status = http.StatusInternalServerError
	}

	if res.Status == 0 {
		res.Status = http.StatusInternalServerError
	}
	if len(res.Errors) == 0 {
		res.Errors = []ErrorItem{{Message: statusMessage(res.Status)}}
	}
	for i := range res.Errors {
		res.Errors[i].Message = sanitizer.StripTags(res.Errors[i].Message)
	}

	return res
}

func statusMessage(code int) string {
	if code == statusClientClosedRequest {
		return "Client Closed Request"
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}
