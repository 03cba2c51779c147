package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIMEINumber is returned before any request is made when the caller's
	// IMEI or TAC does not parse.
	ErrInvalidIMEINumber = errors.New("IMEI or TAC number passed to wrapper is invalid")

	// ErrMissingAPIKey is returned when the service rejects a request without an API key.
	ErrMissingAPIKey = errors.New("API key was not provided")

	// ErrInvalidServiceID is returned when the service does not know the requested check.
	ErrInvalidServiceID = errors.New("service ID is invalid")

	// ErrInvalidResponse is returned when a successful response cannot be decoded or
	// carries a malformed IMEI.
	ErrInvalidResponse = errors.New("lookup service returned an unreadable response")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("lookup service circuit breaker is open")
)

// RequestPendingError reports that the check has been queued and has not resolved yet.
type RequestPendingError struct {
	HistoryID string
	ULID      string
}

func (e *RequestPendingError) Error() string {
	return fmt.Sprintf("request has not resolved yet and is pending (history_id=%s, ulid=%s)", e.HistoryID, e.ULID)
}

// InvalidAPIKeyError reports that the API key was rejected.
type InvalidAPIKeyError struct {
	Detail string
}

func (e *InvalidAPIKeyError) Error() string {
	if e.Detail == "" {
		return "API key is invalid"
	}
	return "API key is invalid: " + e.Detail
}

// RequestError wraps a transport failure; no response was received.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("unknown error occurred with request: %v", e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// UnknownAPIError reports a response status the client does not recognise.
type UnknownAPIError struct {
	StatusCode int
	Body       string
}

func (e *UnknownAPIError) Error() string {
	return fmt.Sprintf("unknown error occurred with API (status %d); wrapper may be out-of-date", e.StatusCode)
}
