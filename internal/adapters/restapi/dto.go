// Package restapi implements the RESTful API layer, including DTOs and handlers.
package restapi

// ErrorResponse defines a standard structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PendingResponse is returned with 202 Accepted when the remote check has been queued.
type PendingResponse struct {
	Message   string `json:"message"`
	HistoryID string `json:"history_id"`
	ULID      string `json:"ulid"`
}
