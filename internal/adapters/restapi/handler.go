package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/lthoerner/imei-info/internal/core/domain/client"
	"github.com/lthoerner/imei-info/internal/logger"
	"github.com/lthoerner/imei-info/pkg/imeiinfo"
)

// HTTPHandler handles incoming HTTP requests for the lookup API.
type HTTPHandler struct {
	lookupService imeiinfo.Lookup
	logger        logger.AppLogger
}

// NewHTTPHandler creates a new handler with the necessary service dependency.
func NewHTTPHandler(lookupService imeiinfo.Lookup, appLogger logger.AppLogger) (*HTTPHandler, error) {
	if lookupService == nil {
		return nil, errors.New("lookupService cannot be nil for HTTPHandler")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for HTTPHandler")
	}
	return &HTTPHandler{
		lookupService: lookupService,
		logger:        appLogger,
	}, nil
}

func (h *HTTPHandler) requestLogger(r *http.Request) logger.AppLogger {
	return h.logger.With("method", r.Method, "path", r.URL.Path, "request_id", requestIDFromContext(r.Context()))
}

// HandleGetIMEIInfo handles requests to GET /imei/{imei}
func (h *HTTPHandler) HandleGetIMEIInfo(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.requestLogger(r)
	if !allowGet(w, r, requestLogger) {
		return
	}

	info, err := h.lookupService.GetIMEIInfo(r.Context(), r.PathValue("imei"))
	if err != nil {
		h.respondWithLookupError(w, err, requestLogger)
		return
	}
	respondWithJSON(w, http.StatusOK, info, requestLogger)
}

// HandleDescribeIMEI handles requests to GET /imei/{imei}/details
func (h *HTTPHandler) HandleDescribeIMEI(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.requestLogger(r)
	if !allowGet(w, r, requestLogger) {
		return
	}

	details, err := h.lookupService.DescribeIMEI(r.PathValue("imei"))
	if err != nil {
		h.respondWithLookupError(w, err, requestLogger)
		return
	}
	respondWithJSON(w, http.StatusOK, details, requestLogger)
}

// HandleGetTACInfo handles requests to GET /tac/{tac}
func (h *HTTPHandler) HandleGetTACInfo(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.requestLogger(r)
	if !allowGet(w, r, requestLogger) {
		return
	}

	info, err := h.lookupService.GetTACInfo(r.Context(), r.PathValue("tac"))
	if err != nil {
		h.respondWithLookupError(w, err, requestLogger)
		return
	}
	respondWithJSON(w, http.StatusOK, info, requestLogger)
}

// HandleSynthesizeIMEI handles requests to GET /tac/{tac}/imei
func (h *HTTPHandler) HandleSynthesizeIMEI(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.requestLogger(r)
	if !allowGet(w, r, requestLogger) {
		return
	}

	imei, err := h.lookupService.SynthesizeIMEI(r.PathValue("tac"))
	if err != nil {
		h.respondWithLookupError(w, err, requestLogger)
		return
	}
	respondWithJSON(w, http.StatusOK, imei, requestLogger)
}

func allowGet(w http.ResponseWriter, r *http.Request, l logger.AppLogger) bool {
	if r.Method == http.MethodGet {
		return true
	}
	l.Warn("Method not allowed")
	w.Header().Set("Allow", http.MethodGet)
	respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", l)
	return false
}

// respondWithLookupError maps service errors onto HTTP responses.
func (h *HTTPHandler) respondWithLookupError(w http.ResponseWriter, err error, l logger.AppLogger) {
	var (
		pending    *client.RequestPendingError
		invalidKey *client.InvalidAPIKeyError
		unknown    *client.UnknownAPIError
		reqErr     *client.RequestError
	)

	switch {
	case errors.Is(err, client.ErrInvalidIMEINumber):
		respondWithError(w, http.StatusBadRequest, err.Error(), l)
	case errors.As(err, &pending):
		respondWithJSON(w, http.StatusAccepted, PendingResponse{
			Message:   "request has not resolved yet and is pending",
			HistoryID: pending.HistoryID,
			ULID:      pending.ULID,
		}, l)
	case errors.Is(err, client.ErrCircuitOpen):
		respondWithError(w, http.StatusServiceUnavailable, "Lookup service temporarily unavailable", l)
	case errors.Is(err, client.ErrMissingAPIKey), errors.As(err, &invalidKey):
		l.Error("Lookup service rejected credentials", "error", err)
		respondWithError(w, http.StatusBadGateway, "Lookup service rejected the configured API key", l)
	case errors.Is(err, client.ErrInvalidServiceID):
		respondWithError(w, http.StatusBadGateway, "Lookup service does not know the configured service ID", l)
	case errors.As(err, &unknown), errors.As(err, &reqErr), errors.Is(err, client.ErrInvalidResponse):
		respondWithError(w, http.StatusBadGateway, "Lookup service request failed", l)
	default:
		l.Error("Unexpected lookup error", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error", l)
	}
}

// respondWithError logs a warning and sends a JSON error response with the given code and message.
func respondWithError(w http.ResponseWriter, code int, message string, l logger.AppLogger) {
	l.Warn("Responding with error", "http_code", code, "message", message)
	respondWithJSON(w, code, ErrorResponse{Error: message}, l)
}

// respondWithJSON marshals the given payload into JSON and writes it to the response writer.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, l logger.AppLogger) {
	response, err := json.Marshal(payload)
	if err != nil {
		l.Error("Error marshaling JSON response",
			"error", err.Error(),
			"payload_type", fmt.Sprintf("%T", payload),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	n, writeErr := w.Write(response)
	if writeErr != nil {
		l.Error("Error writing response body", "error", writeErr, "bytes_written", n)
	}
}
