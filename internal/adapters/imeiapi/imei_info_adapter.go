// Package imeiapi implements the device lookup client against the IMEI.info HTTP API.
package imeiapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/internal/core/domain/client"
	applogger "github.com/lthoerner/imei-info/internal/logger"
	"github.com/lthoerner/imei-info/internal/metrics"
)

const (
	checkPath       = "/api/check/{service_id}"
	apiKeyParam     = "API_KEY"
	imeiParam       = "imei"
	breakerName     = "imei-info"
	maxErrorBodyLen = 512
)

// IMEIInfoAdapter implements the client.DeviceInfoClient interface with one GET
// request per check, guarded by a circuit breaker. Requests are never retried.
type IMEIInfoAdapter struct {
	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	apiKey     string
	logger     applogger.AppLogger
	metrics    *metrics.Metrics
}

// Compile-time check to ensure IMEIInfoAdapter implements client.DeviceInfoClient
var _ client.DeviceInfoClient = (*IMEIInfoAdapter)(nil)

// NewIMEIInfoAdapter creates a new lookup adapter. m may be nil.
func NewIMEIInfoAdapter(
	cfg config.IMEIInfoConfig,
	cbCfg config.CircuitBreakerConfig,
	logger applogger.AppLogger,
	m *metrics.Metrics,
) *IMEIInfoAdapter {
	if logger == nil {
		logger = applogger.NewSlogAdapter(nil)
	}
	logger = logger.With("component", "imei_info_client")

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.ClientTimeout()).
		SetHeader("Accept", "application/json").
		SetLogger(&restyLogger{logger: logger})

	cbSettings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cbCfg.MaxRequests,
		Interval:    time.Duration(cbCfg.IntervalSeconds) * time.Second,
		Timeout:     time.Duration(cbCfg.TimeoutSeconds) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cbCfg.FailureThreshold
		},
		// A caller hanging up says nothing about the upstream.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			switch to {
			case gobreaker.StateOpen:
				logger.Warn("Circuit breaker opened", "cb_name", name, "from", from.String())
			case gobreaker.StateHalfOpen:
				logger.Info("Circuit breaker half-open", "cb_name", name)
			case gobreaker.StateClosed:
				logger.Info("Circuit breaker closed", "cb_name", name)
			}
		},
	}

	return &IMEIInfoAdapter{
		httpClient: httpClient,
		cb:         gobreaker.NewCircuitBreaker(cbSettings),
		apiKey:     cfg.APIKey,
		logger:     logger,
		metrics:    m,
	}
}

// CheckIMEI runs the given service check for imei.
func (a *IMEIInfoAdapter) CheckIMEI(
	ctx context.Context,
	serviceID client.ServiceID,
	imei domain.Imei,
) (domain.PhoneInfo, error) {
	result, err := a.cb.Execute(func() (interface{}, error) {
		return a.doRequest(ctx, serviceID, imei)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.PhoneInfo{}, client.ErrCircuitOpen
		}
		return domain.PhoneInfo{}, err
	}

	resp, ok := result.(*resty.Response)
	if !ok {
		return domain.PhoneInfo{}, client.ErrInvalidResponse
	}
	return a.classifyResponse(resp)
}

// doRequest performs the HTTP call. Transport failures and 5xx responses are
// returned as errors so that the breaker counts them; every other response is
// handed back for classification.
func (a *IMEIInfoAdapter) doRequest(
	ctx context.Context,
	serviceID client.ServiceID,
	imei domain.Imei,
) (*resty.Response, error) {
	a.logger.Debug("Sending service check", "service_id", uint32(serviceID), applogger.IMEIKey, imei)

	start := time.Now()
	resp, err := a.httpClient.R().
		SetContext(ctx).
		SetPathParam("service_id", strconv.FormatUint(uint64(serviceID), 10)).
		SetQueryParams(map[string]string{
			apiKeyParam: a.apiKey,
			imeiParam:   imei.String(),
		}).
		Get(checkPath)
	elapsed := time.Since(start)

	if err != nil {
		err = redactRequestURL(err)
		a.metrics.ObserveUpstream("transport_error", elapsed)
		a.logger.Error("Service check request failed", "error", err, "latency_ms", elapsed.Milliseconds())
		return nil, &client.RequestError{Cause: err}
	}

	status := resp.StatusCode()
	a.metrics.ObserveUpstream(statusClass(status), elapsed)
	a.logger.Debug("Service check response received", "http_status", status, "latency_ms", elapsed.Milliseconds())

	if status >= http.StatusInternalServerError {
		return nil, unknownAPIError(resp)
	}
	return resp, nil
}

// classifyResponse maps a non-5xx response onto a PhoneInfo or one of the client errors.
func (a *IMEIInfoAdapter) classifyResponse(resp *resty.Response) (domain.PhoneInfo, error) {
	switch resp.StatusCode() {
	case http.StatusOK:
		var body StandardResponse
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return domain.PhoneInfo{}, fmt.Errorf("%w: %w", client.ErrInvalidResponse, err)
		}
		if body.Status == StatusRejected || body.Status == StatusInProgress {
			a.logger.Warn("Service check returned a non-final status",
				"status", string(body.Status),
				"check_id", body.ID,
			)
		}
		return mapStandardResponseToDomain(&body)

	case http.StatusAccepted:
		var body PendingResponse
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return domain.PhoneInfo{}, fmt.Errorf("%w: %w", client.ErrInvalidResponse, err)
		}
		return domain.PhoneInfo{}, &client.RequestPendingError{HistoryID: body.HistoryID, ULID: body.ULID}

	case http.StatusForbidden:
		return domain.PhoneInfo{}, client.ErrMissingAPIKey

	case http.StatusUnauthorized:
		var body InvalidAPIKeyResponse
		_ = json.Unmarshal(resp.Body(), &body)
		return domain.PhoneInfo{}, &client.InvalidAPIKeyError{Detail: body.Detail}

	case http.StatusNotFound:
		return domain.PhoneInfo{}, client.ErrInvalidServiceID

	default:
		return domain.PhoneInfo{}, unknownAPIError(resp)
	}
}

func unknownAPIError(resp *resty.Response) *client.UnknownAPIError {
	body := resp.String()
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen]
	}
	return &client.UnknownAPIError{StatusCode: resp.StatusCode(), Body: body}
}

// redactRequestURL drops the query string, which carries the API key and the
// IMEI, from any *url.Error in err's chain.
func redactRequestURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if i := strings.IndexByte(urlErr.URL, '?'); i >= 0 {
			urlErr.URL = urlErr.URL[:i]
		}
	}
	return err
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
