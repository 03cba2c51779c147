package imeiapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lthoerner/imei-info/internal/adapters/imeiapi"
	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/internal/core/domain/client"
	applogger "github.com/lthoerner/imei-info/internal/logger"
	"github.com/lthoerner/imei-info/internal/metrics"
)

const standardBody = `{
	"id": 1234,
	"ulid": null,
	"status": "Done",
	"service": "Basic IMEI Check",
	"service_id": 0,
	"created_at": "2023-04-08T21:38:22.478Z",
	"imei": "355086752340133",
	"imei2": null,
	"sn": null,
	"phone_number": null,
	"text": null,
	"token_key": "abc",
	"token_request_price": "0.00",
	"result": {"imei": "355086752340133", "brand_name": "Apple", "model": "iPhone 14 Pro Max"},
	"requested_at": "2023-04-08T21:38:22.478Z"
}`

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *imeiapi.IMEIInfoAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.IMEIInfo.BaseURL = srv.URL
	cfg.IMEIInfo.APIKey = "test-key"
	cfg.IMEIInfo.ClientTimeoutSeconds = 2
	cfg.CircuitBreaker.FailureThreshold = 2

	logger := applogger.NewNopLogger()
	return imeiapi.NewIMEIInfoAdapter(cfg.IMEIInfo, cfg.CircuitBreaker, logger, metrics.New())
}

func mustImei(t *testing.T, s string) domain.Imei {
	t.Helper()
	imei, err := domain.ParseImei(s)
	require.NoError(t, err)
	return imei
}

func TestIMEIInfoAdapter_CheckIMEI_Success(t *testing.T) {
	var gotPath, gotKey, gotIMEI string
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("API_KEY")
		gotIMEI = r.URL.Query().Get("imei")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, standardBody)
	})

	info, err := adapter.CheckIMEI(context.Background(), client.SamsungInfo, mustImei(t, "355086752340133"))
	require.NoError(t, err)

	assert.Equal(t, "/api/check/4", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "355086752340133", gotIMEI)
	assert.Equal(t, "355086752340133", info.IMEI.String())
	assert.Equal(t, "Apple", info.Manufacturer)
	assert.Equal(t, "iPhone 14 Pro Max", info.Model)
}

func TestIMEIInfoAdapter_CheckIMEI_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "Pending",
			status: http.StatusAccepted,
			body:   `{"message": "queued", "history_id": "h-1", "ulid": "01GXH"}`,
			check: func(t *testing.T, err error) {
				var pending *client.RequestPendingError
				require.ErrorAs(t, err, &pending)
				assert.Equal(t, "h-1", pending.HistoryID)
				assert.Equal(t, "01GXH", pending.ULID)
			},
		},
		{
			name:   "Missing API key",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, client.ErrMissingAPIKey)
			},
		},
		{
			name:   "Invalid API key",
			status: http.StatusUnauthorized,
			body:   `{"detail": "Invalid token."}`,
			check: func(t *testing.T, err error) {
				var invalid *client.InvalidAPIKeyError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, "Invalid token.", invalid.Detail)
			},
		},
		{
			name:   "Invalid service ID",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, client.ErrInvalidServiceID)
			},
		},
		{
			name:   "Unexpected status",
			status: http.StatusTeapot,
			body:   "short and stout",
			check: func(t *testing.T, err error) {
				var unknown *client.UnknownAPIError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, http.StatusTeapot, unknown.StatusCode)
				assert.Equal(t, "short and stout", unknown.Body)
			},
		},
		{
			name:   "Server error",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				var unknown *client.UnknownAPIError
				require.ErrorAs(t, err, &unknown)
				assert.Equal(t, http.StatusBadGateway, unknown.StatusCode)
			},
		},
		{
			name:   "Undecodable success body",
			status: http.StatusOK,
			body:   `{"result": `,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, client.ErrInvalidResponse)
			},
		},
		{
			name:   "Malformed IMEI in result",
			status: http.StatusOK,
			body:   `{"status": "Done", "created_at": "2023-04-08T21:38:22Z", "requested_at": "2023-04-08T21:38:22Z", "result": {"imei": "355086752340130", "brand_name": "Apple", "model": "iPhone"}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, client.ErrInvalidResponse)
				assert.ErrorIs(t, err, domain.ErrChecksumDoesNotMatch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := adapter.CheckIMEI(context.Background(), client.BasicIMEICheck, mustImei(t, "355086752340133"))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestIMEIInfoAdapter_CheckIMEI_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := config.Default()
	cfg.IMEIInfo.BaseURL = srv.URL
	adapter := imeiapi.NewIMEIInfoAdapter(cfg.IMEIInfo, cfg.CircuitBreaker, nil, nil)

	_, err := adapter.CheckIMEI(context.Background(), client.BasicIMEICheck, mustImei(t, "355086752340133"))

	var reqErr *client.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestIMEIInfoAdapter_CircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	imei := mustImei(t, "355086752340133")

	for i := 0; i < 2; i++ {
		_, err := adapter.CheckIMEI(context.Background(), client.BasicIMEICheck, imei)
		var unknown *client.UnknownAPIError
		require.ErrorAs(t, err, &unknown)
	}

	_, err := adapter.CheckIMEI(context.Background(), client.BasicIMEICheck, imei)
	assert.ErrorIs(t, err, client.ErrCircuitOpen)
	assert.Equal(t, int32(2), calls.Load())
}

func TestIMEIInfoAdapter_ClientErrorsDoNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	imei := mustImei(t, "355086752340133")

	for i := 0; i < 5; i++ {
		_, err := adapter.CheckIMEI(context.Background(), client.ServiceID(9999), imei)
		assert.ErrorIs(t, err, client.ErrInvalidServiceID)
	}
	assert.Equal(t, int32(5), calls.Load())
}

func TestIMEIInfoAdapter_TransportErrorHidesQuery(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, standardBody)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.CheckIMEI(ctx, client.BasicIMEICheck, mustImei(t, "355086752340133"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), "test-key")
	assert.NotContains(t, err.Error(), "355086752340133")
}

func TestIMEIInfoAdapter_CanceledCallsDoNotTripBreaker(t *testing.T) {
	var calls atomic.Int32
	adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, standardBody)
	})
	imei := mustImei(t, "355086752340133")

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 3; i++ {
		_, err := adapter.CheckIMEI(canceled, client.BasicIMEICheck, imei)
		assert.ErrorIs(t, err, context.Canceled)
	}

	info, err := adapter.CheckIMEI(context.Background(), client.BasicIMEICheck, imei)
	require.NoError(t, err)
	assert.Equal(t, "Apple", info.Manufacturer)
	assert.Equal(t, int32(1), calls.Load())
}
