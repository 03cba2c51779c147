package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/logger"
	"github.com/lthoerner/imei-info/pkg/imeiinfo"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     logger.AppLogger
}

// NewServer creates a new instance of the REST API server. A nil gatherer disables /metrics.
func NewServer(
	service imeiinfo.Lookup,
	gatherer prometheus.Gatherer,
	appLogger logger.AppLogger,
	cfg *config.ServerConfig,
) (*Server, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil for Server")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for Server")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil for Server")
	}

	h, err := NewHTTPHandler(service, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           NewRouter(h, gatherer),
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
	}

	return &Server{
		httpServer: server,
		logger:     appLogger,
	}, nil
}

// Start runs the HTTP server. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server ListenAndServe error", "error", err)
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	s.logger.Info("HTTP server stopped gracefully.")
	return nil
}

// NewRouter registers all API handlers on a new ServeMux wrapped with request ID handling.
func NewRouter(h *HTTPHandler, gatherer prometheus.Gatherer) http.Handler {
	smux := http.NewServeMux()

	smux.HandleFunc("/imei/{imei}", h.HandleGetIMEIInfo)
	smux.HandleFunc("/imei/{imei}/details", h.HandleDescribeIMEI)
	smux.HandleFunc("/tac/{tac}", h.HandleGetTACInfo)
	smux.HandleFunc("/tac/{tac}/imei", h.HandleSynthesizeIMEI)
	if gatherer != nil {
		smux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	h.logger.Debug("Registered endpoints",
		"routes", []string{
			"GET /imei/{imei}",
			"GET /imei/{imei}/details",
			"GET /tac/{tac}",
			"GET /tac/{tac}/imei",
			"GET /metrics",
		},
	)

	return withRequestID(smux)
}
