package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/lthoerner/imei-info/internal/adapters/imeiapi"
	memphoneinfo "github.com/lthoerner/imei-info/internal/adapters/storage/memory/phoneinfo"
	redisphoneinfo "github.com/lthoerner/imei-info/internal/adapters/storage/redis/phoneinfo"
	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/core/application"
	"github.com/lthoerner/imei-info/internal/core/domain/repository"
	"github.com/lthoerner/imei-info/internal/logger"
	"github.com/lthoerner/imei-info/internal/metrics"
)

// app holds the wired dependencies shared by the commands.
type app struct {
	lookup  *application.LookupServiceImpl
	metrics *metrics.Metrics
	closers []func() error
}

// buildApp wires the lookup service for c. Redis is only contacted when it is the configured cache backend.
func buildApp(ctx context.Context, c *config.Config, l logger.AppLogger) (*app, error) {
	a := &app{metrics: metrics.New()}

	deviceClient := imeiapi.NewIMEIInfoAdapter(c.IMEIInfo, c.CircuitBreaker, l, a.metrics)

	var cache repository.PhoneInfoRepository
	switch c.Cache.Backend {
	case config.CacheBackendMemory:
		cache = memphoneinfo.NewInMemoryPhoneInfoRepo(c.Cache.TTL())
	case config.CacheBackendRedis:
		rdb, err := redisphoneinfo.Connect(ctx, c.Cache.Redis)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		cache = redisphoneinfo.NewRedisPhoneInfoRepo(rdb, c.Cache.TTL())
	}

	svc, err := application.NewLookupService(deviceClient, cache, l, a.metrics, c.IMEIInfo)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to create lookup service: %w", err)
	}
	a.lookup = svc
	return a, nil
}

// Close releases connections opened by buildApp.
func (a *app) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
