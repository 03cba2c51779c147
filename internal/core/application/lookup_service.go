// Package application contains the core application service logic for device lookups.
package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/internal/core/domain/client"
	"github.com/lthoerner/imei-info/internal/core/domain/repository"
	"github.com/lthoerner/imei-info/internal/logger"
	"github.com/lthoerner/imei-info/internal/metrics"
	"github.com/lthoerner/imei-info/pkg/imeiinfo"
)

// LookupServiceImpl implements the imeiinfo.Lookup interface and contains the core application logic.
type LookupServiceImpl struct {
	deviceClient client.DeviceInfoClient
	cache        repository.PhoneInfoRepository
	logger       logger.AppLogger
	metrics      *metrics.Metrics
	serviceID    client.ServiceID
}

// Compile-time check to ensure LookupServiceImpl implements imeiinfo.Lookup
var _ imeiinfo.Lookup = (*LookupServiceImpl)(nil)

// NewLookupService creates a new instance of LookupServiceImpl.
// cache and m are optional; a nil cache disables result caching.
func NewLookupService(
	deviceClient client.DeviceInfoClient,
	cache repository.PhoneInfoRepository,
	appLogger logger.AppLogger,
	m *metrics.Metrics,
	clientCfg config.IMEIInfoConfig,
) (*LookupServiceImpl, error) {
	if appLogger == nil {
		return nil, errors.New("NewLookupService: appLogger is nil")
	}
	if deviceClient == nil {
		appLogger.Error("NewLookupService: deviceClient is nil")
		return nil, errors.New("NewLookupService: deviceClient is nil")
	}

	s := &LookupServiceImpl{
		deviceClient: deviceClient,
		cache:        cache,
		logger:       appLogger.With("component", "lookup_service"),
		metrics:      m,
		serviceID:    client.ServiceID(clientCfg.ServiceID),
	}
	s.logger.Debug("Lookup service initialized", "service_id", clientCfg.ServiceID, "cache_enabled", cache != nil)
	return s, nil
}

// GetIMEIInfo validates imei and fetches the device it belongs to.
// An invalid IMEI fails with client.ErrInvalidIMEINumber before any request is made.
func (s *LookupServiceImpl) GetIMEIInfo(ctx context.Context, rawIMEI string) (imeiinfo.PhoneInfo, error) {
	imei, err := domain.ParseImei(rawIMEI)
	if err != nil {
		s.metrics.ObserveLookup(metrics.KindIMEI, metrics.OutcomeInvalidInput)
		return imeiinfo.PhoneInfo{}, fmt.Errorf("%w: %w", client.ErrInvalidIMEINumber, err)
	}

	info, err := s.lookup(ctx, metrics.KindIMEI, imei)
	if err != nil {
		return imeiinfo.PhoneInfo{}, err
	}
	return mapDomainToAPIPhoneInfo(info), nil
}

// GetTACInfo validates tac and looks up the IMEI synthesized from it.
func (s *LookupServiceImpl) GetTACInfo(ctx context.Context, rawTAC string) (imeiinfo.PhoneInfo, error) {
	tac, err := domain.ParseTac(rawTAC)
	if err != nil {
		s.metrics.ObserveLookup(metrics.KindTAC, metrics.OutcomeInvalidInput)
		return imeiinfo.PhoneInfo{}, fmt.Errorf("%w: %w", client.ErrInvalidIMEINumber, err)
	}

	info, err := s.lookup(ctx, metrics.KindTAC, tac.Imei())
	if err != nil {
		return imeiinfo.PhoneInfo{}, err
	}
	return mapDomainToAPIPhoneInfo(info), nil
}

// DescribeIMEI decomposes an IMEI offline. A wrong check digit is reported in
// the result rather than as an error.
func (s *LookupServiceImpl) DescribeIMEI(rawIMEI string) (imeiinfo.IMEIDetails, error) {
	return DescribeIMEI(rawIMEI)
}

// SynthesizeIMEI builds the zero-serial IMEI for a TAC offline.
func (s *LookupServiceImpl) SynthesizeIMEI(rawTAC string) (imeiinfo.SynthesizedIMEI, error) {
	return SynthesizeIMEI(rawTAC)
}

// DescribeIMEI is the network-free form of LookupServiceImpl.DescribeIMEI.
func DescribeIMEI(rawIMEI string) (imeiinfo.IMEIDetails, error) {
	imei, err := domain.ParseImeiDigits(rawIMEI)
	if err != nil {
		return imeiinfo.IMEIDetails{}, fmt.Errorf("%w: %w", client.ErrInvalidIMEINumber, err)
	}
	return mapDomainToAPIDetails(imei), nil
}

// SynthesizeIMEI is the network-free form of LookupServiceImpl.SynthesizeIMEI.
func SynthesizeIMEI(rawTAC string) (imeiinfo.SynthesizedIMEI, error) {
	tac, err := domain.ParseTac(rawTAC)
	if err != nil {
		return imeiinfo.SynthesizedIMEI{}, fmt.Errorf("%w: %w", client.ErrInvalidIMEINumber, err)
	}
	return imeiinfo.SynthesizedIMEI{TAC: tac.String(), IMEI: tac.Imei().String()}, nil
}

// lookup serves imei from the cache when possible and otherwise asks the remote service.
func (s *LookupServiceImpl) lookup(ctx context.Context, kind string, imei domain.Imei) (domain.PhoneInfo, error) {
	log := s.logger.With(logger.IMEIKey, imei, "kind", kind)

	if s.cache != nil {
		cached, err := s.cache.FindByIMEI(ctx, imei)
		switch {
		case err == nil:
			log.Debug("Cache hit")
			s.metrics.ObserveLookup(kind, metrics.OutcomeCacheHit)
			return cached, nil
		case errors.Is(err, repository.ErrPhoneInfoNotFound):
			log.Debug("Cache miss")
		default:
			s.metrics.IncCacheError()
			log.Warn("Cache read failed, falling back to remote lookup", "error", err)
		}
	}

	info, err := s.deviceClient.CheckIMEI(ctx, s.serviceID, imei)
	if err != nil {
		s.metrics.ObserveLookup(kind, metrics.OutcomeError)
		var pending *client.RequestPendingError
		if errors.As(err, &pending) {
			log.Info("Lookup is pending", "history_id", pending.HistoryID, "ulid", pending.ULID)
		} else {
			log.Error("Remote lookup failed", "error", err)
		}
		return domain.PhoneInfo{}, fmt.Errorf("device lookup failed: %w", err)
	}

	s.metrics.ObserveLookup(kind, metrics.OutcomeSuccess)
	log.Info("Lookup succeeded", "manufacturer", info.Manufacturer, "model", info.Model)

	if s.cache != nil {
		if err := s.cache.Store(ctx, info); err != nil {
			s.metrics.IncCacheError()
			log.Warn("Failed to cache lookup result", "error", err)
		}
	}
	return info, nil
}
