// Package phoneinfo provides a Redis-backed implementation of the PhoneInfoRepository interface.
package phoneinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/internal/core/domain/repository"
)

const keyPrefix = "phoneinfo:"

// record is the JSON document stored per IMEI.
type record struct {
	IMEI         domain.Imei `json:"imei"`
	Manufacturer string      `json:"manufacturer"`
	Model        string      `json:"model"`
	CachedAt     time.Time   `json:"cached_at"`
}

// RedisPhoneInfoRepo implements the PhoneInfoRepository interface on top of Redis string keys.
type RedisPhoneInfoRepo struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// Compile-time check to ensure RedisPhoneInfoRepo implements repository.PhoneInfoRepository
var _ repository.PhoneInfoRepository = (*RedisPhoneInfoRepo)(nil)

// NewRedisPhoneInfoRepo wraps an existing client. A non-positive ttl stores keys without expiry.
func NewRedisPhoneInfoRepo(rdb redis.UniversalClient, ttl time.Duration) *RedisPhoneInfoRepo {
	return &RedisPhoneInfoRepo{rdb: rdb, ttl: ttl}
}

// Connect opens a client for cfg and verifies it with PING.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

func key(imei domain.Imei) string {
	return keyPrefix + imei.String()
}

// FindByIMEI returns the stored result or repository.ErrPhoneInfoNotFound.
func (r *RedisPhoneInfoRepo) FindByIMEI(ctx context.Context, imei domain.Imei) (domain.PhoneInfo, error) {
	raw, err := r.rdb.Get(ctx, key(imei)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PhoneInfo{}, repository.ErrPhoneInfoNotFound
	}
	if err != nil {
		return domain.PhoneInfo{}, fmt.Errorf("failed to read phone info for %s: %w", imei, err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.PhoneInfo{}, fmt.Errorf("failed to decode phone info for %s: %w", imei, err)
	}
	return domain.NewPhoneInfo(rec.IMEI, rec.Manufacturer, rec.Model), nil
}

// Store saves a result, replacing any previous one for the same IMEI.
func (r *RedisPhoneInfoRepo) Store(ctx context.Context, info domain.PhoneInfo) error {
	raw, err := json.Marshal(record{
		IMEI:         info.IMEI,
		Manufacturer: info.Manufacturer,
		Model:        info.Model,
		CachedAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode phone info for %s: %w", info.IMEI, err)
	}

	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, key(info.IMEI), raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store phone info for %s: %w", info.IMEI, err)
	}
	return nil
}
