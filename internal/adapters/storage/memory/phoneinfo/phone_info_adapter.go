// Package phoneinfo provides an in-memory implementation of the PhoneInfoRepository interface.
package phoneinfo

import (
	"context"
	"sync"
	"time"

	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/internal/core/domain/repository"
)

type entry struct {
	info      domain.PhoneInfo
	expiresAt time.Time
}

// InMemoryPhoneInfoRepo implements the PhoneInfoRepository interface using an in-memory map.
// Entries expire after the configured TTL and are evicted lazily on read.
type InMemoryPhoneInfoRepo struct {
	mu      sync.RWMutex
	entries map[domain.Imei]entry
	ttl     time.Duration
	now     func() time.Time
}

// Compile-time check to ensure InMemoryPhoneInfoRepo implements repository.PhoneInfoRepository
var _ repository.PhoneInfoRepository = (*InMemoryPhoneInfoRepo)(nil)

// NewInMemoryPhoneInfoRepo creates a new in-memory repository. A non-positive ttl keeps entries forever.
func NewInMemoryPhoneInfoRepo(ttl time.Duration) *InMemoryPhoneInfoRepo {
	return &InMemoryPhoneInfoRepo{
		entries: make(map[domain.Imei]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// FindByIMEI returns the stored result or repository.ErrPhoneInfoNotFound.
func (r *InMemoryPhoneInfoRepo) FindByIMEI(_ context.Context, imei domain.Imei) (domain.PhoneInfo, error) {
	r.mu.RLock()
	e, ok := r.entries[imei]
	r.mu.RUnlock()

	if !ok {
		return domain.PhoneInfo{}, repository.ErrPhoneInfoNotFound
	}
	if r.expired(e) {
		r.mu.Lock()
		// Re-check under the write lock; a concurrent Store may have refreshed it.
		if cur, ok := r.entries[imei]; ok && r.expired(cur) {
			delete(r.entries, imei)
		}
		r.mu.Unlock()
		return domain.PhoneInfo{}, repository.ErrPhoneInfoNotFound
	}
	return e.info, nil
}

// Store saves a result, replacing any previous one for the same IMEI.
func (r *InMemoryPhoneInfoRepo) Store(_ context.Context, info domain.PhoneInfo) error {
	e := entry{info: info}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[info.IMEI] = e
	return nil
}

// Len returns the number of entries currently held, including expired ones not yet evicted.
func (r *InMemoryPhoneInfoRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *InMemoryPhoneInfoRepo) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt)
}
