// Package repository defines interfaces for data storage and retrieval operations.
//
//go:generate mockery --name=PhoneInfoRepository --output=../../application/mocks/mock_repository --outpkg=mock_repository
package repository

import (
	"context"
	"errors"

	"github.com/lthoerner/imei-info/internal/core/domain"
)

// ErrPhoneInfoNotFound is returned when no cached lookup result exists for an IMEI.
var ErrPhoneInfoNotFound = errors.New("phone info not found")

// PhoneInfoRepository stores lookup results keyed by IMEI.
type PhoneInfoRepository interface {
	// FindByIMEI returns the stored result or ErrPhoneInfoNotFound.
	FindByIMEI(ctx context.Context, imei domain.Imei) (domain.PhoneInfo, error)

	// Store saves a result, replacing any previous one for the same IMEI.
	Store(ctx context.Context, info domain.PhoneInfo) error
}
