// Package client defines interfaces for external service clients, such as the IMEI.info lookup API.
//
//go:generate mockery --name=DeviceInfoClient --output=../../application/mocks/mock_client --outpkg=mock_client
package client

import (
	"context"

	"github.com/lthoerner/imei-info/internal/core/domain"
)

// ServiceID selects which IMEI.info check is run for an identifier.
type ServiceID uint32

// IMEI.info service identifiers.
const (
	BasicIMEICheck ServiceID = 0

	SamsungInfo  ServiceID = 4
	SamsungKnox  ServiceID = 76
	Google       ServiceID = 54
	LG           ServiceID = 66
	Sony         ServiceID = 80
	Xiaomi       ServiceID = 84
	XiaomiMiLock ServiceID = 86

	AppleFMIStatus      ServiceID = 0
	AppleWarranty       ServiceID = 12
	AppleSIMLock        ServiceID = 104
	AppleCarrierLockFMI ServiceID = 2
	AppleSoldByWarranty ServiceID = 11
	BlacklistSimple     ServiceID = 27
	BlacklistPremium    ServiceID = 3
	CarrierLookup       ServiceID = 48
	ESIMInfo            ServiceID = 52
	MACAddress          ServiceID = 106
	VerizonUSA          ServiceID = 32
	TMobileUSA          ServiceID = 31
	LostDeviceAdd       ServiceID = 100
	LostDeviceCheck     ServiceID = 101
)

// DeviceInfoClient defines the interface for the remote device lookup service.
type DeviceInfoClient interface {
	// CheckIMEI runs one check for the given IMEI and maps the result to a PhoneInfo.
	// Failures are reported using the errors declared in this package.
	CheckIMEI(ctx context.Context, serviceID ServiceID, imei domain.Imei) (domain.PhoneInfo, error)
}
