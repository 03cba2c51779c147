// Package imeiinfo defines the public API contracts for the device lookup service.
package imeiinfo

import (
	"context"
)

// PhoneInfo represents the data structure for a lookup result returned by the API.
type PhoneInfo struct {
	IMEI         string `json:"imei"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
}

// IMEIDetails is the offline decomposition of an IMEI.
type IMEIDetails struct {
	IMEI               string `json:"imei"`
	ReportingBody      string `json:"reportingBody"`
	ModelIdentifier    string `json:"modelIdentifier"`
	TypeAllocationCode string `json:"typeAllocationCode"`
	SerialNumber       string `json:"serialNumber"`
	CheckDigit         uint8  `json:"checkDigit"`
	ExpectedCheckDigit uint8  `json:"expectedCheckDigit"`
	Valid              bool   `json:"valid"`
}

// SynthesizedIMEI is the IMEI generated for a TAC.
type SynthesizedIMEI struct {
	TAC  string `json:"tac"`
	IMEI string `json:"imei"`
}

// Lookup defines the public interface for the device lookup service.
type Lookup interface {
	// GetIMEIInfo validates imei and fetches the device it belongs to.
	GetIMEIInfo(ctx context.Context, imei string) (info PhoneInfo, err error)

	// GetTACInfo validates tac and fetches the device model it identifies.
	GetTACInfo(ctx context.Context, tac string) (info PhoneInfo, err error)

	// DescribeIMEI decomposes an IMEI without contacting the remote service.
	DescribeIMEI(imei string) (details IMEIDetails, err error)

	// SynthesizeIMEI builds a valid IMEI for a TAC without contacting the remote service.
	SynthesizeIMEI(tac string) (imei SynthesizedIMEI, err error)
}
