package application

import (
	"strings"

	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/pkg/imeiinfo"
)

// mapDomainToAPIPhoneInfo converts a domain PhoneInfo to the public API DTO.
func mapDomainToAPIPhoneInfo(info domain.PhoneInfo) imeiinfo.PhoneInfo {
	return imeiinfo.PhoneInfo{
		IMEI:         info.IMEI.String(),
		Manufacturer: info.Manufacturer,
		Model:        info.Model,
	}
}

// mapDomainToAPIDetails converts an IMEI, valid or not, to its public decomposition.
func mapDomainToAPIDetails(imei domain.Imei) imeiinfo.IMEIDetails {
	rb := imei.ReportingBody()
	mi := imei.ModelIdentifier()
	sn := imei.SerialNumber()
	tac := imei.TypeAllocationCode()
	digits := imei.Digits()

	return imeiinfo.IMEIDetails{
		IMEI:               imei.String(),
		ReportingBody:      digitString(rb[:]),
		ModelIdentifier:    digitString(mi[:]),
		TypeAllocationCode: digitString(tac[:]),
		SerialNumber:       digitString(sn[:]),
		CheckDigit:         imei.CheckDigit(),
		ExpectedCheckDigit: domain.LuhnChecksum(digits[:domain.ImeiLength-1]),
		Valid:              imei.IsValid(),
	}
}

func digitString(digits []uint8) string {
	var b strings.Builder
	for _, d := range digits {
		b.WriteByte('0' + d)
	}
	return b.String()
}
