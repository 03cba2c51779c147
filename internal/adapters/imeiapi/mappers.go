package imeiapi

import (
	"fmt"

	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/internal/core/domain/client"
)

// mapStandardResponseToDomain converts the result of a finished check to the domain model.
func mapStandardResponseToDomain(resp *StandardResponse) (domain.PhoneInfo, error) {
	info, err := domain.ParsePhoneInfo(resp.Result.IMEI, resp.Result.BrandName, resp.Result.Model)
	if err != nil {
		return domain.PhoneInfo{}, fmt.Errorf("%w: result imei %q: %w", client.ErrInvalidResponse, resp.Result.IMEI, err)
	}
	return info, nil
}
