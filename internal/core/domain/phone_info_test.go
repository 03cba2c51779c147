package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lthoerner/imei-info/internal/core/domain"
)

func TestParsePhoneInfo(t *testing.T) {
	info, err := domain.ParsePhoneInfo("355086752340133", "Apple", "iPhone 14 Pro Max")
	require.NoError(t, err)
	assert.Equal(t, "355086752340133", info.IMEI.String())
	assert.Equal(t, "Apple", info.Manufacturer)
	assert.Equal(t, "iPhone 14 Pro Max", info.Model)

	_, err = domain.ParsePhoneInfo("35508675234013", "Apple", "iPhone")
	assert.ErrorIs(t, err, domain.ErrCannotParseDigits)

	_, err = domain.ParsePhoneInfo("355086752340130", "Apple", "iPhone")
	assert.ErrorIs(t, err, domain.ErrChecksumDoesNotMatch)
}
