package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lthoerner/imei-info/internal/config"
	"github.com/lthoerner/imei-info/internal/core/application"
	"github.com/lthoerner/imei-info/internal/core/application/mocks/mock_client"
	"github.com/lthoerner/imei-info/internal/core/application/mocks/mock_repository"
	"github.com/lthoerner/imei-info/internal/core/domain"
	"github.com/lthoerner/imei-info/internal/core/domain/client"
	"github.com/lthoerner/imei-info/internal/core/domain/repository"
	applogger "github.com/lthoerner/imei-info/internal/logger"
	"github.com/lthoerner/imei-info/internal/metrics"
)

const sampleIMEI = "355086752340133"

func testLogger() applogger.AppLogger {
	return applogger.NewNopLogger()
}

// setupService builds a service with a mocked client and, when withCache is set, a mocked cache.
func setupService(t *testing.T, withCache bool) (
	*application.LookupServiceImpl,
	*mock_client.DeviceInfoClient,
	*mock_repository.PhoneInfoRepository,
) {
	t.Helper()
	mockClient := mock_client.NewDeviceInfoClient(t)

	var cache repository.PhoneInfoRepository
	var mockCache *mock_repository.PhoneInfoRepository
	if withCache {
		mockCache = mock_repository.NewPhoneInfoRepository(t)
		cache = mockCache
	}

	service, err := application.NewLookupService(
		mockClient,
		cache,
		testLogger(),
		metrics.New(),
		config.IMEIInfoConfig{ServiceID: uint32(client.BasicIMEICheck)},
	)
	require.NoError(t, err)
	return service, mockClient, mockCache
}

func samplePhoneInfo(t *testing.T, imei string) domain.PhoneInfo {
	t.Helper()
	info, err := domain.ParsePhoneInfo(imei, "Apple", "iPhone 14 Pro Max")
	require.NoError(t, err)
	return info
}

func TestNewLookupService_NilDependencies(t *testing.T) {
	_, err := application.NewLookupService(mock_client.NewDeviceInfoClient(t), nil, nil, nil, config.IMEIInfoConfig{})
	assert.Error(t, err)

	_, err = application.NewLookupService(nil, nil, testLogger(), nil, config.IMEIInfoConfig{})
	assert.Error(t, err)
}

func TestLookupServiceImpl_GetIMEIInfo(t *testing.T) {
	service, mockClient, _ := setupService(t, false)
	ctx := context.Background()
	info := samplePhoneInfo(t, sampleIMEI)

	mockClient.On("CheckIMEI", ctx, client.BasicIMEICheck, info.IMEI).Return(info, nil)

	got, err := service.GetIMEIInfo(ctx, sampleIMEI)
	require.NoError(t, err)
	assert.Equal(t, sampleIMEI, got.IMEI)
	assert.Equal(t, "Apple", got.Manufacturer)
	assert.Equal(t, "iPhone 14 Pro Max", got.Model)
}

func TestLookupServiceImpl_GetIMEIInfo_InvalidInputSkipsNetwork(t *testing.T) {
	service, mockClient, _ := setupService(t, false)

	for _, raw := range []string{"355086752340130", "3550867523401", "35508675234013x", ""} {
		_, err := service.GetIMEIInfo(context.Background(), raw)
		assert.ErrorIs(t, err, client.ErrInvalidIMEINumber, raw)
	}

	_, err := service.GetIMEIInfo(context.Background(), "355086752340130")
	assert.ErrorIs(t, err, domain.ErrChecksumDoesNotMatch)

	mockClient.AssertNotCalled(t, "CheckIMEI", mock.Anything, mock.Anything, mock.Anything)
}

func TestLookupServiceImpl_GetIMEIInfo_ClientError(t *testing.T) {
	service, mockClient, _ := setupService(t, false)
	ctx := context.Background()
	imei, err := domain.ParseImei(sampleIMEI)
	require.NoError(t, err)

	pending := &client.RequestPendingError{HistoryID: "h-1", ULID: "01GXH"}
	mockClient.On("CheckIMEI", ctx, client.BasicIMEICheck, imei).Return(domain.PhoneInfo{}, pending)

	_, err = service.GetIMEIInfo(ctx, sampleIMEI)
	var gotPending *client.RequestPendingError
	require.ErrorAs(t, err, &gotPending)
	assert.Equal(t, "h-1", gotPending.HistoryID)
}

func TestLookupServiceImpl_GetTACInfo(t *testing.T) {
	service, mockClient, _ := setupService(t, false)
	ctx := context.Background()

	synthesized, err := domain.ParseImei("355086750000002")
	require.NoError(t, err)
	info := domain.NewPhoneInfo(synthesized, "Apple", "iPhone 14 Pro Max")

	mockClient.On("CheckIMEI", ctx, client.BasicIMEICheck, synthesized).Return(info, nil)

	got, err := service.GetTACInfo(ctx, "35508675")
	require.NoError(t, err)
	assert.Equal(t, "355086750000002", got.IMEI)
	assert.Equal(t, "iPhone 14 Pro Max", got.Model)
}

func TestLookupServiceImpl_GetTACInfo_InvalidTAC(t *testing.T) {
	service, _, _ := setupService(t, false)

	_, err := service.GetTACInfo(context.Background(), "3550867")
	assert.ErrorIs(t, err, client.ErrInvalidIMEINumber)
	assert.ErrorIs(t, err, domain.ErrCannotParseDigits)
}

func TestLookupServiceImpl_CacheHit(t *testing.T) {
	service, _, mockCache := setupService(t, true)
	ctx := context.Background()
	info := samplePhoneInfo(t, sampleIMEI)

	mockCache.On("FindByIMEI", ctx, info.IMEI).Return(info, nil)

	got, err := service.GetIMEIInfo(ctx, sampleIMEI)
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Manufacturer)
}

func TestLookupServiceImpl_CacheMissStoresResult(t *testing.T) {
	service, mockClient, mockCache := setupService(t, true)
	ctx := context.Background()
	info := samplePhoneInfo(t, sampleIMEI)

	mockCache.On("FindByIMEI", ctx, info.IMEI).Return(domain.PhoneInfo{}, repository.ErrPhoneInfoNotFound)
	mockClient.On("CheckIMEI", ctx, client.BasicIMEICheck, info.IMEI).Return(info, nil)
	mockCache.On("Store", ctx, info).Return(nil)

	_, err := service.GetIMEIInfo(ctx, sampleIMEI)
	require.NoError(t, err)
}

func TestLookupServiceImpl_CacheFailuresAreNotFatal(t *testing.T) {
	service, mockClient, mockCache := setupService(t, true)
	ctx := context.Background()
	info := samplePhoneInfo(t, sampleIMEI)
	cacheErr := errors.New("connection refused")

	mockCache.On("FindByIMEI", ctx, info.IMEI).Return(domain.PhoneInfo{}, cacheErr)
	mockClient.On("CheckIMEI", ctx, client.BasicIMEICheck, info.IMEI).Return(info, nil)
	mockCache.On("Store", ctx, info).Return(cacheErr)

	got, err := service.GetIMEIInfo(ctx, sampleIMEI)
	require.NoError(t, err)
	assert.Equal(t, sampleIMEI, got.IMEI)
}

func TestLookupServiceImpl_ClientErrorIsNotCached(t *testing.T) {
	service, mockClient, mockCache := setupService(t, true)
	ctx := context.Background()
	imei, err := domain.ParseImei(sampleIMEI)
	require.NoError(t, err)

	mockCache.On("FindByIMEI", ctx, imei).Return(domain.PhoneInfo{}, repository.ErrPhoneInfoNotFound)
	mockClient.On("CheckIMEI", ctx, client.BasicIMEICheck, imei).Return(domain.PhoneInfo{}, client.ErrMissingAPIKey)

	_, err = service.GetIMEIInfo(ctx, sampleIMEI)
	assert.ErrorIs(t, err, client.ErrMissingAPIKey)
	mockCache.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
}

func TestLookupServiceImpl_DescribeIMEI(t *testing.T) {
	service, _, _ := setupService(t, false)

	details, err := service.DescribeIMEI(sampleIMEI)
	require.NoError(t, err)
	assert.Equal(t, "35", details.ReportingBody)
	assert.Equal(t, "508675", details.ModelIdentifier)
	assert.Equal(t, "35508675", details.TypeAllocationCode)
	assert.Equal(t, "234013", details.SerialNumber)
	assert.Equal(t, uint8(3), details.CheckDigit)
	assert.True(t, details.Valid)

	bad, err := service.DescribeIMEI("355086752340130")
	require.NoError(t, err)
	assert.False(t, bad.Valid)
	assert.Equal(t, uint8(3), bad.ExpectedCheckDigit)

	_, err = service.DescribeIMEI("35508675234013")
	assert.ErrorIs(t, err, client.ErrInvalidIMEINumber)
}

func TestLookupServiceImpl_SynthesizeIMEI(t *testing.T) {
	service, _, _ := setupService(t, false)

	got, err := service.SynthesizeIMEI("12345678")
	require.NoError(t, err)
	assert.Equal(t, "12345678", got.TAC)
	assert.Equal(t, "123456780000002", got.IMEI)

	_, err = service.SynthesizeIMEI("1234567a")
	assert.ErrorIs(t, err, client.ErrInvalidIMEINumber)
}

func TestOfflineHelpers_NeedNoService(t *testing.T) {
	details, err := application.DescribeIMEI("003456789012342")
	require.NoError(t, err)
	assert.True(t, details.Valid)
	assert.Equal(t, "00", details.ReportingBody)

	got, err := application.SynthesizeIMEI("35508675")
	require.NoError(t, err)
	assert.Equal(t, "355086750000002", got.IMEI)

	_, err = application.DescribeIMEI("abc")
	assert.ErrorIs(t, err, client.ErrInvalidIMEINumber)
}
