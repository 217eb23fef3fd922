package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestCatalogService(t *testing.T) (usecase.CatalogUsecase, *mockCatalogGateway) {
	t.Helper()

	gateway := new(mockCatalogGateway)

	return NewCatalogService(gateway, testShopConfig(), newDiscardLogger()), gateway
}

func TestCatalogService_Refresh_AnnotatesBestDiscountOnly(t *testing.T) {
	t.Parallel()

	svc, gateway := createTestCatalogService(t)
	gateway.On("FetchProducts", mock.Anything).Return([]entity.Product{
		{ID: "p1", Name: "Lamp", BasePrice: 1000, Stock: 3},
		{ID: "p2", Name: "Rug", BasePrice: 2000, Stock: 1},
	}, nil)
	gateway.On("FetchActiveOffers", mock.Anything).Return([]entity.Offer{
		{ID: "o1", Active: true, DiscountPercentage: 10},
		{ID: "o2", Active: true, DiscountPercentage: 15},
		{ID: "o3", Active: true, DiscountPercentage: 25, ApplicableProducts: []string{"p2"}},
	}, nil)
	gateway.On("FetchCategories", mock.Anything).Return([]string{"Decor"}, nil)

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	// Offers compete, they do not stack: 15% beats 10%+15%.
	assert.InDelta(t, 850, snapshot.Product("p1").EffectivePrice, 0.001)
	assert.InDelta(t, 1500, snapshot.Product("p2").EffectivePrice, 0.001)
	assert.Equal(t, []string{"Decor"}, snapshot.Categories)
}

func TestCatalogService_Refresh_OfferFailureDegradesToBasePrices(t *testing.T) {
	t.Parallel()

	svc, gateway := createTestCatalogService(t)
	gateway.On("FetchProducts", mock.Anything).Return([]entity.Product{
		{ID: "p1", Name: "Lamp", BasePrice: 1000, Stock: 3},
	}, nil)
	gateway.On("FetchActiveOffers", mock.Anything).Return(nil, errors.New("offer service down"))
	gateway.On("FetchCategories", mock.Anything).Return([]string{"Decor"}, nil)

	snapshot, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000, snapshot.Product("p1").EffectivePrice, 0.001)
	assert.Empty(t, snapshot.Offers)
}

func TestCatalogService_Refresh_ProductFailureIsFatal(t *testing.T) {
	t.Parallel()

	svc, gateway := createTestCatalogService(t)
	gateway.On("FetchProducts", mock.Anything).Return(nil, errors.New("catalog down"))
	gateway.On("FetchActiveOffers", mock.Anything).Return([]entity.Offer{}, nil)
	gateway.On("FetchCategories", mock.Anything).Return([]string{}, nil)

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrCatalogUnavailable)
}

func TestCatalogService_Snapshot_ServedFromCacheWithinInterval(t *testing.T) {
	t.Parallel()

	svc, gateway := createTestCatalogService(t)
	gateway.On("FetchProducts", mock.Anything).Return([]entity.Product{
		{ID: "p1", Name: "Lamp", BasePrice: 1000, Stock: 3},
	}, nil).Once()
	gateway.On("FetchActiveOffers", mock.Anything).Return([]entity.Offer{}, nil).Once()
	gateway.On("FetchCategories", mock.Anything).Return([]string{}, nil).Once()

	ctx := context.Background()
	first, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	second, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	gateway.AssertExpectations(t)
}

func TestCatalogService_Snapshot_ServesStaleOnRefreshFailure(t *testing.T) {
	t.Parallel()

	gateway := new(mockCatalogGateway)
	cfg := testShopConfig()
	cfg.Shop.CatalogRefreshInterval = 0 // every Snapshot call refreshes
	svc := NewCatalogService(gateway, cfg, newDiscardLogger())

	gateway.On("FetchProducts", mock.Anything).Return([]entity.Product{
		{ID: "p1", Name: "Lamp", BasePrice: 1000, Stock: 3},
	}, nil).Once()
	gateway.On("FetchActiveOffers", mock.Anything).Return([]entity.Offer{}, nil).Once()
	gateway.On("FetchCategories", mock.Anything).Return([]string{}, nil).Once()

	ctx := context.Background()
	first, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	gateway.On("FetchProducts", mock.Anything).Return(nil, errors.New("catalog down"))
	gateway.On("FetchActiveOffers", mock.Anything).Return([]entity.Offer{}, nil)
	gateway.On("FetchCategories", mock.Anything).Return([]string{}, nil)

	second, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
