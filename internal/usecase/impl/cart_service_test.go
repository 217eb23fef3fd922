package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCartService(t *testing.T, products ...entity.Product) (*cartService, *memCartStore) {
	t.Helper()

	store := newMemCartStore()
	svc := NewCartService(store, newStubCatalog(products...), testShopConfig(), newDiscardLogger())

	return svc.(*cartService), store
}

func TestCartService_Add_MergesSameLine(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, "red"))
	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 3, "red"))

	count, err := svc.Count(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCartService_Add_DistinctVariantsStaySeparate(t *testing.T) {
	t.Parallel()

	svc, store := createTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 1, "red"))
	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 1, "blue"))
	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 1, ""))

	lines, err := store.FindLines(ctx, "cart-1")
	require.NoError(t, err)
	assert.Len(t, lines, 3)
}

func TestCartService_Add_RejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)
	ctx := context.Background()

	err := svc.Add(ctx, "cart-1", "p1", 0, "")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)

	err = svc.Add(ctx, "cart-1", "p1", -2, "")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)

	count, err := svc.Count(ctx, "cart-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartService_UpdateQuantity_ZeroLeavesCartUnchanged(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, "red"))

	err := svc.UpdateQuantity(ctx, "cart-1", "p1_red", 0)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)

	count, err := svc.Count(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCartService_UpdateQuantity_SetsExactValue(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, "red"))
	require.NoError(t, svc.UpdateQuantity(ctx, "cart-1", "p1_red", 7))

	count, err := svc.Count(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)

	err := svc.UpdateQuantity(context.Background(), "cart-1", "p9_red", 1)
	assert.ErrorIs(t, err, domainerrors.ErrCartLineNotFound)
}

func TestCartService_Remove_AbsentKeyIsNoop(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, "red"))
	require.NoError(t, svc.Remove(ctx, "cart-1", "p9_blue"))

	count, err := svc.Count(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCartService_Remove_DeletesLine(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, "red"))
	require.NoError(t, svc.Add(ctx, "cart-1", "p2", 1, ""))
	require.NoError(t, svc.Remove(ctx, "cart-1", "p1_red"))

	count, err := svc.Count(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCartService_Clear(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, "red"))
	require.NoError(t, svc.Clear(ctx, "cart-1"))

	count, err := svc.Count(ctx, "cart-1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCartService_View_ShippingChargedBelowThreshold(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t, entity.Product{
		ID: "p1", Name: "Lamp", BasePrice: 2999, Stock: 5,
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 1, ""))

	cart, err := svc.View(ctx, "cart-1")
	require.NoError(t, err)
	assert.InDelta(t, 2999, cart.Subtotal, 0.001)
	assert.InDelta(t, 250, cart.Shipping, 0.001)
	assert.InDelta(t, 3249, cart.GrandTotal, 0.001)
}

func TestCartService_View_FreeShippingAtThreshold(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t, entity.Product{
		ID: "p1", Name: "Rug", BasePrice: 3000, Stock: 5,
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 1, ""))

	cart, err := svc.View(ctx, "cart-1")
	require.NoError(t, err)
	assert.InDelta(t, 3000, cart.Subtotal, 0.001)
	assert.Zero(t, cart.Shipping)
	assert.InDelta(t, 3000, cart.GrandTotal, 0.001)
}

func TestCartService_View_EmptyCartCostsNothing(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t)

	cart, err := svc.View(context.Background(), "cart-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.Zero(t, cart.Subtotal)
	assert.Zero(t, cart.Shipping)
	assert.Zero(t, cart.GrandTotal)
}

func TestCartService_View_DropsLinesMissingFromCatalog(t *testing.T) {
	t.Parallel()

	svc, store := createTestCartService(t, entity.Product{
		ID: "p1", Name: "Lamp", BasePrice: 500, Stock: 5,
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 1, ""))
	require.NoError(t, svc.Add(ctx, "cart-1", "gone", 1, ""))

	cart, err := svc.View(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p1", cart.Lines[0].ProductID)

	// The stored cart still holds the dangling line.
	lines, err := store.FindLines(ctx, "cart-1")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestCartService_View_VariantProjection(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t, entity.Product{
		ID:        "p1",
		Name:      "Cushion",
		Image:     "cushion.jpg",
		BasePrice: 400,
		Variants: []entity.Variant{
			{ID: "v1", Color: "Red", Images: []string{"red.jpg"}, Stock: 0},
			{ID: "v2", Color: "Blue", Images: []string{"blue.jpg"}, Stock: 3},
		},
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, "Red"))
	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 1, "v2"))

	cart, err := svc.View(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)

	red := cart.Lines[0]
	assert.Equal(t, "Red", red.Variant)
	assert.Equal(t, "red.jpg", red.Image)
	assert.False(t, red.InStock)
	assert.InDelta(t, 800, red.LineTotal, 0.001)

	blue := cart.Lines[1]
	assert.Equal(t, "Blue", blue.Variant)
	assert.Equal(t, "blue.jpg", blue.Image)
	assert.True(t, blue.InStock)
}

func TestCartService_View_UsesEffectivePrice(t *testing.T) {
	t.Parallel()

	svc, _ := createTestCartService(t, entity.Product{
		ID: "p1", Name: "Vase", BasePrice: 1000, EffectivePrice: 850, Stock: 2,
	})
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "cart-1", "p1", 2, ""))

	cart, err := svc.View(ctx, "cart-1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.InDelta(t, 850, cart.Lines[0].UnitPrice, 0.001)
	assert.InDelta(t, 1700, cart.Lines[0].LineTotal, 0.001)
}
