package pricing

import (
	"math"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func testProduct(basePrice float64) *entity.Product {
	return &entity.Product{
		ID:        "p1",
		Name:      "Walnut Tray",
		BasePrice: basePrice,
	}
}

func TestEffectivePrice_NoOffers(t *testing.T) {
	product := testProduct(1500)

	assert.InDelta(t, 1500, EffectivePrice(product, nil), 0.0001)
}

func TestEffectivePrice_NoQualifyingOffer(t *testing.T) {
	product := testProduct(1500)
	offers := []entity.Offer{
		{ID: "o1", Active: true, DiscountPercentage: 20, ApplicableProducts: []string{"p2"}},
		{ID: "o2", Active: false, DiscountPercentage: 50},
	}

	assert.InDelta(t, 1500, EffectivePrice(product, offers), 0.0001)
}

func TestEffectivePrice_SingleBestOfferWins(t *testing.T) {
	product := testProduct(1000)
	offers := []entity.Offer{
		{ID: "o1", Active: true, DiscountPercentage: 10},
		{ID: "o2", Active: true, DiscountPercentage: 15, ApplicableProducts: []string{"p1"}},
	}

	// 10% and 15% compete, they do not sum to 25%.
	assert.InDelta(t, 850, EffectivePrice(product, offers), 0.0001)
}

func TestEffectivePrice_RuleBasedOfferTakesMaxRule(t *testing.T) {
	product := testProduct(2000)
	offers := []entity.Offer{
		{
			ID:     "o1",
			Active: true,
			DiscountRules: []entity.DiscountRule{
				{DiscountPercentage: 5, Condition: "first-order"},
				{DiscountPercentage: 25, Condition: "clearance"},
				{DiscountPercentage: 10, Condition: "weekend"},
			},
		},
	}

	assert.InDelta(t, 1500, EffectivePrice(product, offers), 0.0001)
}

func TestEffectivePrice_RoundsToWholeUnit(t *testing.T) {
	product := testProduct(999)
	offers := []entity.Offer{
		{ID: "o1", Active: true, DiscountPercentage: 15},
	}

	// 999 * 0.85 = 849.15 -> 849
	assert.InDelta(t, 849, EffectivePrice(product, offers), 0.0001)
}

func TestEffectivePrice_MalformedPercentDegradesToZero(t *testing.T) {
	product := testProduct(1200)
	offers := []entity.Offer{
		{ID: "o1", Active: true, DiscountPercentage: math.NaN()},
		{ID: "o2", Active: true, DiscountPercentage: -30},
		{ID: "o3", Active: true, DiscountPercentage: 250},
	}

	assert.InDelta(t, 1200, EffectivePrice(product, offers), 0.0001)
}

func TestEffectivePrice_NeverExceedsBasePrice(t *testing.T) {
	products := []*entity.Product{testProduct(1), testProduct(49), testProduct(3200)}
	offers := []entity.Offer{
		{ID: "o1", Active: true, DiscountPercentage: 0},
		{ID: "o2", Active: true, DiscountPercentage: 33},
	}

	for _, product := range products {
		price := EffectivePrice(product, offers)
		assert.LessOrEqual(t, price, product.BasePrice)
	}
}

func TestAdvanceAmount(t *testing.T) {
	assert.InDelta(t, 1000, AdvanceAmount(2000, entity.PaymentCOD), 0.0001)
	assert.InDelta(t, 2000, AdvanceAmount(2000, entity.PaymentBank), 0.0001)
	assert.InDelta(t, 2000, AdvanceAmount(2000, entity.PaymentJazzCash), 0.0001)
	// Odd totals round to the nearest whole unit.
	assert.InDelta(t, 1001, AdvanceAmount(2001, entity.PaymentCOD), 0.0001)
}

func TestRoundAmount(t *testing.T) {
	assert.InDelta(t, 849.15, RoundAmount(849.14999999), 0.0001)
	assert.InDelta(t, 0, RoundAmount(0), 0.0001)
}
