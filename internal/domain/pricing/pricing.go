// Package pricing holds the pure price computations shared by catalog
// annotation and cart totaling.
package pricing

import (
	"math"

	"storefront/internal/domain/entity"
)

// BestDiscountPercent returns the single best discount percentage among
// the offers qualifying for the product. Qualifying offers compete; they
// are never stacked, so two offers of 10% and 15% yield 15%, not 25%.
func BestDiscountPercent(product *entity.Product, offers []entity.Offer) float64 {
	var best float64
	for i := range offers {
		if !offers[i].AppliesTo(product.ID) {
			continue
		}
		if p := offers[i].Percent(); p > best {
			best = p
		}
	}

	return best
}

// EffectivePrice maps a product and the active offer set to the price a
// unit actually sells for. The result is rounded to the nearest whole
// currency unit and never exceeds the base price.
func EffectivePrice(product *entity.Product, offers []entity.Offer) float64 {
	percent := BestDiscountPercent(product, offers)
	price := math.Round(product.BasePrice * (1 - percent/100))
	if price > product.BasePrice {
		return product.BasePrice
	}

	return price
}

// RoundAmount rounds a money amount to two decimal places, the precision
// used for line totals and cart aggregates.
func RoundAmount(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// AdvanceAmount computes the portion of the grand total collected
// upfront: half for cash on delivery, the full total for every method
// that settles by transfer before fulfillment.
func AdvanceAmount(total float64, method entity.PaymentMethod) float64 {
	if method == entity.PaymentCOD {
		return math.Round(total / 2)
	}

	return total
}
