package entity

// DiscountRule is one conditional percentage inside an offer. The condition
// is opaque to this service; pricing takes the best rule regardless.
type DiscountRule struct {
	DiscountPercentage float64 `json:"discountPercentage"`
	Condition          string  `json:"condition"`
}

// Offer is a discount rule set published by the remote offer service.
// Offers are refreshed with the catalog and never mutated here.
type Offer struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	DiscountPercentage float64        `json:"discountPercentage"`
	DiscountRules      []DiscountRule `json:"discountRules"`
	// ApplicableProducts limits the offer to a set of product ids.
	// A nil slice means the offer applies to every product.
	ApplicableProducts []string `json:"applicableProducts"`
	Active             bool     `json:"active"`
}

// AppliesTo reports whether the offer qualifies for the given product id.
func (o *Offer) AppliesTo(productID string) bool {
	if !o.Active {
		return false
	}
	if o.ApplicableProducts == nil {
		return true
	}

	for _, id := range o.ApplicableProducts {
		if id == productID {
			return true
		}
	}

	return false
}

// Percent returns the offer's discount percentage. When the offer carries
// discount rules the maximum rule percentage wins, not the first match.
// Malformed values degrade to zero so pricing never blocks rendering.
func (o *Offer) Percent() float64 {
	percent := sanitizePercent(o.DiscountPercentage)
	for _, rule := range o.DiscountRules {
		if p := sanitizePercent(rule.DiscountPercentage); p > percent {
			percent = p
		}
	}

	return percent
}

func sanitizePercent(p float64) float64 {
	// NaN fails both comparisons, so this also filters NaN.
	if p >= 0 && p <= 100 {
		return p
	}

	return 0
}
