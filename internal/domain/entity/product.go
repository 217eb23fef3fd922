// Package entity contains the core business objects of the project.
package entity

import "strings"

// DefaultVariantSelector is used when a cart line targets a product
// without naming a concrete variant.
const DefaultVariantSelector = "default"

// Variant is a purchasable sub-option of a product, typically a color,
// carrying its own stock and images.
type Variant struct {
	ID     string   `json:"id"`
	Color  string   `json:"color"`
	Images []string `json:"images"`
	Stock  int      `json:"stock"`
}

// Product represents a catalog product as served by the remote catalog.
// It is read-only to this service; EffectivePrice is derived locally from
// the active offer set at catalog-load time.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Image          string    `json:"image"`
	Category       string    `json:"category"`
	BasePrice      float64   `json:"basePrice"`
	EffectivePrice float64   `json:"effectivePrice"`
	Variants       []Variant `json:"variants"`
	Stock          int       `json:"stock"`
}

// InStock reports whether the product can be purchased. A product with
// variants is in stock iff at least one variant has stock, otherwise the
// product's own stock counts.
func (p *Product) InStock() bool {
	if len(p.Variants) == 0 {
		return p.Stock > 0
	}

	for i := range p.Variants {
		if p.Variants[i].Stock > 0 {
			return true
		}
	}

	return false
}

// ResolveVariant finds the variant addressed by a cart line's selector.
// Resolution precedence: variant id first, then normalized color match.
// A nil return means the line targets the bare product.
func (p *Product) ResolveVariant(selector string) *Variant {
	if selector == "" || selector == DefaultVariantSelector {
		return nil
	}

	for i := range p.Variants {
		if p.Variants[i].ID == selector {
			return &p.Variants[i]
		}
	}

	normalized := NormalizeColor(selector)
	for i := range p.Variants {
		if NormalizeColor(p.Variants[i].Color) == normalized {
			return &p.Variants[i]
		}
	}

	return nil
}

// UnitPrice returns the price a single unit sells for: the effective price
// when an offer actually lowered it, otherwise the base price.
func (p *Product) UnitPrice() float64 {
	if p.EffectivePrice > 0 && p.EffectivePrice < p.BasePrice {
		return p.EffectivePrice
	}

	return p.BasePrice
}

// NormalizeColor lowercases and trims a color label so user-entered and
// catalog-provided values compare equal.
func NormalizeColor(color string) string {
	return strings.ToLower(strings.TrimSpace(color))
}
