package entity

import (
	"strings"
	"time"
)

// CartLine is the sole mutable entity owned by this service: one
// (product, variant selector, quantity) tuple in a guest cart.
// A cart never holds two lines with the same key, and a quantity
// below one means the line does not exist.
type CartLine struct {
	ProductID       string    `json:"productId"`
	VariantSelector string    `json:"variantSelector"`
	Quantity        int       `json:"quantity"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Key returns the composite line key, "{productId}_{variantSelector}".
func (l *CartLine) Key() string {
	return LineKey(l.ProductID, l.VariantSelector)
}

// LineKey builds the composite key used both in memory and in the
// persisted line set. An empty selector collapses to "default".
func LineKey(productID, variantSelector string) string {
	selector := strings.TrimSpace(variantSelector)
	if selector == "" {
		selector = DefaultVariantSelector
	}

	return productID + "_" + selector
}

// SplitLineKey is the inverse of LineKey. The selector itself may contain
// underscores, so only the first one separates the product id.
func SplitLineKey(key string) (productID, variantSelector string, ok bool) {
	productID, variantSelector, ok = strings.Cut(key, "_")
	if !ok || productID == "" || variantSelector == "" {
		return "", "", false
	}

	return productID, variantSelector, true
}

// ProjectedLine is one cart line joined against the catalog snapshot,
// carrying everything the cart view and the order payload need.
type ProjectedLine struct {
	Key       string  `json:"key"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Variant   string  `json:"variant"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"lineTotal"`
	InStock   bool    `json:"inStock"`
}

// ProjectedCart is the renderable, totaled cart view.
type ProjectedCart struct {
	Lines      []ProjectedLine `json:"lines"`
	Subtotal   float64         `json:"subtotal"`
	Shipping   float64         `json:"shipping"`
	GrandTotal float64         `json:"grandTotal"`
}
