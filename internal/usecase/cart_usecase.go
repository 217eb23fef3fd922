// Package usecase defines the application-layer interfaces.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartUsecase owns the authoritative guest cart state. All mutations are
// atomic read-modify-persist steps; the projected view joins the lines
// against the current catalog snapshot.
type CartUsecase interface {
	// Add increments an existing line's quantity or creates a new line.
	// Quantity must be a positive integer.
	Add(ctx context.Context, cartID, productID string, quantity int, variantSelector string) error

	// UpdateQuantity sets a line's quantity. A quantity below one is
	// rejected and leaves the cart unchanged; removal is explicit.
	UpdateQuantity(ctx context.Context, cartID, lineKey string, newQuantity int) error

	// Remove deletes a line. Removing an absent key is a no-op.
	Remove(ctx context.Context, cartID, lineKey string) error

	// Clear empties the cart and erases its persisted state.
	Clear(ctx context.Context, cartID string) error

	// Count returns the sum of all line quantities, for badge display.
	Count(ctx context.Context, cartID string) (int, error)

	// View projects the cart against the current catalog snapshot into
	// a renderable, totaled view. Lines whose product is missing from
	// the snapshot are dropped from the view but kept in the store.
	View(ctx context.Context, cartID string) (*entity.ProjectedCart, error)
}
