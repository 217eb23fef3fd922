// Package repository defines the persistence ports of the domain layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrCartNotFound is returned when a cart has no persisted lines.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists guest cart line sets. Implementations must make
// ReplaceLines atomic: either the full new line set is durable or the
// previous one is, never a partial write.
type CartRepository interface {
	// FindLines loads all lines of a cart. Rows with a non-positive
	// quantity are dropped on read, mirroring the write-side filter.
	FindLines(ctx context.Context, cartID string) ([]entity.CartLine, error)

	// ReplaceLines atomically replaces the cart's full line set.
	// An empty slice erases the cart.
	ReplaceLines(ctx context.Context, cartID string, lines []entity.CartLine) error
}

// TransactionManager runs a unit of work inside a single database
// transaction so read-modify-write cart mutations cannot interleave.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}

// RepositoryFactory creates repository instances bound to one transaction.
type RepositoryFactory interface {
	NewCartRepository() CartRepository
}
