// Package service defines the ports for external collaborators: the
// remote catalog and order services, proof storage, event publishing
// and QR rendering.
package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogGateway reads the remote catalog and offer services. Both are
// fetched at catalog-load time; no pagination contract is assumed.
type CatalogGateway interface {
	// FetchProducts retrieves the full product list.
	FetchProducts(ctx context.Context) ([]entity.Product, error)

	// FetchActiveOffers retrieves the currently active offer set.
	FetchActiveOffers(ctx context.Context) ([]entity.Offer, error)

	// FetchCategories retrieves the category names used for browsing.
	FetchCategories(ctx context.Context) ([]string, error)
}
