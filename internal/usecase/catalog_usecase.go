package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// CatalogSnapshot is one annotated load of the remote catalog: products
// with effective prices applied, the active offers used to compute them,
// and the browsing categories.
type CatalogSnapshot struct {
	Products   []entity.Product `json:"products"`
	Offers     []entity.Offer   `json:"offers"`
	Categories []string         `json:"categories"`
	FetchedAt  time.Time        `json:"fetchedAt"`

	byID map[string]*entity.Product
}

// IndexProducts builds the by-id lookup. Called once after construction.
func (s *CatalogSnapshot) IndexProducts() {
	s.byID = make(map[string]*entity.Product, len(s.Products))
	for i := range s.Products {
		s.byID[s.Products[i].ID] = &s.Products[i]
	}
}

// Product looks a product up by id. A nil return means the product is
// not in this snapshot.
func (s *CatalogSnapshot) Product(id string) *entity.Product {
	return s.byID[id]
}

// CatalogUsecase holds the shared annotated catalog snapshot.
type CatalogUsecase interface {
	// Snapshot returns the current snapshot, refreshing it first when
	// it is older than the configured interval.
	Snapshot(ctx context.Context) (*CatalogSnapshot, error)

	// Refresh forces a reload from the remote catalog and offer services.
	Refresh(ctx context.Context) (*CatalogSnapshot, error)
}
