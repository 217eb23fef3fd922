// Package impl contains the concrete application services.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/pricing"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"
)

type catalogService struct {
	gateway         service.CatalogGateway
	refreshInterval time.Duration
	logger          *slog.Logger

	mu       sync.RWMutex
	snapshot *usecase.CatalogSnapshot
}

// NewCatalogService creates the shared annotated catalog store.
func NewCatalogService(gateway service.CatalogGateway, cfg *config.Config, logger *slog.Logger) usecase.CatalogUsecase {
	return &catalogService{
		gateway:         gateway,
		refreshInterval: cfg.Shop.CatalogRefreshInterval,
		logger:          logger,
	}
}

// Snapshot returns the current snapshot, refreshing a stale or missing one.
func (s *catalogService) Snapshot(ctx context.Context) (*usecase.CatalogSnapshot, error) {
	s.mu.RLock()
	snapshot := s.snapshot
	s.mu.RUnlock()

	if snapshot != nil && time.Since(snapshot.FetchedAt) < s.refreshInterval {
		return snapshot, nil
	}

	refreshed, err := s.Refresh(ctx)
	if err != nil {
		// Serve the stale snapshot over failing the caller outright.
		if snapshot != nil {
			s.logger.Warn("Catalog refresh failed, serving stale snapshot",
				slog.Any("error", err),
				slog.Time("fetched_at", snapshot.FetchedAt),
			)

			return snapshot, nil
		}

		return nil, err
	}

	return refreshed, nil
}

// Refresh reloads products, offers and categories concurrently, then
// annotates every product with its effective price.
func (s *catalogService) Refresh(ctx context.Context) (*usecase.CatalogSnapshot, error) {
	snapshot := &usecase.CatalogSnapshot{FetchedAt: time.Now()}

	var waitGroup sync.WaitGroup
	var productsErr, offersErr, categoriesErr error

	waitGroup.Add(3)
	go func() {
		defer waitGroup.Done()
		snapshot.Products, productsErr = s.gateway.FetchProducts(ctx)
	}()
	go func() {
		defer waitGroup.Done()
		snapshot.Offers, offersErr = s.gateway.FetchActiveOffers(ctx)
	}()
	go func() {
		defer waitGroup.Done()
		snapshot.Categories, categoriesErr = s.gateway.FetchCategories(ctx)
	}()
	waitGroup.Wait()

	// Products are the one load-bearing fetch.
	if productsErr != nil {
		return nil, domainerrors.ErrCatalogUnavailable.WrapMessage(productsErr.Error())
	}

	// Pricing degrades gracefully: a broken offer feed must not block
	// catalog rendering, it just means no discounts.
	if offersErr != nil {
		s.logger.Warn("Offer fetch failed, annotating without discounts", slog.Any("error", offersErr))
		snapshot.Offers = nil
	}
	if categoriesErr != nil {
		s.logger.Warn("Category fetch failed", slog.Any("error", categoriesErr))
		snapshot.Categories = nil
	}

	for i := range snapshot.Products {
		snapshot.Products[i].EffectivePrice = pricing.EffectivePrice(&snapshot.Products[i], snapshot.Offers)
	}
	snapshot.IndexProducts()

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info("Catalog snapshot refreshed",
		slog.Int("products", len(snapshot.Products)),
		slog.Int("offers", len(snapshot.Offers)),
	)

	return snapshot, nil
}
