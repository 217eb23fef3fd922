package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/pricing"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"
)

type cartService struct {
	txManager repository.TransactionManager
	catalog   usecase.CatalogUsecase
	shop      config.ShopConfig
	logger    *slog.Logger
}

// NewCartService creates the guest cart application service.
func NewCartService(
	txManager repository.TransactionManager,
	catalog usecase.CatalogUsecase,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.CartUsecase {
	return &cartService{
		txManager: txManager,
		catalog:   catalog,
		shop:      cfg.Shop,
		logger:    logger,
	}
}

// Add merges the quantity into an existing line or appends a new one.
func (s *cartService) Add(ctx context.Context, cartID, productID string, quantity int, variantSelector string) error {
	if quantity < 1 {
		return domainerrors.ErrInvalidQuantity
	}

	key := entity.LineKey(productID, variantSelector)

	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		lines, err := cartRepo.FindLines(ctx, cartID)
		if err != nil {
			return err
		}

		merged := false
		for i := range lines {
			if lines[i].Key() == key {
				lines[i].Quantity += quantity
				lines[i].UpdatedAt = time.Now()
				merged = true

				break
			}
		}
		if !merged {
			lines = append(lines, entity.CartLine{
				ProductID:       productID,
				VariantSelector: normalizedSelector(variantSelector),
				Quantity:        quantity,
				UpdatedAt:       time.Now(),
			})
		}

		return cartRepo.ReplaceLines(ctx, cartID, lines)
	})
}

// UpdateQuantity sets a line's quantity to an exact positive value.
// Values below one are rejected and the cart is left untouched.
func (s *cartService) UpdateQuantity(ctx context.Context, cartID, lineKey string, newQuantity int) error {
	if newQuantity < 1 {
		return domainerrors.ErrInvalidQuantity
	}

	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		lines, err := cartRepo.FindLines(ctx, cartID)
		if err != nil {
			return err
		}

		for i := range lines {
			if lines[i].Key() == lineKey {
				lines[i].Quantity = newQuantity
				lines[i].UpdatedAt = time.Now()

				return cartRepo.ReplaceLines(ctx, cartID, lines)
			}
		}

		return domainerrors.ErrCartLineNotFound
	})
}

// Remove deletes a line by key. Removing an absent key succeeds without
// touching the store.
func (s *cartService) Remove(ctx context.Context, cartID, lineKey string) error {
	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.NewCartRepository()

		lines, err := cartRepo.FindLines(ctx, cartID)
		if err != nil {
			return err
		}

		kept := lines[:0]
		for i := range lines {
			if lines[i].Key() != lineKey {
				kept = append(kept, lines[i])
			}
		}
		if len(kept) == len(lines) {
			return nil
		}

		return cartRepo.ReplaceLines(ctx, cartID, kept)
	})
}

// Clear erases the cart's persisted state.
func (s *cartService) Clear(ctx context.Context, cartID string) error {
	return s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewCartRepository().ReplaceLines(ctx, cartID, nil)
	})
}

// Count sums the line quantities for badge display.
func (s *cartService) Count(ctx context.Context, cartID string) (int, error) {
	var count int
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		lines, err := repoFactory.NewCartRepository().FindLines(ctx, cartID)
		if err != nil {
			return err
		}

		for i := range lines {
			count += lines[i].Quantity
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// View joins the cart lines against the catalog snapshot and totals the
// result. Lines whose product left the catalog are dropped from the view
// only; the stored cart keeps them in case the product comes back.
func (s *cartService) View(ctx context.Context, cartID string) (*entity.ProjectedCart, error) {
	var lines []entity.CartLine
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var findErr error
		lines, findErr = repoFactory.NewCartRepository().FindLines(ctx, cartID)

		return findErr
	})
	if err != nil {
		return nil, err
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return s.project(cartID, lines, snapshot), nil
}

func (s *cartService) project(cartID string, lines []entity.CartLine, snapshot *usecase.CatalogSnapshot) *entity.ProjectedCart {
	cart := &entity.ProjectedCart{Lines: make([]entity.ProjectedLine, 0, len(lines))}

	for i := range lines {
		product := snapshot.Product(lines[i].ProductID)
		if product == nil {
			s.logger.Debug("Cart line skipped, product missing from snapshot",
				slog.String("cart_id", cartID),
				slog.String("product_id", lines[i].ProductID),
			)

			continue
		}

		cart.Lines = append(cart.Lines, projectLine(&lines[i], product))
	}

	for i := range cart.Lines {
		cart.Subtotal += cart.Lines[i].LineTotal
	}
	cart.Subtotal = pricing.RoundAmount(cart.Subtotal)
	cart.Shipping = s.shippingFee(cart.Subtotal)
	cart.GrandTotal = pricing.RoundAmount(cart.Subtotal + cart.Shipping)

	return cart
}

func projectLine(line *entity.CartLine, product *entity.Product) entity.ProjectedLine {
	projected := entity.ProjectedLine{
		Key:       line.Key(),
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Variant:   "",
		UnitPrice: product.UnitPrice(),
		Quantity:  line.Quantity,
		InStock:   product.InStock(),
	}

	if variant := product.ResolveVariant(line.VariantSelector); variant != nil {
		projected.Variant = variant.Color
		projected.InStock = variant.Stock > 0
		if len(variant.Images) > 0 {
			projected.Image = variant.Images[0]
		}
	}

	projected.LineTotal = pricing.RoundAmount(projected.UnitPrice * float64(line.Quantity))

	return projected
}

// shippingFee waives the flat fee at and above the free-shipping
// threshold. An empty cart ships nothing and costs nothing.
func (s *cartService) shippingFee(subtotal float64) float64 {
	if subtotal <= 0 || subtotal >= s.shop.FreeShippingThreshold {
		return 0
	}

	return s.shop.FlatShippingFee
}

func normalizedSelector(variantSelector string) string {
	selector := strings.TrimSpace(variantSelector)
	if selector == "" {
		return entity.DefaultVariantSelector
	}

	return selector
}
