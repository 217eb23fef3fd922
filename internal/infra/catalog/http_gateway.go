// Package catalog implements the CatalogGateway against the remote
// catalog service's HTTP API.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

type httpGateway struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPGateway creates a CatalogGateway talking to the configured
// upstream base URL.
func NewHTTPGateway(cfg *config.Config, logger *slog.Logger) service.CatalogGateway {
	timeout := cfg.Upstream.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &httpGateway{
		baseURL: cfg.Upstream.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// productDTO mirrors the catalog service's product document.
type productDTO struct {
	ID       string       `json:"_id"`
	Name     string       `json:"name"`
	Image    string       `json:"image"`
	Category string       `json:"category"`
	Price    float64      `json:"price"`
	Stock    int          `json:"stock"`
	Variants []variantDTO `json:"variants"`
}

type variantDTO struct {
	ID     string   `json:"_id"`
	Color  string   `json:"color"`
	Images []string `json:"images"`
	Stock  int      `json:"stock"`
}

type offerDTO struct {
	ID                 string  `json:"_id"`
	Title              string  `json:"title"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DiscountRules      []struct {
		DiscountPercentage float64 `json:"discountPercentage"`
		Condition          string  `json:"condition"`
	} `json:"discountRules"`
	ApplicableProducts []string `json:"applicableProducts"`
	Active             bool     `json:"active"`
}

// FetchProducts retrieves the full product list.
func (g *httpGateway) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	var payload struct {
		Products []productDTO `json:"products"`
	}
	if err := g.getJSON(ctx, "/api/product/list", &payload); err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}

	products := make([]entity.Product, 0, len(payload.Products))
	for _, dto := range payload.Products {
		products = append(products, toProductDomain(&dto))
	}

	return products, nil
}

// FetchActiveOffers retrieves the currently active offer set.
func (g *httpGateway) FetchActiveOffers(ctx context.Context) ([]entity.Offer, error) {
	var payload struct {
		Offers []offerDTO `json:"offers"`
	}
	if err := g.getJSON(ctx, "/api/offer/active", &payload); err != nil {
		return nil, errors.Wrap(err, "fetch active offers")
	}

	offers := make([]entity.Offer, 0, len(payload.Offers))
	for _, dto := range payload.Offers {
		offers = append(offers, toOfferDomain(&dto))
	}

	return offers, nil
}

// FetchCategories retrieves the category names used for browsing.
func (g *httpGateway) FetchCategories(ctx context.Context) ([]string, error) {
	var payload struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	if err := g.getJSON(ctx, "/api/category/list", &payload); err != nil {
		return nil, errors.Wrap(err, "fetch categories")
	}

	names := make([]string, 0, len(payload.Categories))
	for _, category := range payload.Categories {
		names = append(names, category.Name)
	}

	return names, nil
}

func (g *httpGateway) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("catalog service returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response body")
	}

	return nil
}

func toProductDomain(dto *productDTO) entity.Product {
	variants := make([]entity.Variant, 0, len(dto.Variants))
	for _, v := range dto.Variants {
		variants = append(variants, entity.Variant{
			ID:     v.ID,
			Color:  v.Color,
			Images: v.Images,
			Stock:  v.Stock,
		})
	}

	return entity.Product{
		ID:        dto.ID,
		Name:      dto.Name,
		Image:     dto.Image,
		Category:  dto.Category,
		BasePrice: dto.Price,
		Variants:  variants,
		Stock:     dto.Stock,
	}
}

func toOfferDomain(dto *offerDTO) entity.Offer {
	rules := make([]entity.DiscountRule, 0, len(dto.DiscountRules))
	for _, rule := range dto.DiscountRules {
		rules = append(rules, entity.DiscountRule{
			DiscountPercentage: rule.DiscountPercentage,
			Condition:          rule.Condition,
		})
	}

	return entity.Offer{
		ID:                 dto.ID,
		Title:              dto.Title,
		DiscountPercentage: dto.DiscountPercentage,
		DiscountRules:      rules,
		ApplicableProducts: dto.ApplicableProducts,
		Active:             dto.Active,
	}
}
