package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves the annotated catalog snapshot.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ListProducts returns all products with effective prices applied.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	snapshot, err := h.catalogUC.Snapshot(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot.Products, "Products retrieved successfully")
}

// ListOffers returns the active offer set of the current snapshot.
func (h *CatalogHandler) ListOffers(c echo.Context) error {
	snapshot, err := h.catalogUC.Snapshot(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot.Offers, "Offers retrieved successfully")
}

// ListCategories returns the browsing categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	snapshot, err := h.catalogUC.Snapshot(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot.Categories, "Categories retrieved successfully")
}

// Refresh forces a catalog reload.
func (h *CatalogHandler) Refresh(c echo.Context) error {
	snapshot, err := h.catalogUC.Refresh(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"products":  len(snapshot.Products),
		"offers":    len(snapshot.Offers),
		"fetchedAt": snapshot.FetchedAt,
	}, "Catalog refreshed successfully")
}

// handleAppError handles application errors
func (h *CatalogHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
