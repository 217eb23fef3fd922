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

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler exposes the guest cart operations.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

// AddItemRequest represents the request body for adding a cart line
type AddItemRequest struct {
	ProductID       string `json:"productId" validate:"required"`
	Quantity        int    `json:"quantity"`
	VariantSelector string `json:"variantSelector"`
}

// UpdateItemRequest represents the request body for setting a line quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// View returns the projected, totaled cart.
func (h *CartHandler) View(c echo.Context) error {
	cart, err := h.cartUC.View(c.Request().Context(), c.Param("cartID"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cart, "Cart retrieved successfully")
}

// Count returns the badge count.
func (h *CartHandler) Count(c echo.Context) error {
	count, err := h.cartUC.Count(c.Request().Context(), c.Param("cartID"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"count": count}, "Cart count retrieved successfully")
}

// AddItem adds quantity to a line, creating it when absent.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	err := h.cartUC.Add(c.Request().Context(), c.Param("cartID"), req.ProductID, req.Quantity, req.VariantSelector)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Item added to cart")
}

// UpdateItem sets a line's quantity.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}

	err := h.cartUC.UpdateQuantity(c.Request().Context(), c.Param("cartID"), c.Param("key"), req.Quantity)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Item quantity updated")
}

// RemoveItem deletes a line.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	err := h.cartUC.Remove(c.Request().Context(), c.Param("cartID"), c.Param("key"))
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Item removed from cart")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	if err := h.cartUC.Clear(c.Request().Context(), c.Param("cartID")); err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Cart cleared")
}

// handleAppError handles application errors
func (h *CartHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
