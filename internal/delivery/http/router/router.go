// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Catalog routes
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/products", r.catalogHandler.ListProducts)
		catalogGroup.GET("/offers", r.catalogHandler.ListOffers)
		catalogGroup.GET("/categories", r.catalogHandler.ListCategories)
		catalogGroup.POST("/refresh", r.catalogHandler.Refresh)
	}

	// Cart routes, keyed by the client-held cart id
	cartGroup := e.Group("/cart/:cartID")
	{
		cartGroup.GET("", r.cartHandler.View)
		cartGroup.GET("/count", r.cartHandler.Count)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:key", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:key", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	// Checkout routes
	checkoutGroup := e.Group("/checkout")
	{
		checkoutGroup.POST("", r.checkoutHandler.Start)
		checkoutGroup.GET("/:id", r.checkoutHandler.Session)
		checkoutGroup.POST("/:id/details", r.checkoutHandler.SubmitDetails)
		checkoutGroup.POST("/:id/proof", r.checkoutHandler.AttachProof)
		checkoutGroup.DELETE("/:id/proof", r.checkoutHandler.RemoveProof)
		checkoutGroup.POST("/:id/payment", r.checkoutHandler.SelectPayment)
		checkoutGroup.POST("/:id/back", r.checkoutHandler.Back)
		checkoutGroup.POST("/:id/submit", r.checkoutHandler.Submit)
		checkoutGroup.GET("/:id/qr", r.checkoutHandler.PaymentQR)
	}
}
