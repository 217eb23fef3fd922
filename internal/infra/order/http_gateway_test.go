package order

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.Handler) service.OrderGateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = server.URL
	cfg.Upstream.Timeout = 5 * time.Second

	return NewHTTPGateway(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateOrder_Success(t *testing.T) {
	var received service.OrderRequest
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/order/place-manual", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "orderId": "ord-42"})
	}))

	orderID, err := gateway.CreateOrder(context.Background(), &service.OrderRequest{
		Name:          "Ayesha",
		PaymentMethod: entity.PaymentBank,
		Items: []service.OrderItem{
			{ProductID: "p1", Variant: "red", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		Subtotal: 1000,
		Shipping: 250,
		Total:    1250,
	})

	require.NoError(t, err)
	assert.Equal(t, "ord-42", orderID)
	assert.Equal(t, "Ayesha", received.Name)
	assert.InDelta(t, 1000, received.Items[0].Total, 0.0001)
	assert.InDelta(t, 1000, received.Subtotal, 0.0001)
}

func TestCreateOrder_UpstreamMessageSurfacedVerbatim(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Product p1 is out of stock"})
	}))

	_, err := gateway.CreateOrder(context.Background(), &service.OrderRequest{})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ORDER_CREATION_FAILED", appErr.ErrorCode())
	assert.Equal(t, "Product p1 is out of stock", appErr.Message())
}

func TestCreateOrder_GenericFallbackWithoutUpstreamMessage(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := gateway.CreateOrder(context.Background(), &service.OrderRequest{})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Server error while placing order", appErr.Message())
}

func TestUploadProof_SendsMultipartFields(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/order/upload-proof", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "ord-42", r.FormValue("orderId"))
		assert.Equal(t, "TXN123", r.FormValue("transactionRef"))
		assert.Equal(t, "1234", r.FormValue("senderLast4"))

		file, header, err := r.FormFile("proof")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "receipt.png", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake-png-bytes", string(content))

		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	err := gateway.UploadProof(context.Background(), &service.ProofUpload{
		OrderID:        "ord-42",
		FileName:       "receipt.png",
		ContentType:    "image/png",
		TransactionRef: "TXN123",
		SenderLast4:    "1234",
		Content:        strings.NewReader("fake-png-bytes"),
	})

	require.NoError(t, err)
}

func TestDecrementStock_FailureReturnsError(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/product/decrement-stock", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "insufficient stock"})
	}))

	err := gateway.DecrementStock(context.Background(), &service.StockDecrement{
		ProductID: "p1",
		Color:     "red",
		Quantity:  2,
	})

	require.Error(t, err)
}

func TestDecrementStock_Success(t *testing.T) {
	var received service.StockDecrement
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	err := gateway.DecrementStock(context.Background(), &service.StockDecrement{
		ProductID: "p1",
		Color:     "walnut",
		Quantity:  3,
	})

	require.NoError(t, err)
	assert.Equal(t, "p1", received.ProductID)
	assert.Equal(t, "walnut", received.Color)
	assert.Equal(t, 3, received.Quantity)
}
