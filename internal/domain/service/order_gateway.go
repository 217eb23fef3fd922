package service

import (
	"context"
	"io"

	"storefront/internal/domain/entity"
)

// OrderItem is one resolved cart line inside the order-creation payload.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Variant   string  `json:"variant"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Total     float64 `json:"total"`
}

// OrderRequest is the payload posted to the remote order service.
type OrderRequest struct {
	Name            string               `json:"name"`
	Phone           string               `json:"phone"`
	Email           string               `json:"email"`
	Address         string               `json:"address"`
	City            string               `json:"city"`
	State           string               `json:"state"`
	Note            string               `json:"note"`
	PaymentMethod   entity.PaymentMethod `json:"paymentMethod"`
	TransactionRef  string               `json:"transactionRef"`
	SenderLast4     string               `json:"senderLast4"`
	Items           []OrderItem          `json:"items"`
	Subtotal        float64              `json:"subtotal"`
	Shipping        float64              `json:"shipping"`
	Total           float64              `json:"total"`
	AdvanceRequired float64              `json:"advanceRequired"`
}

// ProofUpload carries a proof-of-payment file plus verification metadata
// for the multipart upload that follows order creation.
type ProofUpload struct {
	OrderID        string
	FileName       string
	ContentType    string
	TransactionRef string
	SenderLast4    string
	Content        io.Reader
}

// StockDecrement asks the inventory side to reduce stock for one line.
// The interface is not idempotent; callers must not retry.
type StockDecrement struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// OrderGateway is the boundary to the remote order service. CreateOrder
// must succeed before UploadProof or DecrementStock may be called; the
// latter two are best-effort.
type OrderGateway interface {
	// CreateOrder posts the order payload. It returns the created order
	// id, or an error carrying the upstream message when one was given.
	CreateOrder(ctx context.Context, req *OrderRequest) (string, error)

	// UploadProof uploads a proof-of-payment file tagged with the order id.
	UploadProof(ctx context.Context, upload *ProofUpload) error

	// DecrementStock reduces stock for one resolved line.
	DecrementStock(ctx context.Context, dec *StockDecrement) error
}
