package service

import "context"

// OrderPlacedEvent is emitted after the order service accepted an order.
// Consumers reconcile bookkeeping (proof follow-up, stock audits); the
// customer-facing flow never waits on it.
type OrderPlacedEvent struct {
	OrderID       string  `json:"order_id"`
	CartID        string  `json:"cart_id"`
	PaymentMethod string  `json:"payment_method"`
	Total         float64 `json:"total"`
	AdvanceAmount float64 `json:"advance_amount"`
	ItemCount     int     `json:"item_count"`
	RequestID     string  `json:"request_id,omitempty"`
}

// EventPublisher publishes order lifecycle events.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error
	Close() error
}
