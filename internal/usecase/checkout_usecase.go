package usecase

import (
	"context"
	"io"

	"storefront/internal/domain/entity"
)

// CheckoutSession is one customer's walk through the checkout state
// machine. Backward transitions keep every previously entered field.
type CheckoutSession struct {
	ID     string               `json:"id"`
	State  entity.CheckoutState `json:"state"`
	Draft  entity.OrderDraft    `json:"draft"`
	Errors map[string]string    `json:"errors,omitempty"`
}

// PaymentInput is what the Payment step collects besides the proof file.
type PaymentInput struct {
	Method         entity.PaymentMethod `json:"method"`
	TransactionRef string               `json:"transactionRef"`
	SenderLast4    string               `json:"senderLast4"`
}

// ProofFile is an uploaded proof-of-payment file before validation.
type ProofFile struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// CheckoutUsecase drives the step-gated checkout:
// Details -> Payment -> Review -> Submitting -> {Succeeded, Failed}.
type CheckoutUsecase interface {
	// Start opens a session over the cart's current projection.
	// An empty projection is rejected.
	Start(ctx context.Context, cartID string) (*CheckoutSession, error)

	// Session returns a session by id.
	Session(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// SubmitDetails validates the contact fields and advances
	// Details -> Payment. Field failures keep the session in Details.
	SubmitDetails(ctx context.Context, sessionID string, contact entity.ContactInfo) (*CheckoutSession, error)

	// AttachProof validates and stages a proof-of-payment file on a
	// session sitting in Payment.
	AttachProof(ctx context.Context, sessionID string, file *ProofFile) (*CheckoutSession, error)

	// RemoveProof discards a previously staged proof file.
	RemoveProof(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// SelectPayment records the payment method and verification
	// metadata, enforces the proof gate, and advances
	// Payment -> Review. Missing proof items come back enumerated.
	SelectPayment(ctx context.Context, sessionID string, input *PaymentInput) (*CheckoutSession, error)

	// Back steps Review -> Payment or Payment -> Details without
	// losing entered data.
	Back(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// Submit drives the three-phase submission from Review. Order
	// creation is blocking; proof upload and stock decrements settle
	// in the background after the confirmation is returned.
	Submit(ctx context.Context, sessionID string) (*entity.OrderConfirmation, error)

	// PaymentQR renders the receiving account for the session's
	// payment method, with the advance amount, as a PNG QR code.
	PaymentQR(ctx context.Context, sessionID string) ([]byte, error)
}
