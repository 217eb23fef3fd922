package entity

import "time"

// PaymentMethod identifies how the customer pays. All methods here are
// manually verified; none settle through a payment gateway.
type PaymentMethod string

const (
	// PaymentCOD is cash on delivery with a 50% advance.
	PaymentCOD PaymentMethod = "cod"
	// PaymentBank is a direct bank transfer.
	PaymentBank PaymentMethod = "bank"
	// PaymentJazzCash is a JazzCash mobile-wallet transfer.
	PaymentJazzCash PaymentMethod = "jazz"
	// PaymentEasypaisa is an Easypaisa mobile-wallet transfer.
	PaymentEasypaisa PaymentMethod = "easypaisa"
)

// Valid reports whether the method is one this store accepts.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentBank, PaymentJazzCash, PaymentEasypaisa:
		return true
	}

	return false
}

// RequiresProof reports whether the method needs an uploaded proof of
// payment before the order can be reviewed.
func (m PaymentMethod) RequiresProof() bool {
	switch m {
	case PaymentCOD, PaymentBank, PaymentJazzCash:
		return true
	}

	return false
}

// ContactInfo holds the shipping and contact fields collected in the
// Details step of checkout.
type ContactInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Note    string `json:"note"`
}

// ProofOfPayment references a staged proof file plus the metadata used
// for manual verification of the transfer.
type ProofOfPayment struct {
	StorageKey     string `json:"storageKey"`
	FileName       string `json:"fileName"`
	ContentType    string `json:"contentType"`
	Size           int64  `json:"size"`
	TransactionRef string `json:"transactionRef"`
	SenderLast4    string `json:"senderLast4"`
}

// CheckoutState is where a checkout session currently sits.
type CheckoutState string

const (
	CheckoutDetails    CheckoutState = "details"
	CheckoutPayment    CheckoutState = "payment"
	CheckoutReview     CheckoutState = "review"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSucceeded  CheckoutState = "succeeded"
	CheckoutFailed     CheckoutState = "failed"
)

// OrderDraft is the transient snapshot a checkout session accumulates.
// It exists only for the duration of checkout and is never persisted
// beyond submission.
type OrderDraft struct {
	CartID        string          `json:"cartId"`
	Lines         []ProjectedLine `json:"lines"`
	Subtotal      float64         `json:"subtotal"`
	Shipping      float64         `json:"shipping"`
	GrandTotal    float64         `json:"grandTotal"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	AdvanceAmount float64         `json:"advanceAmount"`
	Contact       ContactInfo     `json:"contact"`
	Proof         *ProofOfPayment `json:"proof,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OrderConfirmation is what the customer sees after a successful
// submission: the thank-you view data.
type OrderConfirmation struct {
	OrderID       string  `json:"orderId"`
	Name          string  `json:"name"`
	AdvanceAmount float64 `json:"advanceAmount"`
	Message       string  `json:"message,omitempty"`
}

// PaymentAccount is one receiving account shown in the Payment step,
// e.g. the store's bank account or a mobile-wallet number.
type PaymentAccount struct {
	Method        PaymentMethod `json:"method"`
	AccountName   string        `json:"accountName"`
	AccountNumber string        `json:"accountNumber"`
	BankName      string        `json:"bankName,omitempty"`
	IBAN          string        `json:"iban,omitempty"`
}
