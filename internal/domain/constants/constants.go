// Package constants holds cross-layer constant values.
package constants

const (
	// PubSubProviderLocal selects the local HTTP publisher for development.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle selects Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"
)

const (
	// MaxProofFileSize bounds uploaded proof-of-payment files.
	MaxProofFileSize = 5 * 1024 * 1024

	// MinTransactionRefLength is the shortest accepted transaction reference.
	MinTransactionRefLength = 3

	// SenderLast4Length is the exact digit count identifying the sender.
	SenderLast4Length = 4
)

// Enumerated missing-proof items, surfaced verbatim to the customer.
const (
	MissingProofScreenshot = "Payment screenshot (required)"
	MissingTransactionRef  = "Transaction reference"
	MissingSenderLast4     = "Last 4 digits of sender account/phone"
)
