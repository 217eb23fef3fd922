package service

import (
	"context"
	"io"
)

// ProofStore stages uploaded proof-of-payment files between the Payment
// step and the background upload to the order service. Staging decouples
// the customer-facing request from the upstream transfer.
type ProofStore interface {
	// Save writes the file under a generated key and returns that key.
	Save(ctx context.Context, fileName, contentType string, content io.Reader) (string, error)

	// Open reads a previously saved file back.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a staged file. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
