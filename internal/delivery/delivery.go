// Package delivery defines the contract every transport entrypoint
// (HTTP server, workers) implements.
package delivery

import "context"

// Delivery is a long-running entrypoint started by main.
type Delivery interface {
	Serve(ctx context.Context) error
}
