// Package lifecycle holds shared lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown operations such as server
// drain and database pings.
const DefaultTimeout = 10 * time.Second
