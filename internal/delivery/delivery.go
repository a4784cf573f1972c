// Package delivery defines how the service is exposed to the outside world.
package delivery

import "context"

// Delivery is a long-running entry point such as the HTTP API.
// Serve blocks until the delivery stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
