// Package delivery defines the contract every serving surface implements,
// whether it speaks HTTP or runs background loops.
package delivery

import "context"

// Delivery is a long-running serving component started by main.
type Delivery interface {
	Serve(ctx context.Context) error
}
