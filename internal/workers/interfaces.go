// Package workers provides the background workers of the service and an
// aggregate for starting them together. Workers run until the passed
// context is cancelled.
package workers

import "context"

// Worker is a background process of the service. Run starts the worker and
// returns immediately; the worker stops when ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
