package revalidate

import "context"

// Invalidator is what the domain services depend on; Client is the real
// implementation, tests substitute a recorder.
type Invalidator interface {
	Invalidate(ctx context.Context, tags, paths []string) Result
}

var _ Invalidator = (*Client)(nil)
