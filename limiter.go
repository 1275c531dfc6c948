package veritext

import "context"

// DomainLimiter rate limits outbound requests per domain. Batch
// extraction uses it to stay polite towards individual hosts while
// still running URLs from different hosts concurrently.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait
	// completes.
	Wait(ctx context.Context, domain string) error
}
