// Package retry provides a kakudump.Fetcher decorator that retries failed
// fetches with exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fwojciec/kakudump"
)

// Defaults for NewFetcher.
const (
	DefaultAttempts = 5
	DefaultDelay    = 1 * time.Second
	DefaultMaxDelay = 30 * time.Second
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Ensure Fetcher implements kakudump.Fetcher at compile time.
var _ kakudump.Fetcher = (*Fetcher)(nil)

// Fetcher retries fetches of the wrapped Fetcher.
// ENOTFOUND errors are returned immediately since the page will not appear
// on a second try.
type Fetcher struct {
	next     kakudump.Fetcher
	attempts uint
	delay    time.Duration
	maxDelay time.Duration
	logger   LogFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithAttempts sets the total number of attempts, including the first one.
// Zero retries until the context is done.
func WithAttempts(n uint) Option {
	return func(f *Fetcher) {
		f.attempts = n
	}
}

// WithDelays sets the initial backoff delay and its upper bound.
// This is useful for testing without waiting for real delays.
func WithDelays(delay, maxDelay time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = delay
		f.maxDelay = maxDelay
	}
}

// WithLogger sets a function called before every retry.
func WithLogger(logger LogFunc) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher wraps next with retry logic.
func NewFetcher(next kakudump.Fetcher, opts ...Option) *Fetcher {
	f := &Fetcher{
		next:     next,
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
		maxDelay: DefaultMaxDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch fetches url, retrying failures with exponential backoff.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			return f.next.Fetch(ctx, url)
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.delay),
		retry.MaxDelay(f.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return kakudump.ErrorCode(err) != kakudump.ENOTFOUND
		}),
		retry.OnRetry(func(n uint, err error) {
			if f.logger != nil {
				f.logger("  retry %s (attempt %d): %v", url, n+2, err)
			}
		}),
	)
}

// Close closes the wrapped Fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}
