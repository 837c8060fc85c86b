package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kakudump"
)

// Ensure LoggingPageCache implements kakudump.PageCache.
var _ kakudump.PageCache = (*LoggingPageCache)(nil)

// LoggingPageCache wraps a PageCache with debug logging.
type LoggingPageCache struct {
	next   kakudump.PageCache
	logger *slog.Logger
}

// NewLoggingPageCache creates a new LoggingPageCache.
func NewLoggingPageCache(next kakudump.PageCache, logger *slog.Logger) *LoggingPageCache {
	return &LoggingPageCache{next: next, logger: logger}
}

// FindPage delegates to the wrapped cache and logs hits and misses.
func (c *LoggingPageCache) FindPage(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if err != nil && kakudump.ErrorCode(err) != kakudump.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Debug("cache lookup", attrs...)
	}(time.Now())
	return c.next.FindPage(ctx, url)
}

// SavePage delegates to the wrapped cache and logs the operation.
func (c *LoggingPageCache) SavePage(ctx context.Context, url string, body string) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache save",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SavePage(ctx, url, body)
}
