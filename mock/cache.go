package mock

import (
	"context"

	"github.com/fwojciec/kakudump"
)

var _ kakudump.PageCache = (*PageCache)(nil)

// PageCache is a mock implementation of kakudump.PageCache.
type PageCache struct {
	FindPageFn func(ctx context.Context, url string) (string, error)
	SavePageFn func(ctx context.Context, url string, body string) error
}

func (c *PageCache) FindPage(ctx context.Context, url string) (string, error) {
	return c.FindPageFn(ctx, url)
}

func (c *PageCache) SavePage(ctx context.Context, url string, body string) error {
	return c.SavePageFn(ctx, url, body)
}
