package kakudump

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// Returns ENOTFOUND if the page does not exist.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// PageCache stores previously fetched pages by URL.
type PageCache interface {
	// FindPage returns the cached body for url.
	// Returns ENOTFOUND if the page is not cached.
	FindPage(ctx context.Context, url string) (string, error)

	// SavePage stores body for url, replacing any previous entry.
	SavePage(ctx context.Context, url string, body string) error
}
