package kakudump

import "context"

// PageParser extracts novel data from raw HTML pages.
type PageParser interface {
	// ParseIndex returns the table of contents of a work page.
	// Returns ENOTFOUND if the page carries no chapter data at all and
	// EDECODE if the data is present but cannot be decoded.
	ParseIndex(html string) (*Index, error)

	// ParseChapter returns the content of an episode page.
	// Returns ENOTFOUND if the page has no chapter body.
	ParseChapter(html string) (*Chapter, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
