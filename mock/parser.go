package mock

import (
	"context"

	"github.com/fwojciec/kakudump"
)

var _ kakudump.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of kakudump.PageParser.
type PageParser struct {
	ParseIndexFn   func(html string) (*kakudump.Index, error)
	ParseChapterFn func(html string) (*kakudump.Chapter, error)
}

func (p *PageParser) ParseIndex(html string) (*kakudump.Index, error) {
	return p.ParseIndexFn(html)
}

func (p *PageParser) ParseChapter(html string) (*kakudump.Chapter, error) {
	return p.ParseChapterFn(html)
}

var _ kakudump.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of kakudump.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
