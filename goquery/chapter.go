package goquery

import (
	"iter"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/kakudump"
)

// Default selectors for episode pages.
const (
	DefaultTitleSelector = ".widget-episodeTitle"
	DefaultBodySelector  = ".widget-episodeBody.js-episode-body"
	DefaultLineSelector  = "p"

	// BreakClass marks a paragraph that only stands for a blank line.
	BreakClass = "blank"
)

// ChapterSelector holds the compiled selectors used to segment episode
// pages. It is immutable and safe to share between goroutines.
type ChapterSelector struct {
	title goquery.Matcher
	body  goquery.Matcher
	line  goquery.Matcher
}

// NewChapterSelector returns a ChapterSelector for the current site layout.
func NewChapterSelector() *ChapterSelector {
	return &ChapterSelector{
		title: goquery.SingleMatcher(cascadia.MustCompile(DefaultTitleSelector)),
		body:  goquery.SingleMatcher(cascadia.MustCompile(DefaultBodySelector)),
		line:  cascadia.MustCompile(DefaultLineSelector),
	}
}

// lines yields the line children of body in document order.
// The sequence is single-use: ranging over it a second time yields nothing.
func (s *ChapterSelector) lines(body *goquery.Selection) iter.Seq[kakudump.Line] {
	var used atomic.Bool
	return func(yield func(kakudump.Line) bool) {
		if used.Swap(true) {
			return
		}
		body.ChildrenMatcher(s.line).EachWithBreak(func(_ int, p *goquery.Selection) bool {
			return yield(classify(p))
		})
	}
}

func classify(p *goquery.Selection) kakudump.Line {
	if class, ok := p.Attr("class"); ok && class == BreakClass {
		return kakudump.Break()
	}
	markup, _ := p.Html()
	return kakudump.Paragraph(markup)
}
