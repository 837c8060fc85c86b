package goquery

import "github.com/fwojciec/kakudump"

// Ensure Parser implements kakudump.PageParser at compile time.
var _ kakudump.PageParser = (*Parser)(nil)

// Parser implements kakudump.PageParser by parsing each page into a
// Document. It is safe for concurrent use; each call owns its Document.
type Parser struct {
	selector *ChapterSelector
}

// NewParser creates a new Parser using the default chapter selectors.
func NewParser() *Parser {
	return &Parser{selector: NewChapterSelector()}
}

// ParseIndex parses a work page and returns its index.
func (p *Parser) ParseIndex(html string) (*kakudump.Index, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}
	return doc.Index()
}

// ParseChapter parses an episode page and returns its content.
// The returned lines keep the parsed page alive until they are consumed.
func (p *Parser) ParseChapter(html string) (*kakudump.Chapter, error) {
	doc, err := NewDocument(html)
	if err != nil {
		return nil, err
	}
	return doc.ChapterContent(p.selector)
}
