// Package goquery provides goquery-based extraction of novel indexes and
// chapter content from kakuyomu pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/kakudump"
	"github.com/fwojciec/kakudump/gjson"
	"golang.org/x/net/html"
)

var (
	pageTitle = goquery.SingleMatcher(cascadia.MustCompile("title"))
	nextData  = cascadia.MustCompile(`script#__NEXT_DATA__[type="application/json"]`)
)

// Document is a parsed kakuyomu page.
// A Document is not safe for concurrent use.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses html into a Document.
func NewDocument(html string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kakudump.Errorf(kakudump.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Index returns the work title and chapter list of a work page.
//
// Returns ENOTFOUND if the page has no embedded state script, and EDECODE
// if the script is present but its content cannot be decoded.
func (d *Document) Index() (*kakudump.Index, error) {
	var title string
	if node := d.doc.FindMatcher(pageTitle); node.Length() > 0 {
		title, _ = firstText(node.Get(0))
	}

	var (
		chapters []string
		err      error
		found    bool
	)
	d.doc.FindMatcher(nextData).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		data, ok := firstText(s.Get(0))
		if !ok {
			return true
		}
		found = true
		chapters, err = gjson.DecodeChapters(data)
		return false
	})

	if !found {
		return nil, kakudump.Errorf(kakudump.ENOTFOUND, "no embedded state found")
	}
	if err != nil {
		return nil, err
	}

	return &kakudump.Index{
		Title:    title,
		Chapters: chapters,
	}, nil
}

// ChapterContent returns the title and body lines of an episode page.
// The returned Lines read from this document lazily.
//
// Returns ENOTFOUND if the page has no chapter body.
func (d *Document) ChapterContent(sel *ChapterSelector) (*kakudump.Chapter, error) {
	body := d.doc.FindMatcher(sel.body)
	if body.Length() == 0 {
		return nil, kakudump.Errorf(kakudump.ENOTFOUND, "chapter body not found")
	}

	var title string
	if heading := d.doc.FindMatcher(sel.title); heading.Length() > 0 {
		// Rendering into memory does not fail.
		title, _ = heading.Html()
	}

	return &kakudump.Chapter{
		Title: title,
		Lines: sel.lines(body),
	}, nil
}

// firstText returns the data of the first text child of node.
func firstText(node *html.Node) (string, bool) {
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			return c.Data, true
		}
	}
	return "", false
}
