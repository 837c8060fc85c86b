// Package htmltomarkdown converts chapter paragraph markup to Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kakudump"
)

// Ensure Converter implements kakudump.Converter at compile time.
var _ kakudump.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
// Ruby annotations are kept inline as 漢字《かんじ》.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms paragraph markup into Markdown.
// Blank markup converts to an empty string.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	html, err := inlineRuby(html)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}

// inlineRuby replaces ruby text with its bracketed reading and drops
// fallback parentheses.
func inlineRuby(html string) (string, error) {
	if !strings.Contains(html, "<rt") {
		return html, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", kakudump.Errorf(kakudump.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("rp").Remove()
	doc.Find("rt").Each(func(_ int, rt *goquery.Selection) {
		rt.ReplaceWithHtml("《" + rt.Text() + "》")
	})

	return doc.Find("body").Html()
}
