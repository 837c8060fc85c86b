package kakudump

import "iter"

// Index is the table of contents recovered from a work page.
type Index struct {
	// Title is the raw page title, empty when the page has none.
	// Use SplitTitle to separate the name from the author.
	Title string

	// Chapters holds episode identifiers in the order the page lists them.
	// Duplicates are kept as encountered.
	Chapters []string
}

// LineKind distinguishes the two kinds of chapter content lines.
type LineKind int

// Line kinds.
const (
	LineParagraph LineKind = iota
	LineBreak
)

// Line is a single line of chapter content.
type Line struct {
	Kind LineKind

	// Markup is the verbatim inner HTML of a paragraph.
	// Always empty for LineBreak.
	Markup string
}

// Paragraph returns a paragraph line carrying markup.
func Paragraph(markup string) Line {
	return Line{Kind: LineParagraph, Markup: markup}
}

// Break returns an explicit line break.
func Break() Line {
	return Line{Kind: LineBreak}
}

// Chapter is the content of a single episode page.
type Chapter struct {
	// Title is the inner HTML of the chapter heading, empty when absent.
	Title string

	// Lines yields the chapter body in document order. It reads from the
	// parsed page lazily, may be ranged over once only, and must not be
	// used after the page is released.
	Lines iter.Seq[Line]
}

// ChapterText is a chapter that has been fully rendered and no longer
// refers to its source page.
type ChapterText struct {
	// Position is the 1-based position of the chapter in the index.
	Position int
	ID       string
	URL      string
	Title    string
	Content  string
}

// Novel describes a work being written out.
type Novel struct {
	ID     string
	URL    string
	Name   string
	Author *string

	// Chapters is the total number of chapters in the index.
	Chapters int
}
