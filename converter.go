package kakudump

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a fragment of paragraph markup into Markdown.
	Convert(html string) (string, error)
}
