package kakudump

// NovelWriter writes a novel out chapter by chapter.
// Begin must be called first; Commit makes the output permanent and
// Abort discards it.
type NovelWriter interface {
	Begin(novel *Novel) error
	WriteChapter(chapter *ChapterText) error
	Commit() error
	Abort() error

	// Path returns the final output location.
	Path() string
}

// ChapterRenderer renders parsed chapter content into text.
// It consumes chapter.Lines, so it must run while the source page is alive.
type ChapterRenderer interface {
	RenderChapter(position int, chapter *Chapter) (string, error)
}
