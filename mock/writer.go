package mock

import "github.com/fwojciec/kakudump"

var _ kakudump.NovelWriter = (*NovelWriter)(nil)

// NovelWriter is a mock implementation of kakudump.NovelWriter.
type NovelWriter struct {
	BeginFn        func(novel *kakudump.Novel) error
	WriteChapterFn func(chapter *kakudump.ChapterText) error
	CommitFn       func() error
	AbortFn        func() error
	PathFn         func() string
}

func (w *NovelWriter) Begin(novel *kakudump.Novel) error {
	return w.BeginFn(novel)
}

func (w *NovelWriter) WriteChapter(chapter *kakudump.ChapterText) error {
	return w.WriteChapterFn(chapter)
}

func (w *NovelWriter) Commit() error {
	return w.CommitFn()
}

func (w *NovelWriter) Abort() error {
	return w.AbortFn()
}

func (w *NovelWriter) Path() string {
	return w.PathFn()
}

var _ kakudump.ChapterRenderer = (*ChapterRenderer)(nil)

// ChapterRenderer is a mock implementation of kakudump.ChapterRenderer.
type ChapterRenderer struct {
	RenderChapterFn func(position int, chapter *kakudump.Chapter) (string, error)
}

func (r *ChapterRenderer) RenderChapter(position int, chapter *kakudump.Chapter) (string, error) {
	return r.RenderChapterFn(position, chapter)
}
