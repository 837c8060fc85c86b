// Package fs writes novels to markdown files.
package fs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/kakudump"
)

// Underlines used for the novel and chapter headings.
const (
	NovelRule   = "==================="
	ChapterRule = "-------------------"
)

// DefaultPath returns the output path for a novel named name inside dir.
func DefaultPath(dir, name string) string {
	name = strings.NewReplacer("/", "_", `\`, "_").Replace(name)
	return filepath.Join(dir, name+".md")
}

// Ensure Writer implements the writer interfaces at compile time.
var (
	_ kakudump.NovelWriter     = (*Writer)(nil)
	_ kakudump.ChapterRenderer = (*Writer)(nil)
)

// Writer writes a novel as a single GitHub-flavoured markdown file.
// Output goes to path.tmp and is renamed to path on Commit.
//
// RenderChapter is safe for concurrent use; the other methods are not.
type Writer struct {
	path      string
	converter kakudump.Converter

	file *os.File
	buf  *bufio.Writer
}

// Option configures a Writer.
type Option func(*Writer)

// WithConverter converts paragraph markup before it is written.
// Without a converter, markup is written verbatim.
func WithConverter(c kakudump.Converter) Option {
	return func(w *Writer) {
		w.converter = c
	}
}

// NewWriter creates a new Writer for the file at path.
func NewWriter(path string, opts ...Option) *Writer {
	w := &Writer{path: path}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the final output path.
func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) tempPath() string {
	return w.path + ".tmp"
}

// Begin creates the temporary file and writes the novel header.
func (w *Writer) Begin(novel *kakudump.Novel) error {
	if dir := filepath.Dir(w.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(w.tempPath())
	if err != nil {
		return err
	}
	w.file = f
	w.buf = bufio.NewWriter(f)

	_, err = fmt.Fprintf(w.buf, "%s\n%s\nOriginal: %s\n", novel.Name, NovelRule, novel.URL)
	return err
}

// RenderChapter renders a chapter heading followed by its lines.
// Chapters without a title are headed "Chapter <position>".
func (w *Writer) RenderChapter(position int, chapter *kakudump.Chapter) (string, error) {
	title := chapter.Title
	if title == "" {
		title = fmt.Sprintf("Chapter %d", position)
	}

	var b strings.Builder
	b.WriteString("\n" + title + "\n" + ChapterRule + "\n")

	for line := range chapter.Lines {
		switch line.Kind {
		case kakudump.LineBreak:
			b.WriteString("<br/>\n")
		case kakudump.LineParagraph:
			markup := line.Markup
			if w.converter != nil {
				converted, err := w.converter.Convert(markup)
				if err != nil {
					return "", fmt.Errorf("convert paragraph: %w", err)
				}
				markup = converted
			}
			b.WriteString(markup + "\n\n")
		}
	}

	return b.String(), nil
}

// WriteChapter appends a rendered chapter.
func (w *Writer) WriteChapter(chapter *kakudump.ChapterText) error {
	if w.buf == nil {
		return kakudump.Errorf(kakudump.EINVALID, "writer not started")
	}
	_, err := w.buf.WriteString(chapter.Content)
	return err
}

// Commit flushes the output and moves it into place.
func (w *Writer) Commit() error {
	if w.file == nil {
		return kakudump.Errorf(kakudump.EINVALID, "writer not started")
	}

	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.file.Close(); err != nil {
		return err
	}
	w.file, w.buf = nil, nil

	return os.Rename(w.tempPath(), w.path)
}

// Abort discards the output. The final path is left untouched.
func (w *Writer) Abort() error {
	if w.file != nil {
		w.file.Close()
		w.file, w.buf = nil, nil
	}
	if err := os.Remove(w.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
