package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/fwojciec/kakudump"
	"github.com/fwojciec/kakudump/fs"
	"github.com/fwojciec/kakudump/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chapterOf(title string, lines ...kakudump.Line) *kakudump.Chapter {
	return &kakudump.Chapter{Title: title, Lines: slices.Values(lines)}
}

// Story: Atomic File Output
// The writer uses a temp file for atomic updates

func TestWriter_WritesNovelOnCommit(t *testing.T) {
	t.Parallel()

	// Given a writer targeting a file
	path := filepath.Join(t.TempDir(), "novel.md")
	w := fs.NewWriter(path)

	// When I write a novel with one chapter
	require.NoError(t, w.Begin(&kakudump.Novel{Name: "魔法使いの嫁", URL: "https://kakuyomu.jp/works/1"}))
	content, err := w.RenderChapter(1, chapterOf("第一話", kakudump.Paragraph("一行目"), kakudump.Break(), kakudump.Paragraph("<em>二行目</em>")))
	require.NoError(t, err)
	require.NoError(t, w.WriteChapter(&kakudump.ChapterText{Position: 1, Content: content}))

	// Then nothing is at the final path before commit
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "final file should not exist until commit")

	// And after commit the file holds the full novel
	require.NoError(t, w.Commit())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "魔法使いの嫁\n===================\nOriginal: https://kakuyomu.jp/works/1\n"+
		"\n第一話\n-------------------\n一行目\n\n<br/>\n<em>二行目</em>\n\n", string(data))

	// And the temp file is gone
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_CommitReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "novel.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	w := fs.NewWriter(path)
	require.NoError(t, w.Begin(&kakudump.Novel{Name: "New", URL: "u"}))
	require.NoError(t, w.Commit())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "New\n===================\nOriginal: u\n", string(data))
}

func TestWriter_AbortKeepsExistingFile(t *testing.T) {
	t.Parallel()

	// Given an existing output
	path := filepath.Join(t.TempDir(), "novel.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	// When a write is started and aborted
	w := fs.NewWriter(path)
	require.NoError(t, w.Begin(&kakudump.Novel{Name: "New", URL: "u"}))
	require.NoError(t, w.Abort())

	// Then the old output is untouched and the temp file removed
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_AbortWithoutBegin(t *testing.T) {
	t.Parallel()

	w := fs.NewWriter(filepath.Join(t.TempDir(), "novel.md"))

	assert.NoError(t, w.Abort())
}

func TestWriter_WriteChapterRequiresBegin(t *testing.T) {
	t.Parallel()

	w := fs.NewWriter(filepath.Join(t.TempDir(), "novel.md"))

	err := w.WriteChapter(&kakudump.ChapterText{Content: "x"})

	require.Error(t, err)
	assert.Equal(t, kakudump.EINVALID, kakudump.ErrorCode(err))
}

func TestWriter_BeginCreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "novel.md")
	w := fs.NewWriter(path)

	require.NoError(t, w.Begin(&kakudump.Novel{Name: "N", URL: "u"}))
	require.NoError(t, w.Commit())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriter_RenderChapter(t *testing.T) {
	t.Parallel()

	t.Run("uses position when title is empty", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter("unused.md")

		content, err := w.RenderChapter(7, chapterOf("", kakudump.Paragraph("x")))

		require.NoError(t, err)
		assert.Equal(t, "\nChapter 7\n-------------------\nx\n\n", content)
	})

	t.Run("converts paragraphs but not breaks", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "md:" + html, nil
			},
		}
		w := fs.NewWriter("unused.md", fs.WithConverter(conv))

		content, err := w.RenderChapter(1, chapterOf("T", kakudump.Paragraph("a"), kakudump.Break()))

		require.NoError(t, err)
		assert.Equal(t, "\nT\n-------------------\nmd:a\n\n<br/>\n", content)
	})

	t.Run("returns converter errors", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("bad markup")
			},
		}
		w := fs.NewWriter("unused.md", fs.WithConverter(conv))

		_, err := w.RenderChapter(1, chapterOf("T", kakudump.Paragraph("a")))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad markup")
	})
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join(".", "魔法使いの嫁.md"), fs.DefaultPath(".", "魔法使いの嫁"))
	assert.Equal(t, filepath.Join("out", "A_B.md"), fs.DefaultPath("out", "A/B"))
}
