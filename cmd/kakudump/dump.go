package main

import (
	"fmt"

	"github.com/fwojciec/kakudump/crawl"
	"github.com/fwojciec/kakudump/fs"
)

const pandocHint = `pandoc --embed-resources --standalone --shift-heading-level-by=-1 --from=gfm -o novel.epub "%s"`

// Run executes the dump command.
func (c *DumpCmd) Run(deps *Dependencies) error {
	work, err := deps.Crawler.FetchIndex(deps.Ctx, c.Novel)
	if err != nil {
		return err
	}

	novel := &work.Novel
	fmt.Fprintf(deps.Stdout, "Title: %s\n", novel.Name)
	if novel.Author != nil {
		fmt.Fprintf(deps.Stdout, "Author: %s\n", *novel.Author)
	}
	fmt.Fprintf(deps.Stdout, "Number of chapters: %d\n", novel.Chapters)

	from, to, err := c.Range.Resolve(novel.Chapters)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Download chapters: %s\n", crawl.FormatRange(from, to))

	out := deps.NewOutput(novel)
	deps.Crawler.Renderer = out

	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", e.Completed, e.Total, crawl.TruncateURL(e.URL, 60))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "\nskip chapter %d %s: %v\n", e.Position, e.URL, e.Error)
		case crawl.ProgressFinished:
			// Clear progress line
			fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
		}
	}

	result, err := deps.Crawler.CrawlChapters(deps.Ctx, work, crawl.Range{From: from, To: to}, out, progress)
	if err != nil {
		fmt.Fprintln(deps.Stdout)
		return err
	}

	fmt.Fprintln(deps.Stdout, fs.ChapterRule)
	fmt.Fprintf(deps.Stdout, "Saved %d chapters (%s)", result.Saved, crawl.FormatBytes(result.Bytes))
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, ", %d failed", result.Failed)
	}
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintf(deps.Stdout, "Output: %s\n", out.Path())
	fmt.Fprintln(deps.Stdout, "Pandoc command to generate EPUB:")
	fmt.Fprintf(deps.Stdout, pandocHint+"\n", out.Path())

	return nil
}
