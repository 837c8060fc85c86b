// Package crawl provides novel download orchestration.
// It coordinates index discovery, chapter fetching, parsing, rendering,
// and ordered output of a single work.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/fwojciec/kakudump"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of chapters fetched at once when
// Crawler.Concurrency is not set.
const DefaultConcurrency = 3

// Crawler orchestrates the download of a novel.
type Crawler struct {
	Fetcher  kakudump.Fetcher
	Parser   kakudump.PageParser
	Renderer kakudump.ChapterRenderer

	// Cache is optional. When set, chapter pages are looked up before
	// fetching and stored once they parse.
	Cache kakudump.PageCache

	// RateLimiter is optional and applies to network fetches only.
	RateLimiter kakudump.DomainLimiter

	Concurrency int
	BaseURL     string

	// Logger defaults to discarding all records.
	Logger *slog.Logger
}

// Work is a novel whose index has been fetched.
type Work struct {
	Novel kakudump.Novel

	// Chapters holds the episode identifiers in index order.
	Chapters []string
}

// Range selects chapters by 1-based inclusive position.
// A zero From starts at the first chapter; a zero To ends at the last.
type Range struct {
	From int
	To   int
}

// Resolve applies defaults against a novel with count chapters and
// validates the result.
func (r Range) Resolve(count int) (from, to int, err error) {
	if count == 0 {
		return 0, 0, kakudump.Errorf(kakudump.EINVALID, "novel has no chapters")
	}
	from, to = r.From, r.To
	if from == 0 {
		from = 1
	}
	if to == 0 {
		to = count
	}
	switch {
	case from < 1:
		return 0, 0, kakudump.Errorf(kakudump.EINVALID, "range must start at chapter 1 or later, got %d", from)
	case to > count:
		return 0, 0, kakudump.Errorf(kakudump.EINVALID, "novel has only %d chapters, but range ends at %d", count, to)
	case to < from:
		return 0, 0, kakudump.Errorf(kakudump.EINVALID, "range ends at %d before it starts at %d", to, from)
	}
	return from, to, nil
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Position  int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Crawler) baseURL() string {
	if c.BaseURL == "" {
		return kakudump.DefaultBaseURL
	}
	return c.BaseURL
}

// FetchIndex fetches the work page of novelID and returns its title,
// author, and chapter list. The work page is never served from cache
// since it changes as chapters are published.
func (c *Crawler) FetchIndex(ctx context.Context, novelID string) (*Work, error) {
	if novelID == "" {
		return nil, kakudump.Errorf(kakudump.EINVALID, "novel id required")
	}

	workURL := kakudump.WorkURL(c.baseURL(), novelID)
	html, err := c.fetch(ctx, workURL)
	if err != nil {
		if kakudump.ErrorCode(err) == kakudump.ENOTFOUND {
			return nil, kakudump.Errorf(kakudump.ENOTFOUND, "no such novel: %s", novelID)
		}
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	index, err := c.Parser.ParseIndex(html)
	switch kakudump.ErrorCode(err) {
	case "":
	case kakudump.ENOTFOUND:
		c.logger().WarnContext(ctx, "index data missing", "url", workURL, "err", err)
		return nil, kakudump.Errorf(kakudump.ENOTFOUND, "unable to fetch chapter index")
	case kakudump.EDECODE:
		c.logger().ErrorContext(ctx, "index data malformed", "url", workURL, "err", err)
		return nil, kakudump.Errorf(kakudump.EDECODE, "unable to deserialize chapter index")
	default:
		return nil, fmt.Errorf("parse index: %w", err)
	}

	title := kakudump.SplitTitle(index.Title)
	if title.Name == "" {
		return nil, kakudump.Errorf(kakudump.EINVALID, "unable to recognize novel's title")
	}

	return &Work{
		Novel: kakudump.Novel{
			ID:       novelID,
			URL:      workURL,
			Name:     title.Name,
			Author:   title.Author,
			Chapters: len(index.Chapters),
		},
		Chapters: index.Chapters,
	}, nil
}

// chapterResult holds the outcome of processing a single chapter.
type chapterResult struct {
	// chapter is always set; Title and Content only on success.
	chapter *kakudump.ChapterText
	url     string
	err     error

	// fatal errors stop the crawl; the rest only skip the chapter.
	fatal bool
}

// CrawlChapters downloads the chapters of work selected by rng and writes
// them to w in index order. Chapters whose page cannot be fetched are
// skipped and reported through progress. A chapter page without content
// aborts the crawl, as does any write failure; w is then aborted.
func (c *Crawler) CrawlChapters(ctx context.Context, work *Work, rng Range, w kakudump.NovelWriter, progress ProgressFunc) (*Result, error) {
	from, to, err := rng.Resolve(len(work.Chapters))
	if err != nil {
		return nil, err
	}

	if err := w.Begin(&work.Novel); err != nil {
		return nil, fmt.Errorf("begin output: %w", err)
	}

	result, err := c.crawl(ctx, work, from, to, w, progress)
	if err != nil {
		if abortErr := w.Abort(); abortErr != nil {
			c.logger().WarnContext(ctx, "abort output", "path", w.Path(), "err", abortErr)
		}
		return nil, err
	}

	if err := w.Commit(); err != nil {
		return nil, fmt.Errorf("commit output: %w", err)
	}
	return result, nil
}

func (c *Crawler) crawl(ctx context.Context, work *Work, from, to int, w kakudump.NovelWriter, progress ProgressFunc) (*Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := to - from + 1
	resultCh := make(chan chapterResult, total)

	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for position := from; position <= to; position++ {
			id := work.Chapters[position-1]
			g.Go(func() error {
				resultCh <- c.processChapter(gctx, work.Novel.ID, position, id)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Chapters finish out of order; pending holds them until every
	// earlier position has been written or skipped.
	var (
		result  Result
		pending = make(map[int]chapterResult, concurrency)
		next    = from
		fatal   error
	)
	for res := range resultCh {
		position := res.chapter.Position
		n := int(completed.Add(1))

		if res.err != nil {
			if res.fatal {
				fatal = res.err
				cancel()
				break
			}
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: n,
					Total:     total,
					Position:  position,
					URL:       res.url,
					Error:     res.err,
				})
			}
		} else if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: n,
				Total:     total,
				Position:  position,
				URL:       res.url,
			})
		}

		pending[position] = res
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if ready.err != nil {
				continue
			}
			if err := w.WriteChapter(ready.chapter); err != nil {
				fatal = fmt.Errorf("write chapter %d: %w", ready.chapter.Position, err)
				break
			}
			result.Saved++
			result.Bytes += len(ready.chapter.Content)
		}
		if fatal != nil {
			cancel()
			break
		}
	}

	if fatal != nil {
		// Let in-flight workers finish before the writer is aborted.
		for range resultCh {
		}
		return nil, fatal
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result, nil
}

// processChapter fetches, parses, and renders a single chapter.
func (c *Crawler) processChapter(ctx context.Context, novelID string, position int, id string) chapterResult {
	pageURL := kakudump.EpisodeURL(c.baseURL(), novelID, id)
	result := chapterResult{
		chapter: &kakudump.ChapterText{Position: position, ID: id, URL: pageURL},
		url:     pageURL,
	}

	html, cached, err := c.fetchChapter(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}

	chapter, err := c.Parser.ParseChapter(html)
	if err != nil {
		result.fatal = true
		if kakudump.ErrorCode(err) == kakudump.ENOTFOUND {
			result.err = kakudump.Errorf(kakudump.ENOTFOUND, "cannot find chapter content: %s", pageURL)
		} else {
			result.err = fmt.Errorf("parse chapter %d: %w", position, err)
		}
		return result
	}

	content, err := c.Renderer.RenderChapter(position, chapter)
	if err != nil {
		result.fatal = true
		result.err = fmt.Errorf("render chapter %d: %w", position, err)
		return result
	}
	result.chapter.Title = chapter.Title
	result.chapter.Content = content

	if c.Cache != nil && !cached {
		if err := c.Cache.SavePage(ctx, pageURL, html); err != nil {
			c.logger().WarnContext(ctx, "cache save failed", "url", pageURL, "err", err)
		}
	}

	return result
}

// fetchChapter returns the chapter page from cache when available and
// from the network otherwise.
func (c *Crawler) fetchChapter(ctx context.Context, pageURL string) (html string, cached bool, err error) {
	if c.Cache != nil {
		html, err := c.Cache.FindPage(ctx, pageURL)
		if err == nil {
			return html, true, nil
		}
		if kakudump.ErrorCode(err) != kakudump.ENOTFOUND {
			c.logger().WarnContext(ctx, "cache lookup failed", "url", pageURL, "err", err)
		}
	}
	html, err = c.fetch(ctx, pageURL)
	return html, false, err
}

// fetch waits for the rate limiter and fetches rawURL.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", kakudump.Errorf(kakudump.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return c.Fetcher.Fetch(ctx, rawURL)
}
