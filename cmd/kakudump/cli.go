package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/kakudump"
	"github.com/fwojciec/kakudump/crawl"
)

// Output formats.
const (
	FormatGFM      = "gfm"
	FormatMarkdown = "markdown"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Novel string `arg:"" required:"" help:"Novel id, as found in https://kakuyomu.jp/works/<id>"`

	From        int           `default:"1" help:"First chapter to download (1-based)"`
	To          int           `help:"Last chapter to download (default: last chapter)"`
	Out         string        `short:"o" type:"path" help:"Output file (default: ./<title>.md)"`
	Concurrency int           `short:"c" default:"3" help:"Concurrent chapter downloads"`
	Timeout     time.Duration `short:"t" default:"10s" help:"Fetch timeout per page"`
	Retries     uint          `default:"5" help:"Fetch attempts per page (0 retries until interrupted)"`
	Rate        float64       `default:"2" help:"Requests per second to the site (0 disables the limit)"`
	Cache       string        `type:"path" env:"KAKUDUMP_CACHE" help:"SQLite file caching chapter pages between runs"`
	Format      string        `enum:"gfm,markdown" default:"gfm" help:"Paragraph format: gfm keeps inline HTML, markdown converts it"`
	BaseURL     string        `name:"base-url" env:"KAKUDUMP_BASE_URL" default:"https://kakuyomu.jp" help:"Site root URL"`
	Verbose     bool          `short:"v" help:"Log every fetch"`
}

// Output is where a novel is written. It renders chapters as well as
// storing them so the rendering matches the file format.
type Output interface {
	kakudump.NovelWriter
	kakudump.ChapterRenderer
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Crawler *crawl.Crawler

	// NewOutput opens the output for a novel once its title is known.
	NewOutput func(novel *kakudump.Novel) Output
}

// DumpCmd downloads a novel.
type DumpCmd struct {
	Novel string
	Range crawl.Range
}
