package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/readmode"
	rmhttp "github.com/fwojciec/readmode/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   readmode.Fetcher
	Converter readmode.Converter
	Sitemaps  readmode.SitemapService
	Articles  readmode.ArticleService

	// Extractors returns the extractor for every engine. extended toggles
	// the native engine's elimination rounds.
	Extractors func(extended bool) map[readmode.Engine]readmode.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string        `name:"db" env:"READMODE_DB" help:"Article database path"`
	Verbose   bool          `short:"v" help:"Log scoring rounds and requests"`
	Timeout   time.Duration `default:"10s" help:"HTTP request timeout"`
	UserAgent string        `name:"user-agent" default:"${user_agent}" help:"HTTP User-Agent header"`

	Extract ExtractCmd `cmd:"" help:"Extract the article from one page"`
	Compare CompareCmd `cmd:"" help:"Run every engine on one page and compare the results"`
	Batch   BatchCmd   `cmd:"" help:"Extract and store articles for a list of URLs"`
	List    ListCmd    `cmd:"" help:"List stored articles"`
	Show    ShowCmd    `cmd:"" help:"Print a stored article"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored article"`
}

// kongVars are interpolated into struct tags.
var kongVars = map[string]string{
	"user_agent": rmhttp.DefaultUserAgent,
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source   string `arg:"" help:"HTML file, '-' for stdin, or http(s) URL"`
	URL      string `name:"url" short:"u" help:"Base URL for resolving relative paths (defaults to the source URL)"`
	Engine   string `short:"e" enum:"native,readability,trafilatura" default:"native" help:"Extraction engine"`
	Extended bool   `help:"Enable the native engine's elimination rounds"`
	Format   string `short:"f" enum:"html,text,markdown" default:"html" help:"Output format"`
	Pretty   bool   `help:"Indent HTML output"`
	Save     bool   `short:"s" help:"Store the article in the database"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Source   string `arg:"" help:"HTML file, '-' for stdin, or http(s) URL"`
	URL      string `name:"url" short:"u" help:"Base URL for resolving relative paths (defaults to the source URL)"`
	Extended bool   `help:"Enable the native engine's elimination rounds"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string   `arg:"" optional:"" help:"File with one URL per line, '-' for stdin"`
	Sitemap     string   `help:"Site or sitemap URL to discover article URLs from"`
	Include     []string `short:"I" help:"Keep only discovered URLs matching this regex (repeatable)"`
	Exclude     []string `short:"X" help:"Drop discovered URLs matching this regex (repeatable)"`
	Engine      string   `short:"e" enum:"native,readability,trafilatura" default:"native" help:"Extraction engine"`
	Extended    bool     `help:"Enable the native engine's elimination rounds"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1" help:"Requests per second per host (0 for unlimited)"`
	Out         string   `short:"o" type:"path" help:"Also write articles as markdown files under this directory"`
	NoStore     bool     `name:"no-store" help:"Do not store articles in the database"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Engine string `short:"e" help:"Only list articles from this engine"`
	URL    string `name:"url" help:"Only list articles extracted from this URL"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of articles"`
	Offset int    `help:"Number of articles to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Article ID"`
	Format string `short:"f" enum:"html,text,markdown" default:"markdown" help:"Output format"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Article ID"`
	Force bool   `help:"Confirm deletion"`
}

// errorText returns the message of an application error and the full
// text of any other error.
func errorText(err error) string {
	if readmode.ErrorCode(err) == readmode.EINTERNAL {
		return err.Error()
	}
	return readmode.ErrorMessage(err)
}
