package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/readmode"
	"github.com/fwojciec/readmode/goquery"
	"github.com/fwojciec/readmode/htmltomarkdown"
	rmhttp "github.com/fwojciec/readmode/http"
	"github.com/fwojciec/readmode/readability"
	rmslog "github.com/fwojciec/readmode/slog"
	"github.com/fwojciec/readmode/sqlite"
	"github.com/fwojciec/readmode/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overridden by --db or READMODE_DB.
	DBPath string

	// Stdin is read when the source argument is "-".
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ArticleService readmode.ArticleService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("readmode"),
		kong.Description("Extract the readable article from HTML pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(kongVars),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'readmode --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	fetcher := rmslog.NewLoggingFetcher(
		rmhttp.NewFetcher(rmhttp.WithTimeout(cli.Timeout), rmhttp.WithUserAgent(cli.UserAgent)),
		logger,
	)
	defer fetcher.Close()
	deps.Fetcher = fetcher

	deps.Sitemaps = rmslog.NewLoggingSitemapService(
		rmhttp.NewSitemapService(nil, rmhttp.WithSitemapUserAgent(cli.UserAgent)),
		logger,
	)
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Extractors = func(extended bool) map[readmode.Engine]readmode.Extractor {
		return newExtractors(extended, logger)
	}

	if needsDB(cmd, cli) {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set READMODE_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.ArticleService = sqlite.NewArticleService(m.DB)
		deps.Articles = m.ArticleService
	}

	return kongCtx.Run(deps)
}

// needsDB reports whether the parsed command touches the article store.
func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "list", "show", "delete":
		return true
	case "batch":
		return !cli.Batch.NoStore
	case "extract":
		return cli.Extract.Save
	}
	return false
}

// newExtractors builds one logging extractor per engine.
func newExtractors(extended bool, logger *slog.Logger) map[readmode.Engine]readmode.Extractor {
	native := goquery.NewExtractor(
		goquery.WithExtendedScoring(extended),
		goquery.WithLogger(logger),
	)
	return map[readmode.Engine]readmode.Extractor{
		readmode.EngineNative:      rmslog.NewLoggingExtractor(native, readmode.EngineNative, logger),
		readmode.EngineReadability: rmslog.NewLoggingExtractor(readability.NewExtractor(), readmode.EngineReadability, logger),
		readmode.EngineTrafilatura: rmslog.NewLoggingExtractor(trafilatura.NewExtractor(), readmode.EngineTrafilatura, logger),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "readmode.db"
	}
	dir := filepath.Join(home, ".readmode")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "readmode.db")
}
