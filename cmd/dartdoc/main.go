package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/archive"
	"github.com/fwojciec/dartdoc/excelize"
	"github.com/fwojciec/dartdoc/fs"
	"github.com/fwojciec/dartdoc/goquery"
	"github.com/fwojciec/dartdoc/html"
	darthttp "github.com/fwojciec/dartdoc/http"
	"github.com/fwojciec/dartdoc/report"
	dartslog "github.com/fwojciec/dartdoc/slog"
	"github.com/fwojciec/dartdoc/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Cache directory used with --store=fs.
	CacheDir string

	// SQLite database used by the sqlite report store.
	DB *sqlite.DB

	// Services for end-to-end testing. When nil, Run wires the OpenDART
	// client and the configured store.
	Fetcher dartdoc.ReportFetcher
	Reports dartdoc.ReportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		CacheDir: defaultCacheDir(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Errors are reported on
// stderr before being returned.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", errorMessage(err))
		}
	}()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("dartdoc"),
		kong.Description("Extract sections, tables and values from DART filings."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return dartdoc.Errorf(dartdoc.EINVALID, "no command specified. Run 'dartdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	var tables dartdoc.TableParser
	if cli.Parser == "goquery" {
		tables = goquery.NewTableParser()
	}
	loader := &report.Loader{
		Unpacker:    archive.NewUnpacker(),
		Extractor:   dartslog.NewLoggingExtractor(html.NewExtractor(tables), logger),
		Concurrency: cli.Concurrency,
	}
	deps.Loader = loader

	// Local extraction needs neither the store nor the API.
	if cmd == "extract" {
		return kongCtx.Run(deps)
	}

	reports, err := m.openReports(cli, stderr)
	if err != nil {
		return err
	}
	defer m.Close()
	deps.Reports = dartslog.NewLoggingReportService(reports, logger)

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = darthttp.NewClient(cli.APIKey,
			darthttp.WithTimeout(cli.Timeout),
			darthttp.WithRateLimit(cli.RPS),
			darthttp.WithRetryLogger(func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			}),
		)
	}
	loader.Fetcher = dartslog.NewLoggingFetcher(fetcher, logger)
	loader.Reports = deps.Reports

	deps.OpenWorkbook = func(path string) (Workbook, error) {
		return excelize.Open(path)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openReports(cli *CLI, stderr io.Writer) (dartdoc.ReportService, error) {
	if m.Reports != nil {
		return m.Reports, nil
	}

	if cli.Store == "fs" {
		dir := m.CacheDir
		if cli.CacheDir != "" {
			dir = cli.CacheDir
		}
		return fs.NewReportService(dir), nil
	}

	path := m.DBPath
	if cli.DB != "" {
		path = cli.DB
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DARTDOC_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewReportService(m.DB), nil
}

// errorMessage returns the user-facing message of err. Application errors
// carry their own message; other errors are printed as is.
func errorMessage(err error) string {
	var e *dartdoc.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dartdoc.db"
	}
	dir := filepath.Join(home, ".dartdoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "dartdoc.db")
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dartdoc-cache"
	}
	return filepath.Join(home, ".dartdoc", "reports")
}
