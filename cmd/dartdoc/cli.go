package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/report"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Reports dartdoc.ReportService
	Loader  *report.Loader

	// OpenWorkbook opens the spreadsheet written by the run command.
	OpenWorkbook func(path string) (Workbook, error)
}

// Workbook is a spreadsheet that can be closed after saving.
type Workbook interface {
	dartdoc.SheetWriter
	io.Closer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	APIKey      string        `name:"api-key" env:"DART_API_KEY" help:"OpenDART API key"`
	DB          string        `name:"db" env:"DARTDOC_DB" help:"SQLite database path"`
	Store       string        `enum:"sqlite,fs" default:"sqlite" help:"Report cache backend (sqlite, fs)"`
	CacheDir    string        `name:"cache-dir" help:"Report directory for --store=fs"`
	Parser      string        `enum:"tokenizer,goquery" default:"tokenizer" help:"Table parser (tokenizer, goquery)"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent report downloads"`
	RPS         float64       `name:"rps" default:"2" help:"OpenDART requests per second"`
	Timeout     time.Duration `default:"30s" help:"Timeout for a single request"`
	Verbose     bool          `short:"v" help:"Log debug output"`

	Fetch    FetchCmd    `cmd:"" help:"Download and cache reports"`
	Sections SectionsCmd `cmd:"" help:"List the sections of a report"`
	Search   SearchCmd   `cmd:"" help:"Search a report for keywords"`
	Lookup   LookupCmd   `cmd:"" help:"Look up values in a report table"`
	Extract  ExtractCmd  `cmd:"" help:"Extract a local report file as JSON"`
	Run      RunCmd      `cmd:"" help:"Evaluate recipes and export them to a workbook"`
	List     ListCmd     `cmd:"" help:"List cached reports"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a cached report"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Receipts []string `arg:"" name:"receipt" help:"Receipt numbers"`
	Refresh  bool     `help:"Download again even if cached"`
}

// SectionsCmd is the "sections" subcommand.
type SectionsCmd struct {
	Receipt string `arg:"" help:"Receipt number"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Receipt string   `arg:"" help:"Receipt number"`
	Section []string `short:"s" help:"Restrict to sections matching keyword (repeatable)"`
	Include []string `short:"i" help:"Keyword to include (repeatable)"`
	Exclude []string `short:"x" help:"Keyword to exclude (repeatable)"`
	Exact   bool     `short:"e" help:"Match whole values instead of substrings"`
	Parent  int      `short:"p" help:"Return the ancestor this many levels above each match"`
	Tables  bool     `short:"t" help:"Search each table separately"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Receipt string   `arg:"" help:"Receipt number"`
	Section []string `short:"s" help:"Restrict to sections matching keyword (repeatable)"`
	Table   []string `required:"" help:"Keyword identifying the table (repeatable)"`
	Column  []string `help:"Header keyword (repeatable)"`
	Row     []string `help:"Row label keyword (repeatable)"`
	Index   int      `help:"Index among matching tables"`
	Exact   bool     `short:"e" help:"Match row and column keys exactly"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File string `arg:"" type:"existingfile" help:"Zip archive or decoded document"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Recipes  string   `arg:"" type:"existingfile" help:"Recipe YAML file"`
	Receipts []string `arg:"" name:"receipt" help:"Receipt numbers"`
	Out      string   `short:"o" default:"report.xlsx" help:"Workbook to write"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `short:"n" help:"Maximum number of reports to list"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Receipt string `arg:"" help:"Receipt number"`
}

// writeJSON prints n as indented JSON.
func writeJSON(w io.Writer, n dartdoc.Node) error {
	data, err := dartdoc.MarshalNode(n)
	if err != nil {
		return err
	}
	return writeIndented(w, data)
}

func writeIndented(w io.Writer, data []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func summary(tree *dartdoc.DocumentTree) string {
	return fmt.Sprintf("%d sections  %d tables", tree.Len(), tree.TableCount())
}
