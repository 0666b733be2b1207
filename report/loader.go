// Package report loads filings into document trees and evaluates
// extraction recipes over them. It coordinates fetching, unpacking,
// extraction and caching of reports.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of reports loaded in parallel.
const DefaultConcurrency = 4

// indexFPRate is the false positive rate of the cached receipt index.
const indexFPRate = 0.001

var zipMagic = []byte("PK\x03\x04")

// Loader turns receipt numbers into extracted reports, reading through
// the report cache when one is configured.
type Loader struct {
	Fetcher   dartdoc.ReportFetcher
	Unpacker  dartdoc.Unpacker
	Extractor dartdoc.Extractor
	Reports   dartdoc.ReportService

	// Refresh bypasses cached reports.
	Refresh     bool
	Concurrency int
	Now         func() time.Time
}

// ProgressEvent reports progress during a batch load.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	ReceiptNo string
	Report    *dartdoc.Report
	Error     error

	// Cached is the estimated number of cached reports, set when the
	// load starts.
	Cached int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting load progress.
type ProgressFunc func(event ProgressEvent)

// Failure records a receipt that could not be loaded.
type Failure struct {
	ReceiptNo string
	Err       error
}

// Result holds the outcome of a batch load.
type Result struct {
	// Reports holds loaded reports in input order.
	Reports []*dartdoc.Report
	Failed  []Failure
}

// Load returns the report of receiptNo from the cache, or fetches,
// extracts and caches it. A document without title markers is reported
// as ENOTFOUND.
func (l *Loader) Load(ctx context.Context, receiptNo string) (*dartdoc.Report, error) {
	return l.load(ctx, receiptNo, nil)
}

// load skips the cache lookup when index rules the receipt out.
func (l *Loader) load(ctx context.Context, receiptNo string, index *bloom.Filter) (*dartdoc.Report, error) {
	if !dartdoc.ValidReceiptNo(receiptNo) {
		return nil, dartdoc.Errorf(dartdoc.EINVALID, "invalid receipt number %q", receiptNo)
	}

	if l.Reports != nil && !l.Refresh && (index == nil || index.Test(receiptNo)) {
		report, err := l.Reports.FindReportByReceipt(ctx, receiptNo)
		if err == nil {
			return report, nil
		}
		if dartdoc.ErrorCode(err) != dartdoc.ENOTFOUND {
			return nil, fmt.Errorf("find cached report: %w", err)
		}
	}

	data, err := l.Fetcher.FetchReport(ctx, receiptNo)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	text, err := l.Unpacker.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack report: %w", err)
	}
	tree, err := l.Extractor.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("extract report: %w", err)
	}
	if tree == nil {
		return nil, dartdoc.Errorf(dartdoc.ENOTFOUND, "report %s has no structured sections", receiptNo)
	}

	report := &dartdoc.Report{
		ReceiptNo:   receiptNo,
		ContentHash: fmt.Sprintf("%016x", xxhash.Sum64String(text)),
		Tree:        tree,
		FetchedAt:   l.now(),
	}
	if l.Reports != nil {
		if err := l.Reports.CreateReport(ctx, report); err != nil {
			return nil, fmt.Errorf("save report: %w", err)
		}
	}
	return report, nil
}

// LoadAll loads receipts in parallel, skipping repeated receipt numbers.
// The cached receipts are indexed once up front, and receipts missing
// from the index are fetched without a cache lookup. Failures are
// collected in the result and reported through progress; an error is
// returned only when no report could be loaded.
func (l *Loader) LoadAll(ctx context.Context, receipts []string, progress ProgressFunc) (*Result, error) {
	receipts = unique(receipts)
	total := len(receipts)

	index, err := l.index(ctx)
	if err != nil {
		return nil, err
	}

	concurrency := l.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type loadResult struct {
		position int
		report   *dartdoc.Report
		err      error
	}
	resultCh := make(chan loadResult, total)

	if progress != nil {
		event := ProgressEvent{Type: ProgressStarted, Total: total}
		if index != nil {
			event.Cached = int(index.EstimatedCount())
		}
		progress(event)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, receipt := range receipts {
			g.Go(func() error {
				report, err := l.load(gctx, receipt, index)
				resultCh <- loadResult{position: i, report: report, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	reports := make([]*dartdoc.Report, total)
	errs := make([]error, total)
	var completed int
	for res := range resultCh {
		completed++
		reports[res.position], errs[res.position] = res.report, res.err
		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			ReceiptNo: receipts[res.position],
			Report:    res.report,
		}
		if res.err != nil {
			event.Type = ProgressFailed
			event.Error = res.err
		}
		progress(event)
	}

	result := &Result{}
	var firstErr error
	for i, report := range reports {
		if errs[i] != nil {
			result.Failed = append(result.Failed, Failure{ReceiptNo: receipts[i], Err: errs[i]})
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		result.Reports = append(result.Reports, report)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if len(result.Reports) == 0 && firstErr != nil {
		return result, firstErr
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// LoadFile extracts a local file: a zip archive as served by OpenDART or
// an already decoded UTF-8 document. The cache is not consulted.
func (l *Loader) LoadFile(path string) (*dartdoc.DocumentTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var text string
	switch {
	case bytes.HasPrefix(data, zipMagic):
		text, err = l.Unpacker.Unpack(data)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", path, err)
		}
	case utf8.Valid(data):
		text = string(data)
	default:
		return nil, dartdoc.Errorf(dartdoc.EINVALID, "%s is neither a zip archive nor UTF-8 text", path)
	}

	tree, err := l.Extractor.Extract(text)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	if tree == nil {
		return nil, dartdoc.Errorf(dartdoc.ENOTFOUND, "%s has no structured sections", path)
	}
	return tree, nil
}

// index returns a filter of cached receipt numbers, or nil when the
// cache is not read.
func (l *Loader) index(ctx context.Context) (*bloom.Filter, error) {
	if l.Reports == nil || l.Refresh {
		return nil, nil
	}
	cached, err := l.Reports.FindReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("index cached reports: %w", err)
	}
	return bloom.NewIndex(cached, indexFPRate), nil
}

// unique returns items without repeats, keeping first occurrences in
// order.
func unique(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (l *Loader) now() time.Time {
	if l.Now != nil {
		return l.Now().UTC()
	}
	return time.Now().UTC()
}
