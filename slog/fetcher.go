// Package slog provides logging decorators for dartdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dartdoc"
)

// Ensure LoggingFetcher implements dartdoc.ReportFetcher.
var _ dartdoc.ReportFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a ReportFetcher with logging.
type LoggingFetcher struct {
	next   dartdoc.ReportFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next dartdoc.ReportFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchReport delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) FetchReport(ctx context.Context, receiptNo string) (data []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Info("report fetch",
			"receipt", receiptNo,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.FetchReport(ctx, receiptNo)
}
