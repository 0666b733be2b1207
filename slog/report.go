package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dartdoc"
)

// Ensure LoggingReportService implements dartdoc.ReportService.
var _ dartdoc.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with debug logging of cache
// lookups and saves.
type LoggingReportService struct {
	next   dartdoc.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next dartdoc.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

// CreateReport delegates to the wrapped service and logs the save.
func (s *LoggingReportService) CreateReport(ctx context.Context, report *dartdoc.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("report save",
			"receipt", report.ReceiptNo,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, report)
}

// FindReportByReceipt delegates to the wrapped service and logs whether
// the report was cached.
func (s *LoggingReportService) FindReportByReceipt(ctx context.Context, receiptNo string) (report *dartdoc.Report, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"receipt", receiptNo,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if err != nil && dartdoc.ErrorCode(err) != dartdoc.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("report lookup", attrs...)
	}(time.Now())
	return s.next.FindReportByReceipt(ctx, receiptNo)
}

// FindReports delegates to the wrapped service.
func (s *LoggingReportService) FindReports(ctx context.Context, filter dartdoc.ReportFilter) ([]*dartdoc.Report, error) {
	return s.next.FindReports(ctx, filter)
}

// FindReceipts delegates to the wrapped service and logs the number of
// stored reports.
func (s *LoggingReportService) FindReceipts(ctx context.Context) (receipts []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("report index",
			"count", len(receipts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindReceipts(ctx)
}

// DeleteReport delegates to the wrapped service.
func (s *LoggingReportService) DeleteReport(ctx context.Context, receiptNo string) error {
	return s.next.DeleteReport(ctx, receiptNo)
}
