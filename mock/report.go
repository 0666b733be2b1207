package mock

import (
	"context"

	"github.com/fwojciec/dartdoc"
)

var _ dartdoc.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of dartdoc.ReportService.
type ReportService struct {
	CreateReportFn        func(ctx context.Context, report *dartdoc.Report) error
	FindReportByReceiptFn func(ctx context.Context, receiptNo string) (*dartdoc.Report, error)
	FindReportsFn         func(ctx context.Context, filter dartdoc.ReportFilter) ([]*dartdoc.Report, error)
	FindReceiptsFn        func(ctx context.Context) ([]string, error)
	DeleteReportFn        func(ctx context.Context, receiptNo string) error
}

func (s *ReportService) CreateReport(ctx context.Context, report *dartdoc.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReportByReceipt(ctx context.Context, receiptNo string) (*dartdoc.Report, error) {
	return s.FindReportByReceiptFn(ctx, receiptNo)
}

func (s *ReportService) FindReports(ctx context.Context, filter dartdoc.ReportFilter) ([]*dartdoc.Report, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) FindReceipts(ctx context.Context) ([]string, error) {
	return s.FindReceiptsFn(ctx)
}

func (s *ReportService) DeleteReport(ctx context.Context, receiptNo string) error {
	return s.DeleteReportFn(ctx, receiptNo)
}
