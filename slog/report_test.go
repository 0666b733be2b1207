package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/mock"
	dartslog "github.com/fwojciec/dartdoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingReportService(t *testing.T) {
	t.Parallel()

	t.Run("logs cache hit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ReportService{
			FindReportByReceiptFn: func(_ context.Context, receiptNo string) (*dartdoc.Report, error) {
				return &dartdoc.Report{ReceiptNo: receiptNo}, nil
			},
		}

		s := dartslog.NewLoggingReportService(inner, debugLogger(&buf))
		report, err := s.FindReportByReceipt(context.Background(), "20240312000736")

		require.NoError(t, err)
		assert.Equal(t, "20240312000736", report.ReceiptNo)
		assert.Contains(t, buf.String(), "report lookup")
		assert.Contains(t, buf.String(), "hit=true")
	})

	t.Run("logs cache miss without error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ReportService{
			FindReportByReceiptFn: func(_ context.Context, _ string) (*dartdoc.Report, error) {
				return nil, dartdoc.Errorf(dartdoc.ENOTFOUND, "report not found")
			},
		}

		s := dartslog.NewLoggingReportService(inner, debugLogger(&buf))
		_, err := s.FindReportByReceipt(context.Background(), "20240312000736")

		assert.Equal(t, dartdoc.ENOTFOUND, dartdoc.ErrorCode(err))
		assert.Contains(t, buf.String(), "hit=false")
		assert.NotContains(t, buf.String(), "err=")
	})

	t.Run("logs save error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ReportService{
			CreateReportFn: func(_ context.Context, _ *dartdoc.Report) error {
				return errors.New("disk full")
			},
		}

		s := dartslog.NewLoggingReportService(inner, debugLogger(&buf))
		err := s.CreateReport(context.Background(), &dartdoc.Report{ReceiptNo: "20240312000736"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "report save")
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})

	t.Run("logs index size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ReportService{
			FindReceiptsFn: func(_ context.Context) ([]string, error) {
				return []string{"20240312000736", "20240312000737"}, nil
			},
		}

		s := dartslog.NewLoggingReportService(inner, debugLogger(&buf))
		receipts, err := s.FindReceipts(context.Background())

		require.NoError(t, err)
		assert.Len(t, receipts, 2)
		assert.Contains(t, buf.String(), "report index")
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("delegates list and delete", func(t *testing.T) {
		t.Parallel()

		var deleted string
		inner := &mock.ReportService{
			FindReportsFn: func(_ context.Context, _ dartdoc.ReportFilter) ([]*dartdoc.Report, error) {
				return []*dartdoc.Report{{ReceiptNo: "20240312000736"}}, nil
			},
			DeleteReportFn: func(_ context.Context, receiptNo string) error {
				deleted = receiptNo
				return nil
			},
		}

		var buf bytes.Buffer
		s := dartslog.NewLoggingReportService(inner, debugLogger(&buf))

		reports, err := s.FindReports(context.Background(), dartdoc.ReportFilter{})
		require.NoError(t, err)
		assert.Len(t, reports, 1)
		require.NoError(t, s.DeleteReport(context.Background(), "20240312000736"))
		assert.Equal(t, "20240312000736", deleted)
	})
}
