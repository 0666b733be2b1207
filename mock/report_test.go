package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_ImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ dartdoc.ReportService = &mock.ReportService{}
}

func TestReportService_CreateReport(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CreateReportFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *dartdoc.Report
		s := &mock.ReportService{
			CreateReportFn: func(_ context.Context, r *dartdoc.Report) error {
				calledWith = r
				return nil
			},
		}

		report := &dartdoc.Report{ReceiptNo: "20251121000355", Tree: dartdoc.NewDocumentTree()}

		err := s.CreateReport(context.Background(), report)

		require.NoError(t, err)
		assert.Same(t, report, calledWith)
	})

	t.Run("returns error from CreateReportFn", func(t *testing.T) {
		t.Parallel()

		s := &mock.ReportService{
			CreateReportFn: func(context.Context, *dartdoc.Report) error {
				return dartdoc.Errorf(dartdoc.EINTERNAL, "boom")
			},
		}

		err := s.CreateReport(context.Background(), &dartdoc.Report{})

		assert.Equal(t, dartdoc.EINTERNAL, dartdoc.ErrorCode(err))
	})
}

func TestReportService_FindReceipts(t *testing.T) {
	t.Parallel()

	s := &mock.ReportService{
		FindReceiptsFn: func(context.Context) ([]string, error) {
			return []string{"20251121000355"}, nil
		},
	}

	receipts, err := s.FindReceipts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"20251121000355"}, receipts)
}
