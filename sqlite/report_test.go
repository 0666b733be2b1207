package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newReport(receiptNo string) *dartdoc.Report {
	tree := dartdoc.NewDocumentTree()
	tree.Set("공모개요", &dartdoc.SectionContent{
		Paragraphs: []dartdoc.Paragraph{{"첫 문장."}},
		Tables:     []dartdoc.Table{{{"증권수량"}, {"1,000,000"}}},
	})
	tree.Set("기타위험", &dartdoc.SectionContent{})
	return &dartdoc.Report{ReceiptNo: receiptNo, Tree: tree}
}

func TestReportService_CreateReport(t *testing.T) {
	t.Parallel()

	t.Run("stores report and assigns fields", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(openDB(t))
		report := newReport("20251121000355")

		err := svc.CreateReport(context.Background(), report)

		require.NoError(t, err)
		assert.NotEmpty(t, report.ID)
		assert.NotEmpty(t, report.ContentHash)
		assert.False(t, report.FetchedAt.IsZero())
	})

	t.Run("round trips tree in order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(openDB(t))
		require.NoError(t, svc.CreateReport(context.Background(), newReport("20251121000355")))

		got, err := svc.FindReportByReceipt(context.Background(), "20251121000355")

		require.NoError(t, err)
		assert.Equal(t, []string{"공모개요", "기타위험"}, got.Tree.Keys())
		section, ok := got.Tree.Section("공모개요")
		require.True(t, ok)
		assert.Equal(t, dartdoc.Table{{"증권수량"}, {"1,000,000"}}, section.Tables[0])
	})

	t.Run("replaces report with same receipt", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(openDB(t))
		require.NoError(t, svc.CreateReport(context.Background(), newReport("20251121000355")))

		updated := newReport("20251121000355")
		updated.Tree.Set("추가", &dartdoc.SectionContent{})
		require.NoError(t, svc.CreateReport(context.Background(), updated))

		reports, err := svc.FindReports(context.Background(), dartdoc.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, 3, reports[0].Tree.Len())
	})

	t.Run("rejects invalid report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(openDB(t))

		err := svc.CreateReport(context.Background(), newReport("bad"))

		assert.Equal(t, dartdoc.EINVALID, dartdoc.ErrorCode(err))
	})
}

func TestReportService_FindReportByReceipt_NotFound(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewReportService(openDB(t))

	_, err := svc.FindReportByReceipt(context.Background(), "20251121000355")

	assert.Equal(t, dartdoc.ENOTFOUND, dartdoc.ErrorCode(err))
}

func TestReportService_FindReports(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewReportService(openDB(t))
	base := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)
	for i, receipt := range []string{"20251107000522", "20251110000199", "20251121000355"} {
		r := newReport(receipt)
		r.FetchedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, svc.CreateReport(context.Background(), r))
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		reports, err := svc.FindReports(context.Background(), dartdoc.ReportFilter{})

		require.NoError(t, err)
		require.Len(t, reports, 3)
		assert.Equal(t, "20251121000355", reports[0].ReceiptNo)
		assert.Equal(t, "20251107000522", reports[2].ReceiptNo)
		assert.True(t, base.Add(2*time.Hour).Equal(reports[0].FetchedAt))
	})

	t.Run("filters by receipt", func(t *testing.T) {
		t.Parallel()

		receipt := "20251110000199"
		reports, err := svc.FindReports(context.Background(), dartdoc.ReportFilter{ReceiptNo: &receipt})

		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, receipt, reports[0].ReceiptNo)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		reports, err := svc.FindReports(context.Background(), dartdoc.ReportFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "20251110000199", reports[0].ReceiptNo)
	})
}

func TestReportService_FindReceipts(t *testing.T) {
	t.Parallel()

	t.Run("lists receipts in ascending order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(openDB(t))
		for _, receipt := range []string{"20251121000355", "20251107000522", "20251110000199"} {
			require.NoError(t, svc.CreateReport(context.Background(), newReport(receipt)))
		}

		receipts, err := svc.FindReceipts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"20251107000522", "20251110000199", "20251121000355"}, receipts)
	})

	t.Run("empty store", func(t *testing.T) {
		t.Parallel()

		receipts, err := sqlite.NewReportService(openDB(t)).FindReceipts(context.Background())

		require.NoError(t, err)
		assert.Empty(t, receipts)
	})
}

func TestReportService_DeleteReport(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(openDB(t))
		require.NoError(t, svc.CreateReport(context.Background(), newReport("20251121000355")))

		require.NoError(t, svc.DeleteReport(context.Background(), "20251121000355"))

		_, err := svc.FindReportByReceipt(context.Background(), "20251121000355")
		assert.Equal(t, dartdoc.ENOTFOUND, dartdoc.ErrorCode(err))
	})

	t.Run("returns not found for missing report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(openDB(t))

		err := svc.DeleteReport(context.Background(), "20251121000355")

		assert.Equal(t, dartdoc.ENOTFOUND, dartdoc.ErrorCode(err))
	})
}
