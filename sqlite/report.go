package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/dartdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ dartdoc.ReportService = (*ReportService)(nil)

// ReportService implements dartdoc.ReportService using SQLite. Trees are
// stored as ordered JSON.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport inserts a report or replaces the report with the same
// receipt number.
func (s *ReportService) CreateReport(ctx context.Context, report *dartdoc.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	tree, err := json.Marshal(report.Tree)
	if err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.FetchedAt.IsZero() {
		report.FetchedAt = time.Now().UTC()
	}
	if report.ContentHash == "" {
		report.ContentHash = hashContent(tree)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO reports (id, receipt_no, content_hash, tree, section_count, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(receipt_no) DO UPDATE SET
			id = excluded.id,
			content_hash = excluded.content_hash,
			tree = excluded.tree,
			section_count = excluded.section_count,
			fetched_at = excluded.fetched_at
	`, report.ID, report.ReceiptNo, report.ContentHash, string(tree), report.Tree.Len(),
		report.FetchedAt.UTC().Format(time.RFC3339))

	return err
}

// FindReportByReceipt retrieves a report by receipt number.
func (s *ReportService) FindReportByReceipt(ctx context.Context, receiptNo string) (*dartdoc.Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, receipt_no, content_hash, tree, fetched_at
		FROM reports
		WHERE receipt_no = ?
	`, receiptNo)

	report, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dartdoc.Errorf(dartdoc.ENOTFOUND, "report %s not found", receiptNo)
	}
	return report, err
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter dartdoc.ReportFilter) ([]*dartdoc.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, receipt_no, content_hash, tree, fetched_at FROM reports WHERE 1=1")

	if filter.ReceiptNo != nil {
		query.WriteString(" AND receipt_no = ?")
		args = append(args, *filter.ReceiptNo)
	}

	query.WriteString(" ORDER BY fetched_at DESC, receipt_no DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*dartdoc.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// FindReceipts returns the receipt numbers of all stored reports in
// ascending order.
func (s *ReportService) FindReceipts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT receipt_no FROM reports ORDER BY receipt_no")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []string
	for rows.Next() {
		var receiptNo string
		if err := rows.Scan(&receiptNo); err != nil {
			return nil, err
		}
		receipts = append(receipts, receiptNo)
	}

	return receipts, rows.Err()
}

// DeleteReport permanently removes a report.
func (s *ReportService) DeleteReport(ctx context.Context, receiptNo string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE receipt_no = ?", receiptNo)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return dartdoc.Errorf(dartdoc.ENOTFOUND, "report %s not found", receiptNo)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (*dartdoc.Report, error) {
	var report dartdoc.Report
	var tree, fetchedAt string

	if err := row.Scan(&report.ID, &report.ReceiptNo, &report.ContentHash, &tree, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	report.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	report.Tree = dartdoc.NewDocumentTree()
	if err := json.Unmarshal([]byte(tree), report.Tree); err != nil {
		return nil, fmt.Errorf("failed to decode tree of %s: %w", report.ReceiptNo, err)
	}

	return &report, nil
}
