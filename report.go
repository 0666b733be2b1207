package dartdoc

import (
	"context"
	"time"
)

// Report is an extracted filing identified by its receipt number.
type Report struct {
	ID          string        `json:"id"`
	ReceiptNo   string        `json:"receiptNo"`
	ContentHash string        `json:"contentHash"`
	Tree        *DocumentTree `json:"tree"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if !ValidReceiptNo(r.ReceiptNo) {
		return Errorf(EINVALID, "invalid receipt number %q", r.ReceiptNo)
	}
	if r.Tree == nil {
		return Errorf(EINVALID, "report tree required")
	}
	return nil
}

// ValidReceiptNo reports whether s is a 14 digit receipt number.
func ValidReceiptNo(s string) bool {
	if len(s) != 14 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ReportService represents a service for caching extracted reports.
type ReportService interface {
	// CreateReport stores a report, replacing any report with the same
	// receipt number. ID and FetchedAt are set when empty.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByReceipt retrieves a report by receipt number.
	// Returns ENOTFOUND if report does not exist.
	FindReportByReceipt(ctx context.Context, receiptNo string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// FindReceipts returns the receipt numbers of all stored reports.
	FindReceipts(ctx context.Context) ([]string, error)

	// DeleteReport permanently removes a report.
	// Returns ENOTFOUND if report does not exist.
	DeleteReport(ctx context.Context, receiptNo string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ReceiptNo *string `json:"receiptNo"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SheetWriter writes query results into a spreadsheet. Rows and columns
// are 1-based.
type SheetWriter interface {
	// ClearSheet empties the sheet, creating it if needed.
	ClearSheet(sheet string) error

	// WriteValue writes a leaf into one cell, a flat sequence across one
	// row and a sequence of sequences as a block of rows.
	WriteValue(sheet string, row, col int, value Node) error

	// Save persists the workbook.
	Save() error
}
