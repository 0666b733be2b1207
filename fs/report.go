// Package fs provides a file-based cache of extracted reports.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/dartdoc"
	"github.com/google/uuid"
)

// Ensure ReportService implements dartdoc.ReportService at compile time.
var _ dartdoc.ReportService = (*ReportService)(nil)

// ReportService stores each report as an indented JSON file named after
// its receipt number. Files are written to a temporary name and renamed
// into place.
type ReportService struct {
	dir string
}

// NewReportService creates a ReportService rooted at dir. The directory
// is created on first write.
func NewReportService(dir string) *ReportService {
	return &ReportService{dir: dir}
}

func (s *ReportService) path(receiptNo string) string {
	return filepath.Join(s.dir, receiptNo+".json")
}

// CreateReport writes the report, replacing any earlier file.
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
		report.ContentHash = fmt.Sprintf("%016x", xxhash.Sum64(tree))
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, report.ReceiptNo+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path(report.ReceiptNo)); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// FindReportByReceipt reads the report file of receiptNo.
func (s *ReportService) FindReportByReceipt(ctx context.Context, receiptNo string) (*dartdoc.Report, error) {
	if !dartdoc.ValidReceiptNo(receiptNo) {
		return nil, dartdoc.Errorf(dartdoc.EINVALID, "invalid receipt number %q", receiptNo)
	}
	return s.read(s.path(receiptNo), receiptNo)
}

func (s *ReportService) read(path, receiptNo string) (*dartdoc.Report, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, dartdoc.Errorf(dartdoc.ENOTFOUND, "report %s not found", receiptNo)
	}
	if err != nil {
		return nil, err
	}

	report := &dartdoc.Report{Tree: dartdoc.NewDocumentTree()}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return report, nil
}

// FindReports reads all report files matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter dartdoc.ReportFilter) ([]*dartdoc.Report, error) {
	if filter.ReceiptNo != nil {
		report, err := s.FindReportByReceipt(ctx, *filter.ReceiptNo)
		if dartdoc.ErrorCode(err) == dartdoc.ENOTFOUND {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return paginate([]*dartdoc.Report{report}, filter), nil
	}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var reports []*dartdoc.Report
	for _, e := range entries {
		receiptNo, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || !dartdoc.ValidReceiptNo(receiptNo) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := s.read(filepath.Join(s.dir, e.Name()), receiptNo)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if !reports[i].FetchedAt.Equal(reports[j].FetchedAt) {
			return reports[i].FetchedAt.After(reports[j].FetchedAt)
		}
		return reports[i].ReceiptNo > reports[j].ReceiptNo
	})
	return paginate(reports, filter), nil
}

// FindReceipts lists the receipt numbers of report files in ascending
// order without reading them.
func (s *ReportService) FindReceipts(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var receipts []string
	for _, e := range entries {
		receiptNo, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || !dartdoc.ValidReceiptNo(receiptNo) {
			continue
		}
		receipts = append(receipts, receiptNo)
	}
	return receipts, nil
}

func paginate(reports []*dartdoc.Report, filter dartdoc.ReportFilter) []*dartdoc.Report {
	if filter.Offset > 0 {
		if filter.Offset >= len(reports) {
			return nil
		}
		reports = reports[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(reports) {
		reports = reports[:filter.Limit]
	}
	return reports
}

// DeleteReport removes the report file of receiptNo.
func (s *ReportService) DeleteReport(ctx context.Context, receiptNo string) error {
	if !dartdoc.ValidReceiptNo(receiptNo) {
		return dartdoc.Errorf(dartdoc.EINVALID, "invalid receipt number %q", receiptNo)
	}
	err := os.Remove(s.path(receiptNo))
	if errors.Is(err, os.ErrNotExist) {
		return dartdoc.Errorf(dartdoc.ENOTFOUND, "report %s not found", receiptNo)
	}
	return err
}
