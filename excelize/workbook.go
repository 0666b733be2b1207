// Package excelize implements dartdoc.SheetWriter on top of xlsx workbooks.
package excelize

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/dartdoc"
	"github.com/xuri/excelize/v2"
)

// Ensure Workbook implements dartdoc.SheetWriter.
var _ dartdoc.SheetWriter = (*Workbook)(nil)

// Workbook writes query results into an xlsx file.
type Workbook struct {
	path string
	file *excelize.File

	// placeholder names a sheet that only exists because a workbook cannot
	// be empty. It is removed once another sheet is created.
	placeholder string
}

// Open opens the workbook at path, or starts a new one if the file does
// not exist. Nothing is written until Save.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if errors.Is(err, os.ErrNotExist) {
		f = excelize.NewFile()
		return &Workbook{path: path, file: f, placeholder: f.GetSheetName(0)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{path: path, file: f}, nil
}

// ClearSheet replaces sheet with an empty sheet of the same name.
func (w *Workbook) ClearSheet(sheet string) error {
	idx, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return dartdoc.Errorf(dartdoc.EINVALID, "invalid sheet name %q", sheet)
	}
	if idx != -1 {
		if len(w.file.GetSheetList()) == 1 {
			w.placeholder = "_" + sheet
			if _, err := w.file.NewSheet(w.placeholder); err != nil {
				return fmt.Errorf("clear sheet: %w", err)
			}
		}
		if err := w.file.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("clear sheet: %w", err)
		}
	}
	if _, err := w.file.NewSheet(sheet); err != nil {
		return dartdoc.Errorf(dartdoc.EINVALID, "invalid sheet name %q: %v", sheet, err)
	}
	if w.placeholder != "" && w.placeholder != sheet {
		if err := w.file.DeleteSheet(w.placeholder); err != nil {
			return fmt.Errorf("clear sheet: %w", err)
		}
		w.placeholder = ""
	}
	w.file.SetActiveSheet(0)
	return nil
}

// WriteValue writes value with its top-left cell at (row, col), both
// 1-based. A Leaf fills one cell, a flat Sequence fills one row and a
// Sequence of Sequences fills one row per item. Mappings are written as
// JSON text.
func (w *Workbook) WriteValue(sheet string, row, col int, value dartdoc.Node) error {
	if row < 1 || col < 1 {
		return dartdoc.Errorf(dartdoc.EINVALID, "cell (%d, %d) out of range", row, col)
	}
	seq, ok := value.(dartdoc.Sequence)
	if !ok {
		return w.setCell(sheet, row, col, value)
	}
	if !nested(seq) {
		return w.writeRow(sheet, row, col, seq)
	}
	for i, item := range seq {
		items, ok := item.(dartdoc.Sequence)
		if !ok {
			items = dartdoc.Sequence{item}
		}
		if err := w.writeRow(sheet, row+i, col, items); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to its path.
func (w *Workbook) Save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Close releases resources held by the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func (w *Workbook) writeRow(sheet string, row, col int, items dartdoc.Sequence) error {
	for i, item := range items {
		if err := w.setCell(sheet, row, col+i, item); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) setCell(sheet string, row, col int, value dartdoc.Node) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return dartdoc.Errorf(dartdoc.EINVALID, "cell (%d, %d) out of range", row, col)
	}
	text, err := cellText(value)
	if err != nil {
		return err
	}
	if err := w.file.SetCellValue(sheet, cell, text); err != nil {
		return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func cellText(n dartdoc.Node) (string, error) {
	if leaf, ok := n.(dartdoc.Leaf); ok {
		return string(leaf), nil
	}
	data, err := dartdoc.MarshalNode(n)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func nested(seq dartdoc.Sequence) bool {
	for _, item := range seq {
		if _, ok := item.(dartdoc.Sequence); ok {
			return true
		}
	}
	return false
}
