package mock

import "github.com/fwojciec/dartdoc"

var _ dartdoc.SheetWriter = (*SheetWriter)(nil)

// SheetWriter is a mock implementation of dartdoc.SheetWriter.
type SheetWriter struct {
	ClearSheetFn func(sheet string) error
	WriteValueFn func(sheet string, row, col int, value dartdoc.Node) error
	SaveFn       func() error
}

func (w *SheetWriter) ClearSheet(sheet string) error {
	return w.ClearSheetFn(sheet)
}

func (w *SheetWriter) WriteValue(sheet string, row, col int, value dartdoc.Node) error {
	return w.WriteValueFn(sheet, row, col, value)
}

func (w *SheetWriter) Save() error {
	return w.SaveFn()
}
