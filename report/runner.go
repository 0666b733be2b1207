package report

import (
	"context"
	"fmt"

	"github.com/fwojciec/dartdoc"
)

// Runner evaluates recipes over a batch of reports and writes the values
// to a spreadsheet, one sheet per receipt.
type Runner struct {
	Loader   *Loader
	Sheets   dartdoc.SheetWriter
	Progress ProgressFunc
}

// Run loads receipts and writes every recipe as a row: the recipe name
// in column 1 and its value from column 2. Values spanning several rows
// push the following recipes down. Receipts that fail to load get no
// sheet and are listed in the result.
func (r *Runner) Run(ctx context.Context, receipts []string, recipes []dartdoc.Recipe) (*Result, error) {
	for i := range recipes {
		if err := recipes[i].Validate(); err != nil {
			return nil, err
		}
	}

	result, err := r.Loader.LoadAll(ctx, receipts, r.Progress)
	if err != nil {
		return result, err
	}

	for _, report := range result.Reports {
		if err := r.writeSheet(report, recipes); err != nil {
			return result, err
		}
	}

	if err := r.Sheets.Save(); err != nil {
		return result, fmt.Errorf("save workbook: %w", err)
	}
	return result, nil
}

func (r *Runner) writeSheet(report *dartdoc.Report, recipes []dartdoc.Recipe) error {
	sheet := report.ReceiptNo
	if err := r.Sheets.ClearSheet(sheet); err != nil {
		return fmt.Errorf("clear sheet %s: %w", sheet, err)
	}

	row := 1
	for i := range recipes {
		recipe := &recipes[i]
		value, err := recipe.Apply(report.Tree)
		if err != nil {
			return fmt.Errorf("recipe %q on %s: %w", recipe.Name, sheet, err)
		}
		if err := r.Sheets.WriteValue(sheet, row, 1, dartdoc.Leaf(recipe.Name)); err != nil {
			return fmt.Errorf("write %s: %w", sheet, err)
		}
		if value != nil {
			if err := r.Sheets.WriteValue(sheet, row, 2, value); err != nil {
				return fmt.Errorf("write %s: %w", sheet, err)
			}
		}
		row += rowsSpanned(value)
	}
	return nil
}

// rowsSpanned returns the number of sheet rows a value occupies.
func rowsSpanned(n dartdoc.Node) int {
	seq, ok := n.(dartdoc.Sequence)
	if !ok || len(seq) == 0 {
		return 1
	}
	for _, item := range seq {
		if _, ok := item.(dartdoc.Sequence); ok {
			return len(seq)
		}
	}
	return 1
}
