package main

import (
	"fmt"

	"github.com/fwojciec/dartdoc/report"
	"github.com/fwojciec/dartdoc/yaml"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	recipes, err := yaml.LoadRecipesFile(c.Recipes)
	if err != nil {
		return err
	}

	workbook, err := deps.OpenWorkbook(c.Out)
	if err != nil {
		return err
	}
	defer workbook.Close()

	runner := &report.Runner{
		Loader: deps.Loader,
		Sheets: workbook,
		Progress: func(e report.ProgressEvent) {
			if e.Type == report.ProgressFailed {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", e.ReceiptNo, errorMessage(e.Error))
			}
		},
	}
	result, err := runner.Run(deps.Ctx, c.Receipts, recipes)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d sheets with %d recipes to %s\n", len(result.Reports), len(recipes), c.Out)
	return nil
}
