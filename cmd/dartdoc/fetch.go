package main

import (
	"fmt"

	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/report"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	deps.Loader.Refresh = c.Refresh

	result, err := deps.Loader.LoadAll(deps.Ctx, c.Receipts, func(e report.ProgressEvent) {
		if e.Type == report.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", e.ReceiptNo, errorMessage(e.Error))
		}
	})
	if err != nil {
		return err
	}

	for _, r := range result.Reports {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", r.ReceiptNo, summary(r.Tree))
	}

	if len(result.Failed) > 0 {
		return dartdoc.Errorf(dartdoc.EUNAVAILABLE, "%d of %d reports failed to load",
			len(result.Failed), len(result.Failed)+len(result.Reports))
	}
	return nil
}
