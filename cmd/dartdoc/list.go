package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/dartdoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	reports, err := deps.Reports.FindReports(deps.Ctx, dartdoc.ReportFilter{Limit: c.Limit})
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports cached. Use 'dartdoc fetch' to download one.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.ReceiptNo, r.FetchedAt.Local().Format(time.DateTime), summary(r.Tree))
	}
	return nil
}
