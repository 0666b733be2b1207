package main

import (
	"fmt"

	"github.com/fwojciec/dartdoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !dartdoc.ValidReceiptNo(c.Receipt) {
		return dartdoc.Errorf(dartdoc.EINVALID, "invalid receipt number %q", c.Receipt)
	}
	if err := deps.Reports.DeleteReport(deps.Ctx, c.Receipt); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.Receipt)
	return nil
}
