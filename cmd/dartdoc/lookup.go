package main

import "github.com/fwojciec/dartdoc"

// Run executes the lookup command. A row and a column together address
// single cells.
func (c *LookupCmd) Run(deps *Dependencies) error {
	lookup := &dartdoc.Lookup{Exact: c.Exact, ColumnExact: c.Exact}
	switch {
	case len(c.Row) > 0 && len(c.Column) > 0:
		lookup.Kind, lookup.Keys, lookup.ColumnKeys = dartdoc.LookupByCell, c.Row, c.Column
	case len(c.Row) > 0:
		lookup.Kind, lookup.Keys = dartdoc.LookupByRow, c.Row
	case len(c.Column) > 0:
		lookup.Kind, lookup.Keys = dartdoc.LookupByColumn, c.Column
	default:
		return dartdoc.Errorf(dartdoc.EINVALID, "lookup requires --row or --column")
	}

	recipe := &dartdoc.Recipe{
		Name:       "lookup",
		Sections:   c.Section,
		Tables:     &dartdoc.Query{Include: c.Table},
		TableIndex: c.Index,
		Lookup:     lookup,
	}
	if err := recipe.Validate(); err != nil {
		return err
	}

	r, err := deps.Loader.Load(deps.Ctx, c.Receipt)
	if err != nil {
		return err
	}
	value, err := recipe.Apply(r.Tree)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, value)
}
