package main

import "github.com/fwojciec/dartdoc"

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	r, err := deps.Loader.Load(deps.Ctx, c.Receipt)
	if err != nil {
		return err
	}

	sections := dartdoc.SectionNodes(dartdoc.SearchSections(r.Tree, dartdoc.MatchConfig{Include: c.Section}))
	cfg := dartdoc.MatchConfig{Include: c.Include, Exclude: c.Exclude, Exact: c.Exact}

	results := dartdoc.Sequence{}
	if c.Tables {
		results = append(results, dartdoc.SearchTables(sections, c.Parent, cfg)...)
	} else {
		for _, section := range sections {
			results = append(results, dartdoc.Search(section, c.Parent, cfg)...)
		}
	}
	return writeJSON(deps.Stdout, results)
}
