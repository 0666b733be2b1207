package main

import "fmt"

// Run executes the sections command.
func (c *SectionsCmd) Run(deps *Dependencies) error {
	r, err := deps.Loader.Load(deps.Ctx, c.Receipt)
	if err != nil {
		return err
	}
	for _, key := range r.Tree.Keys() {
		fmt.Fprintln(deps.Stdout, key)
	}
	return nil
}
