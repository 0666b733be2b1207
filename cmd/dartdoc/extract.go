package main

import "encoding/json"

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	tree, err := deps.Loader.LoadFile(c.File)
	if err != nil {
		return err
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return writeIndented(deps.Stdout, data)
}
