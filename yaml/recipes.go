// Package yaml loads extraction recipes from YAML documents.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/dartdoc"
	yamlv3 "gopkg.in/yaml.v3"
)

type recipeFile struct {
	Recipes []dartdoc.Recipe `yaml:"recipes"`
}

// LoadRecipes decodes a document of the form
//
//	recipes:
//	  - name: 설립일
//	    sections: [회사의개요]
//	    text: {include: [설립]}
//
// Unknown fields are rejected and every recipe is validated. Recipe
// names must be unique.
func LoadRecipes(r io.Reader) ([]dartdoc.Recipe, error) {
	dec := yamlv3.NewDecoder(r)
	dec.KnownFields(true)

	var file recipeFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, dartdoc.Errorf(dartdoc.EINVALID, "recipe file is empty")
		}
		return nil, dartdoc.Errorf(dartdoc.EINVALID, "invalid recipe file: %v", err)
	}
	if len(file.Recipes) == 0 {
		return nil, dartdoc.Errorf(dartdoc.EINVALID, "recipe file defines no recipes")
	}

	seen := make(map[string]bool, len(file.Recipes))
	for i := range file.Recipes {
		recipe := &file.Recipes[i]
		if err := recipe.Validate(); err != nil {
			return nil, err
		}
		if seen[recipe.Name] {
			return nil, dartdoc.Errorf(dartdoc.EINVALID, "duplicate recipe %q", recipe.Name)
		}
		seen[recipe.Name] = true
	}
	return file.Recipes, nil
}

// LoadRecipesFile reads recipes from the file at path.
func LoadRecipesFile(path string) ([]dartdoc.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recipes: %w", err)
	}
	defer f.Close()
	return LoadRecipes(f)
}
