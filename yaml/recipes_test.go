package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/dartdoc"
	"github.com/fwojciec/dartdoc/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipesYAML = `
recipes:
  - name: 설립일
    sections: [회사의개요]
    text:
      include: [설립]
      require: [상장]
    format: date:yyyy.mm.dd
  - name: 매출액
    tables:
      include: [매출액]
    tableIndex: 1
    lookup:
      kind: cell
      keys: [매출액]
      columnKeys: [제55기]
      exact: true
    format: number:8:억
`

func TestLoadRecipes(t *testing.T) {
	t.Parallel()

	t.Run("decodes recipes", func(t *testing.T) {
		t.Parallel()

		recipes, err := yaml.LoadRecipes(strings.NewReader(recipesYAML))

		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, dartdoc.Recipe{
			Name:     "설립일",
			Sections: []string{"회사의개요"},
			Text:     &dartdoc.Query{Include: []string{"설립"}, Require: []string{"상장"}},
			Format:   "date:yyyy.mm.dd",
		}, recipes[0])
		assert.Equal(t, dartdoc.Recipe{
			Name:       "매출액",
			Tables:     &dartdoc.Query{Include: []string{"매출액"}},
			TableIndex: 1,
			Lookup: &dartdoc.Lookup{
				Kind:       dartdoc.LookupByCell,
				Keys:       []string{"매출액"},
				ColumnKeys: []string{"제55기"},
				Exact:      true,
			},
			Format: "number:8:억",
		}, recipes[1])
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadRecipes(strings.NewReader("recipes:\n  - name: a\n    txt: {include: [b]}\n"))

		assert.Equal(t, dartdoc.EINVALID, dartdoc.ErrorCode(err))
	})

	t.Run("validates recipes", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadRecipes(strings.NewReader("recipes:\n  - name: a\n    text: {include: [b]}\n    format: number:x\n"))

		assert.Equal(t, dartdoc.EINVALID, dartdoc.ErrorCode(err))
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadRecipes(strings.NewReader("recipes:\n  - name: a\n    text: {}\n  - name: a\n    text: {}\n"))

		assert.Equal(t, dartdoc.EINVALID, dartdoc.ErrorCode(err))
		assert.Equal(t, `duplicate recipe "a"`, dartdoc.ErrorMessage(err))
	})

	t.Run("rejects empty document", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadRecipes(strings.NewReader(""))

		assert.Equal(t, dartdoc.EINVALID, dartdoc.ErrorCode(err))
	})

	t.Run("rejects document without recipes", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadRecipes(strings.NewReader("recipes: []\n"))

		assert.Equal(t, "recipe file defines no recipes", dartdoc.ErrorMessage(err))
	})
}

func TestLoadRecipesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(recipesYAML), 0o600))

	recipes, err := yaml.LoadRecipesFile(path)

	require.NoError(t, err)
	assert.Len(t, recipes, 2)

	_, err = yaml.LoadRecipesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
