package dartdoc_test

import (
	"testing"

	"github.com/fwojciec/dartdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cells(texts ...string) []dartdoc.Cell {
	out := make([]dartdoc.Cell, len(texts))
	for i, s := range texts {
		out[i] = dartdoc.Cell{Text: s}
	}
	return out
}

func TestBuildTable(t *testing.T) {
	t.Parallel()

	t.Run("no spans round trip", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			cells("a", "b"),
			cells("c", "d"),
		})

		assert.Equal(t, dartdoc.Table{{"a", "b"}, {"c", "d"}}, got)
	})

	t.Run("pads short rows", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			cells("a", "b", "c"),
			cells("d"),
		})

		assert.Equal(t, dartdoc.Table{{"a", "b", "c"}, {"d", "", ""}}, got)
	})

	t.Run("rowspan fills following rows", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "X", RowSpan: 2}, {Text: "a"}},
			cells("b"),
		})

		assert.Equal(t, dartdoc.Table{{"X", "a"}, {"X", "b"}}, got)
	})

	t.Run("colspan repeats text", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "H", ColSpan: 3}},
			cells("a", "b", "c"),
		})

		assert.Equal(t, dartdoc.Table{{"H", "H", "H"}, {"a", "b", "c"}}, got)
	})

	t.Run("rowspan and colspan combined", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "A", ColSpan: 2, RowSpan: 2}, {Text: "B"}},
			cells("C"),
			cells("D", "E", "F"),
		})

		assert.Equal(t, dartdoc.Table{
			{"A", "A", "B"},
			{"A", "A", "C"},
			{"D", "E", "F"},
		}, got)
	})

	t.Run("span in middle column", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "a"}, {Text: "M", RowSpan: 3}, {Text: "b"}},
			cells("c", "d"),
			cells("e", "f"),
		})

		assert.Equal(t, dartdoc.Table{
			{"a", "M", "b"},
			{"c", "M", "d"},
			{"e", "M", "f"},
		}, got)
	})

	t.Run("row without cells consumes pending row spans", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "X", RowSpan: 2}, {Text: "a"}},
			{},
			cells("b"),
		})

		assert.Equal(t, dartdoc.Table{{"X", "a"}, {"X", ""}, {"b", ""}}, got)
	})

	t.Run("row fully covered by row spans keeps next row aligned", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "a", RowSpan: 2}, {Text: "b", RowSpan: 2}},
			{},
			cells("c", "d"),
		})

		assert.Equal(t, dartdoc.Table{{"a", "b"}, {"a", "b"}, {"c", "d"}}, got)
	})

	t.Run("empty row without pending spans is skipped", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			cells("a"),
			{},
			cells("b"),
		})

		assert.Equal(t, dartdoc.Table{{"a"}, {"b"}}, got)
	})

	t.Run("clamps column span", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "a", ColSpan: 5000}},
		})

		require.Len(t, got, 1)
		assert.Len(t, got[0], dartdoc.MaxColSpan)
		assert.Equal(t, "a", got[0][dartdoc.MaxColSpan-1])
	})

	t.Run("invalid spans default to one", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "a", ColSpan: 0, RowSpan: -4}, {Text: "b"}},
			cells("c", "d"),
		})

		assert.Equal(t, dartdoc.Table{{"a", "b"}, {"c", "d"}}, got)
	})

	t.Run("keeps trailing empty cells", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{cells("a", "")})

		assert.Equal(t, dartdoc.Table{{"a", ""}}, got)
	})

	t.Run("no rows yields empty table", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable(nil)

		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("result is rectangular", func(t *testing.T) {
		t.Parallel()

		got := dartdoc.BuildTable([][]dartdoc.Cell{
			{{Text: "a", RowSpan: 4}},
			cells("b", "c", "d", "e"),
			cells("f"),
			{{Text: "g", ColSpan: 6}},
		})

		width := got.Width()
		assert.Equal(t, 7, width)
		for _, row := range got {
			assert.Len(t, row, width)
		}
	})
}
