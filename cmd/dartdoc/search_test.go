package main_test

import (
	"testing"

	"github.com/fwojciec/dartdoc"
	main "github.com/fwojciec/dartdoc/cmd/dartdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(t)
	err := (&main.SectionsCmd{Receipt: receiptA}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "1.회사의개요\n4.매출및수주상황\n", stdout.String())
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("finds sentences", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		err := (&main.SearchCmd{Receipt: receiptA, Include: []string{"설립"}}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `["당사는 1969년 1월 13일 설립되었습니다."]`, stdout.String())
	})

	t.Run("returns parent of match", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		err := (&main.SearchCmd{Receipt: receiptA, Include: []string{"매출액"}, Parent: 1}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `[["매출액","258,935,494","302,231,360"]]`, stdout.String())
	})

	t.Run("finds tables", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		err := (&main.SearchCmd{Receipt: receiptA, Include: []string{"영업이익"}, Parent: 2, Tables: true}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `[[
			["구분","제55기","제54기"],
			["매출액","258,935,494","302,231,360"],
			["영업이익","6,566,976","43,376,630"]
		]]`, stdout.String())
	})

	t.Run("restricts to matching sections", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		err := (&main.SearchCmd{Receipt: receiptA, Section: []string{"매출"}, Include: []string{"설립"}}).Run(deps)

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, stdout.String())
	})
}

func TestLookupCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("looks up a cell", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		cmd := &main.LookupCmd{Receipt: receiptA, Table: []string{"매출액"}, Row: []string{"매출액"}, Column: []string{"제55기"}}

		require.NoError(t, cmd.Run(deps))
		assert.JSONEq(t, `"258,935,494"`, stdout.String())
	})

	t.Run("looks up a column", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		cmd := &main.LookupCmd{Receipt: receiptA, Table: []string{"매출액"}, Column: []string{"제55기"}}

		require.NoError(t, cmd.Run(deps))
		assert.JSONEq(t, `["258,935,494","6,566,976"]`, stdout.String())
	})

	t.Run("prints null when no table matches", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t)
		cmd := &main.LookupCmd{Receipt: receiptA, Table: []string{"자본금"}, Row: []string{"매출액"}}

		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "null\n", stdout.String())
	})

	t.Run("requires row or column", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t)
		err := (&main.LookupCmd{Receipt: receiptA, Table: []string{"매출액"}}).Run(deps)

		assert.Equal(t, dartdoc.EINVALID, dartdoc.ErrorCode(err))
	})
}
