package btrieve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/btrieve"
)

func newRow(version int, vals map[string]any) btrieve.Row {
	row := btrieve.NewRow(len(vals) + 2)
	for k, v := range vals {
		row.Set(k, v)
	}
	row.Set(btrieve.ColumnRowVersion, version)
	return row
}

func TestTable_HighestVersionWinsInEitherOrder(t *testing.T) {
	older := newRow(1, map[string]any{"ID": "A1  ", "TITLE": "old"})
	newer := newRow(2, map[string]any{"ID": "A1", "TITLE": "new"})

	for name, order := range map[string][]btrieve.Row{
		"older first": {older, newer},
		"newer first": {newer, older},
	} {
		t.Run(name, func(t *testing.T) {
			table := btrieve.NewTable("ID")
			for _, r := range order {
				table.AddRow(r)
			}
			row, ok := table.FindString("A1")
			require.True(t, ok)
			assert.Equal(t, 2, row.Version())
			assert.Equal(t, "new", row.StringOr("TITLE", ""))
			assert.Equal(t, 1, table.Len())
		})
	}
}

func TestTable_SameVersionIsNoOp(t *testing.T) {
	table := btrieve.NewTable("ID")
	first := newRow(4, map[string]any{"ID": "X", "TITLE": "first"})
	require.True(t, table.AddRow(first))

	assert.False(t, table.AddRow(newRow(4, map[string]any{"ID": "X", "TITLE": "second"})))
	assert.False(t, table.AddRow(first))

	row, ok := table.FindString("X")
	require.True(t, ok)
	assert.Equal(t, "first", row.StringOr("TITLE", ""))
	assert.Equal(t, 1, row.Number(), "the stored row keeps its own row number")
	assert.Equal(t, 2, table.Superseded())
}

func TestTable_FallsBackToRowNumber(t *testing.T) {
	table := btrieve.NewTable("ID")
	table.AddRow(newRow(1, map[string]any{"ID": nil}))
	table.AddRow(newRow(1, map[string]any{}))

	noKey := btrieve.NewTable("")
	noKey.AddRow(newRow(1, map[string]any{"ID": "A"}))

	assert.Equal(t, 2, table.Len())
	_, ok := table.Find(btrieve.NumberKey(1))
	assert.True(t, ok)
	_, ok = table.Find(btrieve.NumberKey(2))
	assert.True(t, ok)

	_, ok = noKey.FindString("A")
	assert.False(t, ok)
	_, ok = noKey.Find(btrieve.NumberKey(1))
	assert.True(t, ok)
}

func TestTable_IterationOrder(t *testing.T) {
	table := btrieve.NewTable("ID")
	table.AddRow(newRow(1, map[string]any{"ID": "B"}))
	table.AddRow(newRow(1, map[string]any{"ID": nil}))
	table.AddRow(newRow(1, map[string]any{"ID": "A"}))
	table.AddRow(newRow(1, map[string]any{"ID": nil}))

	var keys []string
	for _, k := range table.Keys() {
		keys = append(keys, k.String())
	}
	assert.Equal(t, []string{"#2", "#4", "A", "B"}, keys)

	var numbers []int
	for row := range table.All() {
		numbers = append(numbers, row.Number())
	}
	assert.Equal(t, []int{2, 4, 3, 1}, numbers)
	assert.Len(t, table.Rows(), 4)
}

func TestTable_DoesNotAliasCallerRow(t *testing.T) {
	table := btrieve.NewTable("ID")
	row := newRow(1, map[string]any{"ID": "A", "TITLE": "kept"})
	table.AddRow(row)

	row.Set("TITLE", "changed")
	stored, ok := table.FindString("A")
	require.True(t, ok)
	assert.Equal(t, "kept", stored.StringOr("TITLE", ""))
}
