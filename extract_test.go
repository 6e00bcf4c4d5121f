package trellokeep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groceriesBoard() *Board {
	return &Board{
		Name: "Groceries",
		Lists: []SourceList{
			{Name: "Carrefour", Cards: []string{"Bread", "Butter"}},
			{Name: "Lidl", Cards: []string{"Milk", "Eggs", "Oats"}},
			{Name: "Done", Cards: []string{"Old stuff"}},
		},
	}
}

func TestExtractFollowsRequestedOrder(t *testing.T) {
	snapshot, err := Extract(groceriesBoard(), []string{"Lidl", "Carrefour"})
	require.NoError(t, err)
	require.Len(t, snapshot.Lists, 2)

	// Output order follows the request, not the board
	assert.Equal(t, "Lidl", snapshot.Lists[0].Name)
	assert.Equal(t, []string{"Milk", "Eggs", "Oats"}, snapshot.Lists[0].Items)
	assert.Equal(t, "Carrefour", snapshot.Lists[1].Name)
	assert.Equal(t, []string{"Bread", "Butter"}, snapshot.Lists[1].Items)
}

func TestExtractMatchesCaseInsensitively(t *testing.T) {
	snapshot, err := Extract(groceriesBoard(), []string{"lidl"})
	require.NoError(t, err)
	require.Len(t, snapshot.Lists, 1)

	// The snapshot keeps the board's casing, not the requested casing
	assert.Equal(t, "Lidl", snapshot.Lists[0].Name)
}

func TestExtractReportsAllMissingNames(t *testing.T) {
	_, err := Extract(groceriesBoard(), []string{"Lidl", "Aldi", "Spar"})
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Groceries", notFound.Board)
	assert.Equal(t, []string{"Aldi", "Spar"}, notFound.Names)
	assert.Contains(t, err.Error(), "Aldi, Spar")
}

func TestExtractSkipsEmptyCards(t *testing.T) {
	board := &Board{
		Name: "Groceries",
		Lists: []SourceList{
			{Name: "Lidl", Cards: []string{"", "Milk", ""}},
		},
	}
	snapshot, err := Extract(board, []string{"Lidl"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Milk"}, snapshot.Lists[0].Items)
}

func TestExtractEmptyListKeepsItsEntry(t *testing.T) {
	board := &Board{
		Name: "Groceries",
		Lists: []SourceList{
			{Name: "Produce", Cards: nil},
		},
	}
	snapshot, err := Extract(board, []string{"Produce"})
	require.NoError(t, err)
	require.Len(t, snapshot.Lists, 1)
	assert.Equal(t, "Produce", snapshot.Lists[0].Name)
	assert.NotNil(t, snapshot.Lists[0].Items)
	assert.Empty(t, snapshot.Lists[0].Items)
}

func TestExtractFirstMatchWinsOnDuplicateNames(t *testing.T) {
	board := &Board{
		Name: "Groceries",
		Lists: []SourceList{
			{Name: "Lidl", Cards: []string{"Milk"}},
			{Name: "LIDL", Cards: []string{"Eggs"}},
		},
	}
	snapshot, err := Extract(board, []string{"lidl"})
	require.NoError(t, err)
	require.Len(t, snapshot.Lists, 1)
	assert.Equal(t, []string{"Milk"}, snapshot.Lists[0].Items)
}
