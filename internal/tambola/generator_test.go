package tambola

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFullSheet(t *testing.T) {
	sheet, err := GenerateTickets(SheetTickets, nil)
	require.NoError(t, err)
	require.Len(t, sheet, SheetTickets)

	seen := make(map[int]int)
	for i, ticket := range sheet {
		assert.Truef(t, ticket.Validate(), "ticket %d violates structural invariants: %v", i, ticket)
		for _, n := range ticket.Numbers() {
			seen[n]++
		}
	}

	// six tickets of fifteen must cover 1..90 exactly once
	require.Len(t, seen, MaxNumber)
	for n := 1; n <= MaxNumber; n++ {
		assert.Equalf(t, 1, seen[n], "number %d placed %d times", n, seen[n])
	}
}

func TestGenerateSingleTicket(t *testing.T) {
	sheet, err := GenerateTickets(1, nil)
	require.NoError(t, err)
	require.Len(t, sheet, 1)
	assert.True(t, sheet[0].Validate())
	assert.Equal(t, TicketNumbers, sheet[0].NumberCount())
}

func TestGeneratePartialSheetNoDuplicates(t *testing.T) {
	sheet, err := GenerateTickets(3, nil)
	require.NoError(t, err)
	require.Len(t, sheet, 3)

	seen := make(map[int]bool)
	for _, ticket := range sheet {
		require.True(t, ticket.Validate())
		for _, n := range ticket.Numbers() {
			assert.Falsef(t, seen[n], "number %d placed twice", n)
			seen[n] = true
		}
	}
}

func TestGenerateWithIncludeList(t *testing.T) {
	// one number per column plus extras, fifteen in total, all placeable
	include := []int{4, 5, 9, 11, 23, 25, 31, 45, 47, 51, 61, 65, 71, 88, 90}

	sheet, err := GenerateTickets(SheetTickets, include)
	require.NoError(t, err)
	require.True(t, sheet[0].Validate())

	for _, n := range include {
		assert.Truef(t, sheet[0].Has(n), "include number %d missing from first ticket", n)
	}
}

func TestGenerateWithOversizedIncludeList(t *testing.T) {
	// more include numbers than a ticket can hold; the surplus spills over
	// to the rest of the sheet but the first ticket stays structurally valid
	include := make([]int, 0, 40)
	for n := 1; n <= 40; n++ {
		include = append(include, n)
	}

	sheet, err := GenerateTickets(SheetTickets, include)
	require.NoError(t, err)
	require.True(t, sheet[0].Validate())

	fromInclude := 0
	for _, n := range sheet[0].Numbers() {
		if n <= 40 {
			fromInclude++
		}
	}
	assert.GreaterOrEqual(t, fromInclude, 9, "first ticket should lean on the include list")
}

func TestGenerateRejectsBadCount(t *testing.T) {
	_, err := GenerateTickets(0, nil)
	require.Error(t, err)
}

func TestColumnOf(t *testing.T) {
	cases := map[int]int{
		1: 0, 9: 0, 10: 1, 19: 1, 20: 2, 49: 4, 50: 5, 79: 7, 80: 8, 90: 8,
	}
	for n, col := range cases {
		assert.Equalf(t, col, ColumnOf(n), "ColumnOf(%d)", n)
	}
	assert.Equal(t, -1, ColumnOf(0))
	assert.Equal(t, -1, ColumnOf(91))
}

func TestNewDealOrderIsPermutation(t *testing.T) {
	order := NewDealOrder()
	require.Len(t, order, MaxNumber)

	seen := make(map[int]bool, MaxNumber)
	for _, n := range order {
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, MaxNumber)
		require.Falsef(t, seen[n], "number %d repeated in deal order", n)
		seen[n] = true
	}
}

func TestTicketValidateRejectsBrokenGrids(t *testing.T) {
	valid := testTicket()
	require.True(t, valid.Validate())

	short := testTicket()
	short[0][0] = 0
	assert.False(t, short.Validate(), "missing cell must fail")

	wrongColumn := testTicket()
	wrongColumn[0][0] = 50 // belongs to column 5
	assert.False(t, wrongColumn.Validate())
}
