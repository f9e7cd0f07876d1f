// Package tambola implements the combinatorial core of the platform: deal
// order generation, constrained ticket/sheet generation, sheet fingerprints,
// claim validation and the house-sheet bias policy. It is persistence-free;
// services wire its output to storage.
package tambola

import "math/rand"

const (
	// Rows and Cols are the fixed ticket grid dimensions.
	Rows = 3
	Cols = 9

	// TicketNumbers is the count of occupied cells per ticket, RowNumbers
	// per row.
	TicketNumbers = 15
	RowNumbers    = 5

	// MaxNumber is the size of the number universe.
	MaxNumber = 90

	// SheetTickets is the number of tickets that make up one sheet; six
	// tickets of fifteen cover 1..90 exactly once.
	SheetTickets = 6
)

// columnRanges maps each column to its inclusive numeric range. The last
// column absorbs 90, so the range sizes run 9,10,...,10,11.
var columnRanges = [Cols][2]int{
	{1, 9}, {10, 19}, {20, 29}, {30, 39}, {40, 49},
	{50, 59}, {60, 69}, {70, 79}, {80, 90},
}

// ColumnOf returns the column a number belongs to, or -1 when out of range.
func ColumnOf(n int) int {
	for i, r := range columnRanges {
		if n >= r[0] && n <= r[1] {
			return i
		}
	}
	return -1
}

// ColumnRange returns the inclusive numeric range of a column.
func ColumnRange(col int) (lo, hi int) {
	return columnRanges[col][0], columnRanges[col][1]
}

// Ticket is a 3x9 grid; 0 marks an empty cell.
type Ticket [][]int

// NewTicket returns a zero-filled ticket.
func NewTicket() Ticket {
	t := make(Ticket, Rows)
	for i := range t {
		t[i] = make([]int, Cols)
	}
	return t
}

// NumberCount returns the count of occupied cells.
func (t Ticket) NumberCount() int {
	count := 0
	for _, row := range t {
		for _, n := range row {
			if n > 0 {
				count++
			}
		}
	}
	return count
}

// Has reports whether n occupies any cell of the ticket.
func (t Ticket) Has(n int) bool {
	for _, row := range t {
		for _, v := range row {
			if v == n {
				return true
			}
		}
	}
	return false
}

// Numbers returns every occupied cell value in row-major order.
func (t Ticket) Numbers() []int {
	var nums []int
	for _, row := range t {
		for _, n := range row {
			if n > 0 {
				nums = append(nums, n)
			}
		}
	}
	return nums
}

// Validate checks the structural ticket invariants: 15 occupied cells,
// 5 per row, no fully empty column, every value in its column's range.
// Column-ascending ordering is deliberately not part of the invariant set.
func (t Ticket) Validate() bool {
	if len(t) != Rows {
		return false
	}
	if t.NumberCount() != TicketNumbers {
		return false
	}
	for _, row := range t {
		if len(row) != Cols {
			return false
		}
		filled := 0
		for _, n := range row {
			if n > 0 {
				filled++
			}
		}
		if filled != RowNumbers {
			return false
		}
	}
	for col := 0; col < Cols; col++ {
		occupied := 0
		for row := 0; row < Rows; row++ {
			n := t[row][col]
			if n == 0 {
				continue
			}
			if ColumnOf(n) != col {
				return false
			}
			occupied++
		}
		if occupied == 0 {
			return false
		}
	}
	return true
}

// Sheet is an ordered set of tickets; a full sheet covers 1..90 exactly once.
type Sheet []Ticket

// Numbers returns every occupied cell value across the sheet in ticket order.
func (s Sheet) Numbers() []int {
	var nums []int
	for _, t := range s {
		nums = append(nums, t.Numbers()...)
	}
	return nums
}

// Matrices converts the sheet to the plain nested-slice shape persisted on
// ticket rows.
func (s Sheet) Matrices() [][][]int {
	out := make([][][]int, len(s))
	for i, t := range s {
		out[i] = t
	}
	return out
}

// SheetFromMatrices is the inverse of Matrices.
func SheetFromMatrices(m [][][]int) Sheet {
	s := make(Sheet, len(m))
	for i, t := range m {
		s[i] = Ticket(t)
	}
	return s
}

// Shuffled returns a Fisher-Yates shuffled copy of nums.
func Shuffled(nums []int) []int {
	out := make([]int, len(nums))
	copy(out, nums)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// NewDealOrder produces a game's deal order: a permutation of 1..90 built by
// repeated full-array shuffles.
func NewDealOrder() []int {
	order := make([]int, MaxNumber)
	for i := range order {
		order[i] = i + 1
	}
	for i := 0; i < 5; i++ {
		order = Shuffled(order)
	}
	return order
}
