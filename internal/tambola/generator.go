package tambola

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

// ErrGenerationExhausted is returned when the generator cannot produce a
// valid sheet within its retry budget.
var ErrGenerationExhausted = errors.New("tambola: sheet generation attempts exhausted")

const (
	maxTicketAttempts = 100
	maxSheetRetries   = 100
	maxColumnCells    = Rows

	// includeLimit caps how many include-list numbers are considered per
	// ticket; the list is shuffled first so the cut is unbiased.
	includeLimit = 40
)

// genContext tracks the numbers consumed by the tickets of one sheet attempt.
type genContext struct {
	occupied map[int]bool
}

func newGenContext() *genContext {
	return &genContext{occupied: make(map[int]bool, MaxNumber)}
}

func (g *genContext) take(n int) { g.occupied[n] = true }

// available returns the unused numbers of a column in ascending order.
func (g *genContext) available(col int) []int {
	lo, hi := ColumnRange(col)
	var nums []int
	for n := lo; n <= hi; n++ {
		if !g.occupied[n] {
			nums = append(nums, n)
		}
	}
	return nums
}

// remaining returns every unused number in ascending order.
func (g *genContext) remaining() []int {
	var nums []int
	for n := 1; n <= MaxNumber; n++ {
		if !g.occupied[n] {
			nums = append(nums, n)
		}
	}
	return nums
}

// GenerateTickets builds count tickets that together consume each number at
// most once. When include is non-empty the first ticket is filled
// preferentially from it, topping up with random legal numbers. When count
// tickets cover the whole universe the final ticket is assembled from the
// leftover numbers, which guarantees full coverage. The whole sheet is
// retried when any ticket cannot be completed, up to a fixed budget.
func GenerateTickets(count int, include []int) (Sheet, error) {
	if count < 1 {
		return nil, fmt.Errorf("tambola: invalid ticket count %d", count)
	}
	fullCover := count*TicketNumbers == MaxNumber

	for retry := 0; retry < maxSheetRetries; retry++ {
		sheet, ok := generateSheetOnce(count, include, fullCover)
		if ok {
			return sheet, nil
		}
	}
	return nil, ErrGenerationExhausted
}

func generateSheetOnce(count int, include []int, fullCover bool) (Sheet, bool) {
	ctx := newGenContext()
	sheet := make(Sheet, 0, count)

	for idx := 0; idx < count; idx++ {
		var (
			ticket Ticket
			ok     bool
		)
		switch {
		case idx == 0 && len(include) > 0:
			ticket, ok = includeTicket(ctx, include)
		case fullCover && idx == count-1:
			ticket, ok = remainderTicket(ctx)
		default:
			ticket, ok = randomTicket(ctx)
		}
		if !ok {
			return nil, false
		}
		for _, n := range ticket.Numbers() {
			ctx.take(n)
		}
		sheet = append(sheet, ticket)
	}
	return sheet, true
}

// randomTicket draws 15 fresh numbers with valid column counts and arranges
// them into rows. It retries internally before giving up on the sheet.
func randomTicket(ctx *genContext) (Ticket, bool) {
	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		counts, ok := drawColumnCounts(ctx, nil)
		if !ok {
			return nil, false
		}
		picked := make([][]int, Cols)
		ok = true
		for col := 0; col < Cols; col++ {
			avail := ctx.available(col)
			if len(avail) < counts[col] {
				ok = false
				break
			}
			picked[col] = Shuffled(avail)[:counts[col]]
		}
		if !ok {
			continue
		}
		if t, arranged := arrange(picked); arranged {
			return t, true
		}
	}
	return nil, false
}

// includeTicket fills the ticket preferentially from the include list: the
// list is shuffled and truncated, its numbers claim column slots until the
// per-column cap or the ticket is full, and whatever structure is still
// missing — empty columns, cells short of fifteen — is topped up with random
// legal numbers. The include list steers, it does not dictate.
func includeTicket(ctx *genContext, include []int) (Ticket, bool) {
	prefer := Shuffled(dedupe(include))
	if len(prefer) > includeLimit {
		prefer = prefer[:includeLimit]
	}

	for attempt := 0; attempt < maxTicketAttempts; attempt++ {
		base := make([][]int, Cols)
		total := 0
		for _, n := range prefer {
			col := ColumnOf(n)
			if col < 0 || ctx.occupied[n] {
				continue
			}
			if len(base[col]) >= maxColumnCells || total >= TicketNumbers {
				continue
			}
			base[col] = append(base[col], n)
			total++
		}

		// balance pass: shed include cells from the heaviest columns
		// until every empty column keeps room for its mandatory cell.
		balanceColumns(base, &total)

		forced := make([]int, Cols)
		for col := range base {
			forced[col] = len(base[col])
		}
		counts, ok := drawColumnCounts(ctx, forced)
		if !ok {
			return nil, false
		}
		picked := make([][]int, Cols)
		ok = true
		for col := 0; col < Cols; col++ {
			picked[col] = append([]int(nil), base[col]...)
			need := counts[col] - len(base[col])
			if need <= 0 {
				continue
			}
			avail := filterOut(ctx.available(col), base[col])
			if len(avail) < need {
				ok = false
				break
			}
			picked[col] = append(picked[col], Shuffled(avail)[:need]...)
		}
		if !ok {
			continue
		}
		if t, arranged := arrange(picked); arranged {
			return t, true
		}
	}
	return nil, false
}

// balanceColumns repairs an include-heavy selection: every column needs one
// cell, so include cells are shed from the fullest columns until the empty
// columns' mandatory slots fit inside the fifteen-cell budget.
func balanceColumns(base [][]int, total *int) {
	for {
		empties := 0
		for col := 0; col < Cols; col++ {
			if len(base[col]) == 0 {
				empties++
			}
		}
		if *total+empties <= TicketNumbers {
			return
		}
		heaviest := -1
		for col := 0; col < Cols; col++ {
			if heaviest < 0 || len(base[col]) > len(base[heaviest]) {
				heaviest = col
			}
		}
		if heaviest < 0 || len(base[heaviest]) == 0 {
			return
		}
		base[heaviest] = base[heaviest][:len(base[heaviest])-1]
		*total--
	}
}

func dedupe(nums []int) []int {
	seen := make(map[int]bool, len(nums))
	var out []int
	for _, n := range nums {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// remainderTicket assembles the final ticket of a full-coverage sheet from
// every number the earlier tickets left unused. The leftover can violate the
// per-column cap, in which case the whole sheet attempt is scrapped.
func remainderTicket(ctx *genContext) (Ticket, bool) {
	left := ctx.remaining()
	if len(left) != TicketNumbers {
		return nil, false
	}
	picked := make([][]int, Cols)
	for _, n := range left {
		col := ColumnOf(n)
		picked[col] = append(picked[col], n)
		if len(picked[col]) > maxColumnCells {
			return nil, false
		}
	}
	for col := 0; col < Cols; col++ {
		if len(picked[col]) == 0 {
			return nil, false
		}
	}
	return arrange(picked)
}

// drawColumnCounts picks how many cells each column occupies: at least one
// and at most three per column, fifteen in total, capped by the unused pool.
// forced, when non-nil, sets per-column minimums from an include list.
func drawColumnCounts(ctx *genContext, forced []int) ([Cols]int, bool) {
	counts := [Cols]int{}
	capacity := [Cols]int{}
	total := 0
	for col := 0; col < Cols; col++ {
		avail := len(ctx.available(col))
		min := 1
		if forced != nil && forced[col] > min {
			min = forced[col]
		}
		if avail < min {
			return counts, false
		}
		counts[col] = min
		capacity[col] = maxColumnCells
		if avail < capacity[col] {
			capacity[col] = avail
		}
		total += min
	}
	if total > TicketNumbers {
		return counts, false
	}
	for total < TicketNumbers {
		var open []int
		for col := 0; col < Cols; col++ {
			if counts[col] < capacity[col] {
				open = append(open, col)
			}
		}
		if len(open) == 0 {
			return counts, false
		}
		col := open[rand.Intn(len(open))]
		counts[col]++
		total++
	}
	return counts, true
}

// arrange distributes the per-column number groups across the three rows so
// that every row holds exactly five numbers. Columns are placed from largest
// group to smallest into the rows with the most spare capacity, which always
// succeeds for feasible counts.
func arrange(picked [][]int) (Ticket, bool) {
	total := 0
	order := make([]int, 0, Cols)
	for col, nums := range picked {
		if len(nums) > maxColumnCells {
			return nil, false
		}
		sort.Ints(picked[col])
		total += len(nums)
		order = append(order, col)
	}
	if total != TicketNumbers {
		return nil, false
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(picked[order[i]]) > len(picked[order[j]])
	})

	t := NewTicket()
	rowLoad := [Rows]int{}
	for _, col := range order {
		rows := make([]int, Rows)
		for i := range rows {
			rows[i] = i
		}
		rand.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		sort.SliceStable(rows, func(i, j int) bool {
			return rowLoad[rows[i]] < rowLoad[rows[j]]
		})
		for i, n := range picked[col] {
			row := rows[i]
			if rowLoad[row] >= RowNumbers {
				return nil, false
			}
			t[row][col] = n
			rowLoad[row]++
		}
	}
	for _, load := range rowLoad {
		if load != RowNumbers {
			return nil, false
		}
	}
	return t, true
}

func filterOut(nums, drop []int) []int {
	if len(drop) == 0 {
		return nums
	}
	dropSet := make(map[int]bool, len(drop))
	for _, n := range drop {
		dropSet[n] = true
	}
	var out []int
	for _, n := range nums {
		if !dropSet[n] {
			out = append(out, n)
		}
	}
	return out
}
