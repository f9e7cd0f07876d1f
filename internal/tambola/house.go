package tambola

// Band ties a house sheet index to a group of ticket grid columns and the
// window of deal-order positions their numbers get pulled into.
type Band struct {
	Cols  []int
	PosLo int
	PosHi int
}

// HousePolicy controls how a game's deal order is biased toward its house
// sheets. Each sheet index owns a column band of its first ticket; the
// band's numbers are swapped into a mid-game window of the deal order so the
// ticket completes on schedule without every number landing suspiciously
// early. The exact arithmetic is a product knob, not a law, hence a policy
// value rather than constants.
type HousePolicy struct {
	Bands []Band

	// EarlyWindow and LateLo/LateHi bound the deal-order regions a valid
	// house first ticket may draw from.
	EarlyWindow int
	LateLo      int
	LateHi      int
}

// DefaultHousePolicy returns the production bias table for three house
// sheets.
func DefaultHousePolicy() HousePolicy {
	return HousePolicy{
		Bands: []Band{
			{Cols: []int{0, 1, 2}, PosLo: 50, PosHi: 53},
			{Cols: []int{3, 4, 5}, PosLo: 56, PosHi: 59},
			{Cols: []int{6, 7, 8}, PosLo: 59, PosHi: 62},
		},
		EarlyWindow: 45,
		LateLo:      49,
		LateHi:      63,
	}
}

// SheetCount returns how many house sheets the policy covers.
func (p HousePolicy) SheetCount() int { return len(p.Bands) }

// bandNumbers collects up to three distinct occupied cells from the band's
// columns, reading the ticket row-major.
func bandNumbers(t Ticket, cols []int) []int {
	var nums []int
	seen := make(map[int]bool, maxColumnCells)
	for row := 0; row < len(t); row++ {
		for _, col := range cols {
			if col >= len(t[row]) {
				continue
			}
			n := t[row][col]
			if n > 0 && !seen[n] {
				seen[n] = true
				nums = append(nums, n)
				if len(nums) == maxColumnCells {
					return nums
				}
			}
		}
	}
	return nums
}

// AlterDealOrder returns a copy of order with the ticket's band numbers for
// the given sheet index swapped into that band's position window. Swapping
// in place preserves the permutation property: every number still appears
// exactly once.
func (p HousePolicy) AlterDealOrder(order []int, t Ticket, sheetIdx int) []int {
	altered := make([]int, len(order))
	copy(altered, order)
	if sheetIdx < 0 || sheetIdx >= len(p.Bands) {
		return altered
	}
	band := p.Bands[sheetIdx]

	index := make(map[int]int, len(altered))
	for i, n := range altered {
		index[n] = i
	}

	nums := bandNumbers(t, band.Cols)
	positions := Shuffled(windowPositions(band.PosLo, band.PosHi, len(altered)))
	for i, n := range nums {
		if i >= len(positions) {
			break
		}
		from, to := index[n], positions[i]
		displaced := altered[to]
		altered[to], altered[from] = altered[from], altered[to]
		index[n] = to
		index[displaced] = from
	}
	return altered
}

func windowPositions(lo, hi, size int) []int {
	var positions []int
	for p := lo; p <= hi && p < size; p++ {
		positions = append(positions, p)
	}
	return positions
}

// ValidHouseSheet reports whether the sheet's first ticket completes inside
// the policy's windows: every occupied cell of ticket zero must sit within
// the early window or the late band of the deal order.
func (p HousePolicy) ValidHouseSheet(s Sheet, order []int) bool {
	if len(s) == 0 {
		return false
	}
	allowed := make(map[int]bool, p.EarlyWindow+(p.LateHi-p.LateLo))
	for i, n := range order {
		if i < p.EarlyWindow || (i >= p.LateLo && i < p.LateHi) {
			allowed[n] = true
		}
	}
	for _, n := range s[0].Numbers() {
		if !allowed[n] {
			return false
		}
	}
	return true
}
