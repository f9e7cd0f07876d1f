package tambola

import "github.com/tambola-games/tambola-backend/internal/models"

// ValidateClaim checks a claim's submitted numbers against the ticket matrix
// and the numbers dealt so far. Row claims demand exactly the five numbers of
// the named row, corners exactly the four corner cells, and the count claims
// (early seven/ten, house) a minimum count of marked cells. Every submitted
// number must already be dealt.
func ValidateClaim(claimType models.ClaimType, submitted []int, matrix Ticket, dealt []int) bool {
	switch claimType {
	case models.ClaimTop:
		return checkRow(submitted, matrix, 0, dealt)
	case models.ClaimMiddle:
		return checkRow(submitted, matrix, 1, dealt)
	case models.ClaimBottom:
		return checkRow(submitted, matrix, 2, dealt)
	case models.ClaimCorners:
		return checkCorners(submitted, matrix, dealt)
	case models.ClaimEarly7:
		return checkCount(submitted, matrix, 7, dealt)
	case models.ClaimEarly10:
		return checkCount(submitted, matrix, 10, dealt)
	case models.ClaimHouse, models.ClaimHouse1, models.ClaimHouse2:
		return checkCount(submitted, matrix, TicketNumbers, dealt)
	default:
		return false
	}
}

// checkRow: the submission must contain exactly the row's five occupied
// cells, all of them dealt.
func checkRow(submitted []int, matrix Ticket, row int, dealt []int) bool {
	if len(submitted) < RowNumbers || row >= len(matrix) {
		return false
	}
	rowSet := make(map[int]bool, RowNumbers)
	for _, n := range matrix[row] {
		if n > 0 {
			rowSet[n] = true
		}
	}
	dealtSet := toSet(dealt)
	matched := 0
	for _, n := range uniq(submitted) {
		if !rowSet[n] {
			return false
		}
		if !dealtSet[n] {
			return false
		}
		matched++
	}
	return matched == RowNumbers
}

// checkCorners: exactly the four corner cells of the occupied grid, all dealt.
func checkCorners(submitted []int, matrix Ticket, dealt []int) bool {
	corners := cornerNumbers(matrix)
	if len(corners) != 4 {
		return false
	}
	cornerSet := toSet(corners)
	dealtSet := toSet(dealt)
	matched := 0
	for _, n := range uniq(submitted) {
		if !cornerSet[n] {
			return false
		}
		if !dealtSet[n] {
			return false
		}
		matched++
	}
	return matched == 4
}

// cornerNumbers returns the first and last occupied cell of the top and
// bottom rows.
func cornerNumbers(matrix Ticket) []int {
	if len(matrix) != Rows {
		return nil
	}
	var corners []int
	for _, row := range []int{0, Rows - 1} {
		first, last := 0, 0
		for col := 0; col < Cols; col++ {
			n := matrix[row][col]
			if n == 0 {
				continue
			}
			if first == 0 {
				first = n
			}
			last = n
		}
		if first == 0 || first == last {
			return nil
		}
		corners = append(corners, first, last)
	}
	return corners
}

// checkCount: at least `need` submitted numbers that are on the ticket and
// already dealt; any submitted number off the ticket or undealt rejects the
// claim outright.
func checkCount(submitted []int, matrix Ticket, need int, dealt []int) bool {
	if len(submitted) < need {
		return false
	}
	onTicket := toSet(matrix.Numbers())
	dealtSet := toSet(dealt)
	matched := 0
	for _, n := range uniq(submitted) {
		if !onTicket[n] {
			return false
		}
		if !dealtSet[n] {
			return false
		}
		matched++
	}
	return matched >= need
}

func toSet(nums []int) map[int]bool {
	set := make(map[int]bool, len(nums))
	for _, n := range nums {
		set[n] = true
	}
	return set
}

func uniq(nums []int) []int {
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
