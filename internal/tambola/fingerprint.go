package tambola

import (
	"fmt"
	"strings"
)

// Fingerprint derives a sheet's identity string: every occupied cell, read in
// ticket then row-major order, encoded as a two-digit lowercase hex byte.
// Equal sheets always produce the same fingerprint, so it doubles as the uniqueness
// key for duplicate-sheet detection.
func Fingerprint(s Sheet) string {
	var b strings.Builder
	b.Grow(len(s) * TicketNumbers * 2)
	for _, t := range s {
		for _, row := range t {
			for _, n := range row {
				if n > 0 {
					fmt.Fprintf(&b, "%02x", n)
				}
			}
		}
	}
	return b.String()
}
