package tambola

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintEncoding(t *testing.T) {
	sheet := Sheet{testTicket()}

	// occupied cells in ticket row-major order, two hex digits each
	want := "04172d3d58050b1f334709192f415a"
	assert.Equal(t, want, Fingerprint(sheet))
}

func TestFingerprintIsStable(t *testing.T) {
	sheet, err := GenerateTickets(SheetTickets, nil)
	require.NoError(t, err)

	first := Fingerprint(sheet)
	assert.Equal(t, first, Fingerprint(sheet))
	assert.Len(t, first, SheetTickets*TicketNumbers*2)
}

func TestFingerprintDistinguishesSheets(t *testing.T) {
	a := Sheet{testTicket()}

	other := testTicket()
	other[0][0] = 3 // same column, different number
	b := Sheet{other}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}
