package spreadsheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

func TestLedgerWriter_Write(t *testing.T) {
	entries := []domain.LedgerEntry{
		{
			Customer:      "Jan Jansen",
			Model:         "Model X-100",
			PurchasePrice: decimal.NewFromInt(50),
			SellingPrice:  decimal.NewFromInt(75),
			Quantity:      2,
			Total:         decimal.NewFromInt(150),
			Profit:        decimal.NewFromInt(50),
			Date:          time.Date(2025, 10, 3, 10, 0, 0, 0, time.UTC),
			DateLabel:     "03 okt 2025",
		},
		{
			Customer:      "Marie de Vries",
			Model:         "Model Pro-200",
			PurchasePrice: decimal.NewFromInt(120),
			SellingPrice:  decimal.NewFromInt(180),
			Quantity:      1,
			Total:         decimal.NewFromInt(180),
			Profit:        decimal.NewFromInt(60),
			Date:          time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC),
			DateLabel:     "02 okt 2025",
			IsPartnership: true,
		},
	}

	buf, err := NewLedgerWriter().Write(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, ledgerHeaders, rows[0])
	assert.Equal(t, "Jan Jansen", rows[1][0])
	assert.Equal(t, "150", rows[1][5])
	assert.Equal(t, "03 okt 2025", rows[1][7])
	assert.Equal(t, "Ja", rows[2][8])

	assert.Equal(t, "Totaal", rows[3][0])
	assert.Equal(t, "3", rows[3][4])
	assert.Equal(t, "330", rows[3][5])
	assert.Equal(t, "110", rows[3][6])
}

func TestLedgerWriter_WriteEmpty(t *testing.T) {
	buf, err := NewLedgerWriter().Write(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Totaal", rows[1][0])
	assert.Equal(t, "0", rows[1][4])
}
