package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Verkopen"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var ledgerHeaders = []string{
	"Klant", "Model", "Inkoopprijs", "Verkoopprijs", "Aantal", "Totaal", "Winst", "Datum", "Partnerschap",
}

// LedgerWriter gera a planilha da tabela de vendas
type LedgerWriter interface {
	Write(entries []domain.LedgerEntry) (*bytes.Buffer, error)
}

type excelLedgerWriter struct{}

func NewLedgerWriter() LedgerWriter {
	return &excelLedgerWriter{}
}

func (w *excelLedgerWriter) Write(entries []domain.LedgerEntry) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar aba: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("erro ao remover aba padrão: %w", err)
	}

	if err := writeRow(f, 1, toAny(ledgerHeaders)); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, headerStyle)
	}

	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero
	totalQuantity := 0

	for i, entry := range entries {
		partnership := ""
		if entry.IsPartnership {
			partnership = "Ja"
		}

		values := []interface{}{
			entry.Customer,
			entry.Model,
			entry.PurchasePrice.InexactFloat64(),
			entry.SellingPrice.InexactFloat64(),
			entry.Quantity,
			entry.Total.InexactFloat64(),
			entry.Profit.InexactFloat64(),
			entry.DateLabel,
			partnership,
		}
		if err := writeRow(f, i+2, values); err != nil {
			return nil, err
		}

		totalRevenue = totalRevenue.Add(entry.Total)
		totalProfit = totalProfit.Add(entry.Profit)
		totalQuantity += entry.Quantity
	}

	totalsRow := len(entries) + 2
	totals := []interface{}{"Totaal", "", "", "", totalQuantity, totalRevenue.InexactFloat64(), totalProfit.InexactFloat64(), "", ""}
	if err := writeRow(f, totalsRow, totals); err != nil {
		return nil, err
	}

	if totalsStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(SheetName, totalsRow, totalsRow, totalsStyle)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(ledgerHeaders))
	_ = f.SetColWidth(SheetName, "A", lastCol, 16)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gravar planilha: %w", err)
	}

	return &buf, nil
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("erro ao calcular célula: %w", err)
	}

	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("erro ao escrever linha %d: %w", row, err)
	}

	return nil
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
