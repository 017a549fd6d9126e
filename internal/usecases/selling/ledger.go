package selling

import (
	"time"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/locale"
)

// toLedgerEntries monta as linhas da tabela de vendas mantendo a ordem recebida
func toLedgerEntries(sales []*domain.Sale, formatter *locale.Formatter, loc *time.Location) []domain.LedgerEntry {
	entries := make([]domain.LedgerEntry, 0, len(sales))

	for _, sale := range sales {
		if sale == nil {
			continue
		}

		date := sale.Date.In(loc)
		total := sale.Revenue()
		profit := sale.Profit()

		entry := domain.LedgerEntry{
			ID:            sale.ID,
			Customer:      sale.Customer,
			Model:         sale.Model,
			PurchasePrice: sale.PurchasePrice,
			SellingPrice:  sale.SellingPrice,
			Quantity:      sale.Quantity,
			Total:         total,
			Profit:        profit,
			Date:          date,
			DateLabel:     formatter.DateLabel(date),
			TotalLabel:    formatter.Currency(total),
			ProfitLabel:   formatter.Currency(profit),
			IsPartnership: sale.IsPartnership(),
		}

		if sale.Partnership != nil {
			my := sale.Partnership.MyInvestment
			partner := sale.Partnership.PartnerInvestment
			entry.MyInvestment = &my
			entry.PartnerInvestment = &partner
		}

		entries = append(entries, entry)
	}

	return entries
}
