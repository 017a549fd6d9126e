package aggregating

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/pkg/locale"
)

type DayLabeler interface {
	DayLabel(t time.Time) string
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// GroupByDay agrupa as vendas por dia do calendário usando os rótulos do idioma padrão
func GroupByDay(sales []*domain.Sale) []domain.DailySummary {
	return GroupByDayWith(sales, locale.Default)
}

// GroupByDayWith agrupa as vendas por (ano, mês, dia) no fuso da própria data da venda.
// O rótulo serve só para exibição: dias com o mesmo rótulo em anos diferentes ficam separados.
// O resultado vem do dia mais recente para o mais antigo, independente da ordem de entrada.
func GroupByDayWith(sales []*domain.Sale, labeler DayLabeler) []domain.DailySummary {
	summaries := make([]domain.DailySummary, 0)
	indexByDay := make(map[dayKey]int)
	seenCustomers := make(map[dayKey]map[string]struct{})

	for _, sale := range sales {
		if sale == nil {
			continue
		}

		y, m, d := sale.Date.Date()
		key := dayKey{year: y, month: m, day: d}

		idx, exists := indexByDay[key]
		if !exists {
			day := time.Date(y, m, d, 0, 0, 0, 0, sale.Date.Location())
			summaries = append(summaries, domain.DailySummary{
				Day:       day,
				Label:     labeler.DayLabel(day),
				Customers: make([]string, 0),
			})
			idx = len(summaries) - 1
			indexByDay[key] = idx
			seenCustomers[key] = make(map[string]struct{})
		}

		summaries[idx].TotalQuantity += sale.Quantity

		if _, seen := seenCustomers[key][sale.Customer]; !seen {
			seenCustomers[key][sale.Customer] = struct{}{}
			summaries[idx].Customers = append(summaries[idx].Customers, sale.Customer)
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Day.After(summaries[j].Day)
	})

	return summaries
}
