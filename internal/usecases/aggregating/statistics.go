// Package aggregating contém os cálculos derivados das vendas: totais, resumo diário e
// divisão de parceria. Todas as funções são puras; o chamador decide quando recalcular.
package aggregating

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

// ComputeStatistics soma receita, lucro, custo e quantidade de vendas.
// Os investimentos da parceria são apenas informativos e não entram no total investido.
func ComputeStatistics(sales []*domain.Sale) domain.SalesStatistics {
	stats := domain.SalesStatistics{
		TotalRevenue:    decimal.Zero,
		TotalProfit:     decimal.Zero,
		TotalInvestment: decimal.Zero,
	}

	for _, sale := range sales {
		if sale == nil {
			continue
		}

		stats.TotalRevenue = stats.TotalRevenue.Add(sale.Revenue())
		stats.TotalProfit = stats.TotalProfit.Add(sale.Profit())
		stats.TotalInvestment = stats.TotalInvestment.Add(sale.Investment())
		stats.TotalSales++
	}

	return stats
}
