package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesStatistics são os totais derivados de uma coleção de vendas. Nunca são persistidos
// como fonte de verdade, apenas recalculados.
type SalesStatistics struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	TotalSales      int             `json:"total_sales"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
}

// DailySummary agrupa as vendas de um dia do calendário
type DailySummary struct {
	Day           time.Time `json:"day"`
	Label         string    `json:"label"`
	TotalQuantity int       `json:"total_quantity"`
	Customers     []string  `json:"customers"`
}

// Split é a divisão percentual do investimento de uma parceria.
// As duas partes são arredondadas de forma independente e podem não somar exatamente 100.
type Split struct {
	MyPercent      decimal.Decimal `json:"my_percent"`
	PartnerPercent decimal.Decimal `json:"partner_percent"`
}

// SalesOverview reúne tudo que a tela de vendas precisa a partir de uma única leitura
type SalesOverview struct {
	Statistics SalesStatistics `json:"statistics"`
	Daily      []DailySummary  `json:"daily"`
	Ledger     []LedgerEntry   `json:"ledger"`
}
