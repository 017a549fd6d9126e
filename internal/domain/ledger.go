package domain

import (
	"bytes"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry é uma linha da tabela de vendas, com os totais da linha já calculados
type LedgerEntry struct {
	ID                string           `json:"id"`
	Customer          string           `json:"customer"`
	Model             string           `json:"model"`
	PurchasePrice     decimal.Decimal  `json:"purchase_price"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	Quantity          int              `json:"quantity"`
	Total             decimal.Decimal  `json:"total"`
	Profit            decimal.Decimal  `json:"profit"`
	Date              time.Time        `json:"date"`
	DateLabel         string           `json:"date_label"`
	TotalLabel        string           `json:"total_label"`
	ProfitLabel       string           `json:"profit_label"`
	IsPartnership     bool             `json:"is_partnership"`
	MyInvestment      *decimal.Decimal `json:"my_investment,omitempty"`
	PartnerInvestment *decimal.Decimal `json:"partner_investment,omitempty"`
}

// LedgerFile é a planilha exportada junto do nome sugerido para download
type LedgerFile struct {
	Filename string
	Content  *bytes.Buffer
}
