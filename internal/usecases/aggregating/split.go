package aggregating

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

const maxInvestmentInputLen = 32

// ComputeSplit calcula a participação percentual de cada sócio a partir dos valores
// digitados no formulário. Entradas vazias, inválidas ou negativas valem zero.
// Cada percentual é arredondado para uma casa decimal de forma independente.
func ComputeSplit(myInvestmentRaw, partnerInvestmentRaw string) domain.Split {
	my := parseInvestment(myInvestmentRaw)
	partner := parseInvestment(partnerInvestmentRaw)

	total := my.Add(partner)
	if total.IsZero() {
		return domain.Split{MyPercent: decimal.Zero, PartnerPercent: decimal.Zero}
	}

	return domain.Split{
		MyPercent:      my.Div(total).Mul(hundred).Round(1),
		PartnerPercent: partner.Div(total).Mul(hundred).Round(1),
	}
}

// parseInvestment aceita vírgula como separador decimal ("12,5").
// Textos longos e valores fora de domain.AmountInRange valem zero.
func parseInvestment(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxInvestmentInputLen {
		return decimal.Zero
	}

	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}

	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() || !domain.AmountInRange(value) {
		return decimal.Zero
	}

	return value
}
