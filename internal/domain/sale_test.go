package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInRange(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"Zero", "0", true},
		{"Preço comum", "1299.95", true},
		{"Limite exato", "1000000000000", true},
		{"Acima do limite", "1000000000001", false},
		{"Expoente gigante", "1e10000000", false},
		{"Expoente negativo gigante", "1e-10000000", false},
		{"Muitos dígitos", "1234567890123456789012345678901234567890", false},
		{"Negativo dentro do limite", "-5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AmountInRange(decimal.RequireFromString(tt.value)))
		})
	}
}

func TestSale_Validate(t *testing.T) {
	valid := func() *Sale {
		return &Sale{
			Customer:      "Jan Jansen",
			Model:         "Model X-100",
			PurchasePrice: decimal.NewFromInt(50),
			SellingPrice:  decimal.NewFromInt(75),
			Quantity:      2,
			Date:          time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	tests := []struct {
		name     string
		mutate   func(s *Sale)
		expected error
	}{
		{"Venda válida", func(s *Sale) {}, nil},
		{"Quantidade zero", func(s *Sale) { s.Quantity = 0 }, ErrInvalidQuantity},
		{"Preço negativo", func(s *Sale) { s.SellingPrice = decimal.NewFromInt(-1) }, ErrNegativePrice},
		{"Preço com expoente gigante", func(s *Sale) { s.PurchasePrice = decimal.RequireFromString("1e10000000") }, ErrAmountOutOfRange},
		{"Investimento com expoente gigante", func(s *Sale) {
			s.Partnership = &Partnership{
				MyInvestment:      decimal.RequireFromString("1e10000000"),
				PartnerInvestment: decimal.NewFromInt(10),
			}
		}, ErrAmountOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale := valid()
			tt.mutate(sale)

			err := sale.Validate()

			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
