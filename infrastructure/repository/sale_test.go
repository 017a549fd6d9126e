package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

func TestBuildListByUserQuery(t *testing.T) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		filter       domain.SaleFilter
		contains     []string
		notContains  []string
		expectedArgs []interface{}
	}{
		{
			name:         "Sem filtro",
			filter:       domain.SaleFilter{},
			contains:     []string{"FROM sales", "WHERE user_id = $1", "ORDER BY created_at DESC, id DESC"},
			notContains:  []string{"created_at >=", "created_at <"},
			expectedArgs: []interface{}{7},
		},
		{
			name:         "Com data inicial e final",
			filter:       domain.SaleFilter{StartDate: &start, EndDate: &end},
			contains:     []string{"created_at >= $2", "created_at < $3"},
			expectedArgs: []interface{}{7, start, end.AddDate(0, 0, 1)},
		},
		{
			name:         "Apenas data final inclui o dia inteiro",
			filter:       domain.SaleFilter{EndDate: &end},
			contains:     []string{"created_at < $2"},
			notContains:  []string{"created_at >="},
			expectedArgs: []interface{}{7, time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildListByUserQuery(7, tt.filter)

			require.NoError(t, err)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			for _, fragment := range tt.notContains {
				assert.NotContains(t, query, fragment)
			}
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBuildCreateSaleQuery(t *testing.T) {
	date := time.Date(2025, 10, 3, 10, 0, 0, 0, time.UTC)

	t.Run("Venda sem parceria grava investimentos nulos", func(t *testing.T) {
		sale := &domain.Sale{
			ID:            "abc123def456",
			UserID:        7,
			Customer:      "Jan Jansen",
			Model:         "Model X-100",
			PurchasePrice: decimal.NewFromInt(50),
			SellingPrice:  decimal.NewFromInt(75),
			Quantity:      2,
			Date:          date,
		}

		query, args, err := buildCreateSaleQuery(sale)

		require.NoError(t, err)
		assert.Contains(t, query, "INSERT INTO sales")
		require.Len(t, args, len(saleColumns))
		assert.Equal(t, false, args[7])
		assert.False(t, args[8].(decimal.NullDecimal).Valid)
		assert.False(t, args[9].(decimal.NullDecimal).Valid)
		assert.Equal(t, date, args[10])
	})

	t.Run("Venda em parceria grava os dois investimentos", func(t *testing.T) {
		sale := &domain.Sale{
			ID:            "abc123def456",
			UserID:        7,
			Customer:      "Marie de Vries",
			Model:         "Model Pro-200",
			PurchasePrice: decimal.NewFromInt(120),
			SellingPrice:  decimal.NewFromInt(180),
			Quantity:      1,
			Date:          date,
			Partnership: &domain.Partnership{
				MyInvestment:      decimal.NewFromInt(30),
				PartnerInvestment: decimal.NewFromInt(70),
			},
		}

		_, args, err := buildCreateSaleQuery(sale)

		require.NoError(t, err)
		assert.Equal(t, true, args[7])
		my := args[8].(decimal.NullDecimal)
		partner := args[9].(decimal.NullDecimal)
		assert.True(t, my.Valid)
		assert.True(t, my.Decimal.Equal(decimal.NewFromInt(30)))
		assert.True(t, partner.Decimal.Equal(decimal.NewFromInt(70)))
	})
}

func TestBuildSaveSnapshotQuery(t *testing.T) {
	snapshot := &domain.DailySnapshot{
		UserID: 7,
		Date:   time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
		Statistics: domain.SalesStatistics{
			TotalRevenue:    decimal.NewFromInt(555),
			TotalProfit:     decimal.NewFromInt(185),
			TotalSales:      3,
			TotalInvestment: decimal.NewFromInt(370),
		},
		TotalQuantity: 6,
	}

	query, args, err := buildSaveSnapshotQuery(snapshot)

	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO daily_sales_snapshots")
	assert.Contains(t, query, "ON CONFLICT (user_id, date) DO UPDATE")
	assert.Equal(t, "2025-10-03", args[1])
	assert.Equal(t, 3, args[4])
	assert.Equal(t, 6, args[6])
}
