package locale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_DayLabel(t *testing.T) {
	tests := []struct {
		name string
		lang string
		date time.Time
		want string
	}{
		{"holandês", "nl", time.Date(2025, 10, 3, 15, 0, 0, 0, time.UTC), "3 okt"},
		{"português", "pt", time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), "28 fev"},
		{"idioma não suportado cai para inglês", "de", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), "1 May"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.lang, "EUR")
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.DayLabel(tt.date))
		})
	}
}

func TestFormatter_DateLabel(t *testing.T) {
	got := Default.DateLabel(time.Date(2025, 10, 3, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, "03 okt 2025", got)
}

func TestFormatter_Currency(t *testing.T) {
	got := Default.Currency(decimal.RequireFromString("555"))
	assert.NotEmpty(t, got)
	assert.Contains(t, got, "555")
}

func TestNew_InvalidInput(t *testing.T) {
	_, err := New("nl", "XX")
	assert.Error(t, err)

	_, err = New("??", "EUR")
	assert.Error(t, err)
}
