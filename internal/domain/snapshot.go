package domain

import "time"

// DailySnapshot é o retrato diário das vendas de um usuário, gerado pelo agendador
type DailySnapshot struct {
	ID            int64           `json:"id"`
	UserID        int             `json:"user_id"`
	Date          time.Time       `json:"date"`
	Statistics    SalesStatistics `json:"statistics"`
	TotalQuantity int             `json:"total_quantity"`
	Customers     []string        `json:"customers"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
