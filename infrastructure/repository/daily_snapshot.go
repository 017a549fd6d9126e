package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const (
	dailySnapshotsTable = "daily_sales_snapshots"
)

var snapshotColumns = []string{
	"id", "user_id", "date", "total_revenue", "total_profit", "total_sales",
	"total_investment", "total_quantity", "customers", "created_at", "updated_at",
}

//go:generate mockgen -source=daily_snapshot.go -destination=mocks/daily_snapshot_repository_mock.go -package=mocks
type DailySnapshotRepository interface {
	SaveOrUpdate(ctx context.Context, snapshot *domain.DailySnapshot) error
	GetByDateRange(ctx context.Context, userID int, startDate, endDate time.Time) ([]*domain.DailySnapshot, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type dailySnapshotRepository struct {
	conn postgres.Conn
}

func NewDailySnapshotRepository(conn postgres.Conn) DailySnapshotRepository {
	return &dailySnapshotRepository{
		conn: conn,
	}
}

func buildSaveSnapshotQuery(snapshot *domain.DailySnapshot) (string, []interface{}, error) {
	customers := snapshot.Customers
	if customers == nil {
		customers = []string{}
	}

	return squirrel.StatementBuilder.
		Insert(dailySnapshotsTable).
		Columns("user_id", "date", "total_revenue", "total_profit", "total_sales", "total_investment", "total_quantity", "customers").
		Values(
			snapshot.UserID,
			snapshot.Date.Format(time.DateOnly),
			snapshot.Statistics.TotalRevenue,
			snapshot.Statistics.TotalProfit,
			snapshot.Statistics.TotalSales,
			snapshot.Statistics.TotalInvestment,
			snapshot.TotalQuantity,
			pq.Array(customers),
		).
		Suffix(`
			ON CONFLICT (user_id, date) DO UPDATE SET
				total_revenue = EXCLUDED.total_revenue,
				total_profit = EXCLUDED.total_profit,
				total_sales = EXCLUDED.total_sales,
				total_investment = EXCLUDED.total_investment,
				total_quantity = EXCLUDED.total_quantity,
				customers = EXCLUDED.customers,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// SaveOrUpdate grava o resumo do dia; um segundo resumo para o mesmo (usuário, dia) substitui o anterior
func (r *dailySnapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *domain.DailySnapshot) error {
	query, args, err := buildSaveSnapshotQuery(snapshot)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *dailySnapshotRepository) GetByDateRange(ctx context.Context, userID int, startDate, endDate time.Time) ([]*domain.DailySnapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns...).
		From(dailySnapshotsTable).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.GtOrEq{"date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"date": endDate.Format(time.DateOnly)}).
		OrderBy("date DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.DailySnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear resumo diário: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *dailySnapshotRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete(dailySnapshotsTable).
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func scanSnapshot(rows *sql.Rows) (*domain.DailySnapshot, error) {
	snapshot := &domain.DailySnapshot{}
	var customers pq.StringArray

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.Date,
		&snapshot.Statistics.TotalRevenue,
		&snapshot.Statistics.TotalProfit,
		&snapshot.Statistics.TotalSales,
		&snapshot.Statistics.TotalInvestment,
		&snapshot.TotalQuantity,
		&customers,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	snapshot.Customers = []string(customers)
	if snapshot.Customers == nil {
		snapshot.Customers = []string{}
	}

	return snapshot, nil
}
