package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
)

const (
	salesTable = "sales"
)

var saleColumns = []string{
	"id", "user_id", "customer", "model", "purchase_price", "selling_price",
	"quantity", "is_partnership", "my_investment", "partner_investment", "created_at",
}

//go:generate mockgen -source=sale.go -destination=mocks/sale_repository_mock.go -package=mocks
type SaleRepository interface {
	ListByUser(ctx context.Context, userID int, filter domain.SaleFilter) ([]*domain.Sale, error)
	Create(ctx context.Context, sale *domain.Sale) error
	Delete(ctx context.Context, userID int, id string) (int64, error)
	ListUserIDsWithSales(ctx context.Context, start, end time.Time) ([]int, error)
}

type saleRepository struct {
	conn postgres.Conn
}

func NewSaleRepository(conn postgres.Conn) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

// buildListByUserQuery monta a consulta das vendas do usuário, da mais recente para a mais antiga.
// EndDate é inclusivo: a data final cobre o dia inteiro.
func buildListByUserQuery(userID int, filter domain.SaleFilter) (string, []interface{}, error) {
	query := squirrel.
		Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StartDate != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}

	if filter.EndDate != nil {
		query = query.Where(squirrel.Lt{"created_at": filter.EndDate.AddDate(0, 0, 1)})
	}

	return query.ToSql()
}

func (r *saleRepository) ListByUser(ctx context.Context, userID int, filter domain.SaleFilter) ([]*domain.Sale, error) {
	query, args, err := buildListByUserQuery(userID, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

func buildCreateSaleQuery(sale *domain.Sale) (string, []interface{}, error) {
	var myInvestment, partnerInvestment decimal.NullDecimal
	if sale.Partnership != nil {
		myInvestment = decimal.NewNullDecimal(sale.Partnership.MyInvestment)
		partnerInvestment = decimal.NewNullDecimal(sale.Partnership.PartnerInvestment)
	}

	return squirrel.
		Insert(salesTable).
		Columns(saleColumns...).
		Values(
			sale.ID,
			sale.UserID,
			sale.Customer,
			sale.Model,
			sale.PurchasePrice,
			sale.SellingPrice,
			sale.Quantity,
			sale.IsPartnership(),
			myInvestment,
			partnerInvestment,
			sale.Date,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	query, args, err := buildCreateSaleQuery(sale)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir venda: %w", err)
	}

	return nil
}

// Delete remove a venda do usuário e retorna quantas linhas foram apagadas (0 ou 1)
func (r *saleRepository) Delete(ctx context.Context, userID int, id string) (int64, error) {
	query, args, err := squirrel.
		Delete(salesTable).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover venda: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// ListUserIDsWithSales retorna os usuários com vendas em [start, end)
func (r *saleRepository) ListUserIDsWithSales(ctx context.Context, start, end time.Time) ([]int, error) {
	query, args, err := squirrel.
		Select("DISTINCT user_id").
		From(salesTable).
		Where(squirrel.GtOrEq{"created_at": start}).
		Where(squirrel.Lt{"created_at": end}).
		OrderBy("user_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar usuários com vendas: %w", err)
	}
	defer rows.Close()

	userIDs := make([]int, 0)
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("erro ao processar resultado: %w", err)
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return userIDs, nil
}

func scanSale(rows *sql.Rows) (*domain.Sale, error) {
	sale := &domain.Sale{}
	var isPartnership bool
	var myInvestment, partnerInvestment decimal.NullDecimal

	err := rows.Scan(
		&sale.ID,
		&sale.UserID,
		&sale.Customer,
		&sale.Model,
		&sale.PurchasePrice,
		&sale.SellingPrice,
		&sale.Quantity,
		&isPartnership,
		&myInvestment,
		&partnerInvestment,
		&sale.Date,
	)
	if err != nil {
		return nil, err
	}

	if isPartnership {
		sale.Partnership = &domain.Partnership{
			MyInvestment:      myInvestment.Decimal,
			PartnerInvestment: partnerInvestment.Decimal,
		}
	}

	return sale, nil
}
