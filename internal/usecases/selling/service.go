package selling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/infrastructure/spreadsheet"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/domain"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/locale"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

const defaultSnapshotWindowDays = 30

type Seller interface {
	ListSales(ctx context.Context, userID int, filter domain.SaleFilter) ([]*domain.Sale, error)
	ListLedger(ctx context.Context, userID int, filter domain.SaleFilter) ([]domain.LedgerEntry, error)
	AddSale(ctx context.Context, userID int, req domain.NewSaleRequest) (*domain.Sale, error)
	DeleteSale(ctx context.Context, userID int, id string) error
	GetStatistics(ctx context.Context, userID int, filter domain.SaleFilter) (domain.SalesStatistics, error)
	GetDailySummaries(ctx context.Context, userID int, filter domain.SaleFilter) ([]domain.DailySummary, error)
	GetOverview(ctx context.Context, userID int, filter domain.SaleFilter) (*domain.SalesOverview, error)
	ComputeSplit(myInvestmentRaw, partnerInvestmentRaw string) domain.Split
	ExportLedger(ctx context.Context, userID int, filter domain.SaleFilter) (*domain.LedgerFile, error)
	GetSnapshots(ctx context.Context, userID int, startDate, endDate *time.Time) ([]*domain.DailySnapshot, error)
	Location() *time.Location
}

type Option func(*Service)

// WithClock troca o relógio usado para datar novas vendas
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator troca o gerador de IDs das vendas
func WithIDGenerator(generate func() (string, error)) Option {
	return func(s *Service) {
		s.generateID = generate
	}
}

type Service struct {
	saleRepo     repository.SaleRepository
	snapshotRepo repository.DailySnapshotRepository
	ledgerWriter spreadsheet.LedgerWriter
	formatter    *locale.Formatter
	location     *time.Location
	validate     *validator.Validate
	now          func() time.Time
	generateID   func() (string, error)
}

func NewService(
	saleRepo repository.SaleRepository,
	snapshotRepo repository.DailySnapshotRepository,
	ledgerWriter spreadsheet.LedgerWriter,
	cfg *config.Config,
	opts ...Option,
) *Service {
	formatter, err := locale.New(cfg.App.Locale, cfg.App.Currency)
	if err != nil {
		log.L.WithError(err).Warn("Idioma ou moeda inválidos, usando o padrão (nl, EUR)")
		formatter = locale.Default
	}

	s := &Service{
		saleRepo:     saleRepo,
		snapshotRepo: snapshotRepo,
		ledgerWriter: ledgerWriter,
		formatter:    formatter,
		location:     cfg.Location(),
		validate:     newValidator(),
		now:          time.Now,
		generateID:   utils.GenerateID,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Location() *time.Location {
	return s.location
}

func validateFilter(filter domain.SaleFilter) error {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return NewSaleError(ErrInvalidDateRange, apiErrors.ErrInvalidFormat, nil)
	}
	return nil
}

// ListSales retorna as vendas do usuário, da mais recente para a mais antiga, com a data no fuso configurado
func (s *Service) ListSales(ctx context.Context, userID int, filter domain.SaleFilter) ([]*domain.Sale, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListByUser(ctx, userID, filter)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao listar vendas")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, nil)
	}

	for _, sale := range sales {
		sale.Date = sale.Date.In(s.location)
	}

	return sales, nil
}

func (s *Service) ListLedger(ctx context.Context, userID int, filter domain.SaleFilter) ([]domain.LedgerEntry, error) {
	sales, err := s.ListSales(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return toLedgerEntries(sales, s.formatter, s.location), nil
}

// AddSale valida a requisição, atribui ID e data e grava a venda
func (s *Service) AddSale(ctx context.Context, userID int, req domain.NewSaleRequest) (*domain.Sale, error) {
	if details := validateRequest(s.validate, &req); details != nil {
		return nil, NewSaleError(ErrInvalidSale, apiErrors.ErrInvalidSale, details)
	}

	partnership, err := req.PartnershipFromRequest()
	if errors.Is(err, domain.ErrAmountOutOfRange) {
		return nil, NewSaleError(err, apiErrors.ErrInvalidSale, nil)
	}
	if err != nil {
		return nil, NewSaleError(err, apiErrors.ErrInvalidPartnership, nil)
	}

	id, err := s.generateID()
	if err != nil {
		return nil, NewSaleError(ErrIDGeneration, apiErrors.ErrInternalServer, nil)
	}

	sale := &domain.Sale{
		ID:            id,
		UserID:        userID,
		Customer:      req.Customer,
		Model:         req.Model,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		Quantity:      req.Quantity,
		Date:          s.now().In(s.location),
		Partnership:   partnership,
	}

	if err := sale.Validate(); err != nil {
		return nil, NewSaleError(err, apiErrors.ErrInvalidSale, nil)
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"sale_id": sale.ID,
			"error":   err.Error(),
		}).Error("Erro ao gravar venda")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, nil)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id":        userID,
		"sale_id":        sale.ID,
		"sale_quantity":  sale.Quantity,
		"sale_partnered": sale.IsPartnership(),
	}).Info("Venda registrada")

	return sale, nil
}

// DeleteSale remove a venda do usuário. Remover uma venda que não existe não é erro.
func (s *Service) DeleteSale(ctx context.Context, userID int, id string) error {
	removed, err := s.saleRepo.Delete(ctx, userID, id)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"sale_id": id,
			"error":   err.Error(),
		}).Error("Erro ao remover venda")
		return NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, nil)
	}

	if removed == 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"sale_id": id,
		}).Debug("Venda já removida ou inexistente")
		return nil
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"user_id": userID,
		"sale_id": id,
	}).Info("Venda removida")

	return nil
}

func (s *Service) GetStatistics(ctx context.Context, userID int, filter domain.SaleFilter) (domain.SalesStatistics, error) {
	sales, err := s.ListSales(ctx, userID, filter)
	if err != nil {
		return domain.SalesStatistics{}, err
	}

	return aggregating.ComputeStatistics(sales), nil
}

func (s *Service) GetDailySummaries(ctx context.Context, userID int, filter domain.SaleFilter) ([]domain.DailySummary, error) {
	sales, err := s.ListSales(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return aggregating.GroupByDayWith(sales, s.formatter), nil
}

// GetOverview calcula estatísticas, resumo diário e tabela a partir da mesma leitura
func (s *Service) GetOverview(ctx context.Context, userID int, filter domain.SaleFilter) (*domain.SalesOverview, error) {
	sales, err := s.ListSales(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	return &domain.SalesOverview{
		Statistics: aggregating.ComputeStatistics(sales),
		Daily:      aggregating.GroupByDayWith(sales, s.formatter),
		Ledger:     toLedgerEntries(sales, s.formatter, s.location),
	}, nil
}

func (s *Service) ComputeSplit(myInvestmentRaw, partnerInvestmentRaw string) domain.Split {
	return aggregating.ComputeSplit(myInvestmentRaw, partnerInvestmentRaw)
}

// ExportLedger gera a planilha do filtro; o nome do arquivo leva a data de hoje
func (s *Service) ExportLedger(ctx context.Context, userID int, filter domain.SaleFilter) (*domain.LedgerFile, error) {
	entries, err := s.ListLedger(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	buf, err := s.ledgerWriter.Write(entries)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao gerar planilha de vendas")
		return nil, NewSaleError(ErrExportFailed, apiErrors.ErrSaleExport, nil)
	}

	return &domain.LedgerFile{
		Filename: fmt.Sprintf("verkopen-%s.xlsx", s.now().In(s.location).Format(time.DateOnly)),
		Content:  buf,
	}, nil
}

// GetSnapshots retorna os resumos diários gravados pelo agendador.
// Sem datas, devolve os últimos 30 dias até hoje.
func (s *Service) GetSnapshots(ctx context.Context, userID int, startDate, endDate *time.Time) ([]*domain.DailySnapshot, error) {
	end := utils.StartOfDay(s.now().In(s.location))
	if endDate != nil {
		end = *endDate
	}

	start := end.AddDate(0, 0, -defaultSnapshotWindowDays)
	if startDate != nil {
		start = *startDate
	}

	if err := validateFilter(domain.SaleFilter{StartDate: &start, EndDate: &end}); err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepo.GetByDateRange(ctx, userID, start, end)
	if err != nil {
		log.ForContext(ctx).WithFields(log.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("Erro ao buscar resumos diários")
		return nil, NewSaleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, nil)
	}

	return snapshots, nil
}
