package main

import (
	"context"

	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/infrastructure/repository"
	"github.com/vfg2006/sales-tracker-api/infrastructure/spreadsheet"
	"github.com/vfg2006/sales-tracker-api/internal/api"
	"github.com/vfg2006/sales-tracker-api/internal/api/handler"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/scheduler"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}

	log.Setup(cfg.App.LogLevel)
	log.L.WithFields(log.Fields{
		"level":    cfg.App.LogLevel,
		"locale":   cfg.App.Locale,
		"currency": cfg.App.Currency,
		"timezone": cfg.Location().String(),
	}).Info("Configuração carregada")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	snapshotRepo := repository.NewDailySnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	seller := selling.NewService(saleRepo, snapshotRepo, spreadsheet.NewLedgerWriter(), cfg)

	dailySnapshotSyncService := scheduler.NewDailySnapshotSyncService(saleRepo, snapshotRepo, cfg)
	if err := dailySnapshotSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de resumos diários")
	}

	cronServices := handler.CronJobServices{
		handler.CronJobTypeDailySnapshot: dailySnapshotSyncService,
	}

	server := api.New(cfg, pgConn, authenticator, seller, cronServices)
	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor encerrado com erro")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		log.L.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
