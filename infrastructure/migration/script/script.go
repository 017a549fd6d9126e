package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	"github.com/vfg2006/sales-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/utils"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		role_id       INTEGER NOT NULL DEFAULT 2,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales (
		id                 VARCHAR(12) PRIMARY KEY,
		user_id            INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		customer           TEXT NOT NULL CHECK (btrim(customer) <> ''),
		model              TEXT NOT NULL CHECK (btrim(model) <> ''),
		purchase_price     NUMERIC NOT NULL CHECK (purchase_price >= 0),
		selling_price      NUMERIC NOT NULL CHECK (selling_price >= 0),
		quantity           INTEGER NOT NULL CHECK (quantity >= 1),
		is_partnership     BOOLEAN NOT NULL DEFAULT FALSE,
		my_investment      NUMERIC CHECK (my_investment >= 0),
		partner_investment NUMERIC CHECK (partner_investment >= 0),
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT sales_partnership_consistent CHECK (
			(is_partnership AND my_investment IS NOT NULL AND partner_investment IS NOT NULL)
			OR (NOT is_partnership AND my_investment IS NULL AND partner_investment IS NULL)
		)
	)`,
	`CREATE INDEX IF NOT EXISTS sales_user_created_at_idx ON sales (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS daily_sales_snapshots (
		id               BIGSERIAL PRIMARY KEY,
		user_id          INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date             DATE NOT NULL,
		total_revenue    NUMERIC NOT NULL DEFAULT 0,
		total_profit     NUMERIC NOT NULL DEFAULT 0,
		total_sales      INTEGER NOT NULL DEFAULT 0,
		total_investment NUMERIC NOT NULL DEFAULT 0,
		total_quantity   INTEGER NOT NULL DEFAULT 0,
		customers        TEXT[] NOT NULL DEFAULT '{}',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT daily_sales_snapshots_user_date_unique UNIQUE (user_id, date)
	)`,
}

type demoSale struct {
	Customer      string
	Model         string
	PurchasePrice string
	SellingPrice  string
	Quantity      int
	Day           int
}

// Vendas de exemplo de outubro de 2025
var demoSales = []demoSale{
	{Customer: "Jan Jansen", Model: "Model X-100", PurchasePrice: "50", SellingPrice: "75", Quantity: 2, Day: 1},
	{Customer: "Marie de Vries", Model: "Model Pro-200", PurchasePrice: "120", SellingPrice: "180", Quantity: 1, Day: 15},
	{Customer: "Piet Bakker", Model: "Model X-100", PurchasePrice: "50", SellingPrice: "75", Quantity: 3, Day: 20},
}

func createSchema(ctx context.Context, tx *sql.Tx) error {
	for i, statement := range schema {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			log.L.WithField("statement", i).WithError(err).Error("ERRO ao aplicar migração")
			return err
		}
	}

	log.L.Infof("%d instruções de schema aplicadas", len(schema))
	return nil
}

func seedSales(ctx context.Context, tx *sql.Tx, userID int, loc *time.Location) error {
	startTime := time.Now()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sales (id, user_id, customer, model, purchase_price, selling_price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range demoSales {
		id, err := utils.GenerateID()
		if err != nil {
			return err
		}

		createdAt := time.Date(2025, time.October, s.Day, 12, 0, 0, 0, loc)
		if _, err := stmt.ExecContext(ctx, id, userID, s.Customer, s.Model, s.PurchasePrice, s.SellingPrice, s.Quantity, createdAt); err != nil {
			log.L.WithFields(log.Fields{
				"user_id":       userID,
				"sale_customer": s.Customer,
			}).WithError(err).Errorf("ERRO ao inserir venda [%d/%d]", i+1, len(demoSales))
			return err
		}
	}

	log.L.WithField("user_id", userID).Infof("%d vendas de exemplo inseridas em %v", len(demoSales), time.Since(startTime))
	return nil
}

func main() {
	seedUser := flag.Int("seed-user", 0, "ID do usuário que recebe as vendas de exemplo (0 desativa)")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}
	log.Setup(cfg.App.LogLevel)
	log.L.Info("Iniciando script de migração...")

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	err = conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := createSchema(ctx, tx); err != nil {
			return err
		}

		if *seedUser > 0 {
			return seedSales(ctx, tx, *seedUser, cfg.Location())
		}

		return nil
	})
	if err != nil {
		log.L.WithError(err).Fatal("Migração falhou, transação desfeita")
	}

	log.L.Info("Migração concluída com sucesso")
}
