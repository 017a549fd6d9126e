package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/sales-tracker-api/internal/api/handler"
	"github.com/vfg2006/sales-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/sales-tracker-api/internal/config"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o roteador com a cadeia global de middlewares
func NewHandler(
	cfg *config.Config,
	db handler.Pinger,
	authenticator authenticating.Authenticator,
	seller selling.Seller,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.Sales(seller)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
		router.WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Rota não encontrada", nil)
		})),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(
	cfg *config.Config,
	db handler.Pinger,
	authenticator authenticating.Authenticator,
	seller selling.Seller,
	cronServices handler.CronJobServices,
) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, db, authenticator, seller, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}
