package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/sales-tracker-api/pkg/log"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde 200 enquanto o banco responder; sem banco configurado só indica que o processo está vivo
func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("Banco de dados indisponível no healthcheck")
				status["status"] = "unavailable"
				status["database"] = "down"
				writeJSON(w, r, http.StatusServiceUnavailable, status)
				return
			}
			status["database"] = "up"
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
