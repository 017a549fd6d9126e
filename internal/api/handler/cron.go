package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/sales-tracker-api/pkg/log"
)

const (
	CronJobTypeDailySnapshot = "daily-snapshot"
	CronJobTypeAll           = "all"
)

// CronJob é satisfeito pelos serviços do pacote scheduler
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices mapeia o tipo da cron job para o serviço que a executa
type CronJobServices map[string]CronJob

func (c CronJobServices) types() []string {
	types := make([]string, 0, len(c))
	for name := range c {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		var targets []string
		if cronType == CronJobTypeAll {
			targets = services.types()
		} else if _, ok := services[cronType]; ok {
			targets = []string{cronType}
		} else {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]any{
				"accepted": append(services.types(), CronJobTypeAll),
			})
			return
		}

		started := make([]string, 0, len(targets))
		running := make([]string, 0)
		for _, name := range targets {
			if services[name].TriggerManualSync() {
				started = append(started, name)
			} else {
				running = append(running, name)
			}
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"job":     cronType,
			"started": started,
			"running": running,
		}).Info("Execução manual de cron job solicitada")

		if len(started) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, "Cron job já em execução", map[string]any{
				"running": running,
			})
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
			"running": running,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
