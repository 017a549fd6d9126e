package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/sales-tracker-api/pkg/apiErrors"
)

type fakeCronJob struct {
	running   bool
	triggered int
}

func (f *fakeCronJob) TriggerManualSync() bool {
	if f.running {
		return false
	}
	f.triggered++
	return true
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": f.running}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name              string
		path              string
		running           bool
		expectedStatus    int
		expectedCode      string
		expectedTriggered int
	}{
		{name: "dispara o resumo diário", path: "/v1/cron/daily-snapshot/run", expectedStatus: http.StatusAccepted, expectedTriggered: 1},
		{name: "dispara todas", path: "/v1/cron/all/run", expectedStatus: http.StatusAccepted, expectedTriggered: 1},
		{name: "já em execução", path: "/v1/cron/daily-snapshot/run", running: true, expectedStatus: http.StatusConflict, expectedCode: apiErrors.ErrJobAlreadyRunning},
		{name: "tipo inválido", path: "/v1/cron/meta/run", expectedStatus: http.StatusBadRequest, expectedCode: apiErrors.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{running: tt.running}
			rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CronJobTypeDailySnapshot: job})...))

			rec := doRequest(t, rt, http.MethodPost, tt.path, "", adminClaims)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.expectedTriggered, job.triggered)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, rec))
			}
		})
	}
}

func TestRunCronJob_AdminOnly(t *testing.T) {
	job := &fakeCronJob{}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CronJobTypeDailySnapshot: job})...))

	rec := doRequest(t, rt, http.MethodPost, "/v1/cron/daily-snapshot/run", "", sellerClaims)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apiErrors.ErrInsufficientPrivilege, errorCode(t, rec))
	assert.Zero(t, job.triggered)
}

func TestGetCronStatus(t *testing.T) {
	job := &fakeCronJob{running: true}
	rt := router.New(router.WithRoutes(CronJobs(CronJobServices{CronJobTypeDailySnapshot: job})...))

	rec := doRequest(t, rt, http.MethodGet, "/v1/cron/status", "", adminClaims)

	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	decodeBody(t, rec, &status)
	assert.Equal(t, true, status[CronJobTypeDailySnapshot]["sync_running"])
}
