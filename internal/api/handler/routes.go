package handler

import (
	"net/http"

	"github.com/vfg2006/sales-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/sales-tracker-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Sales(service selling.Seller) []router.Route {
	allRoles := []func(http.Handler) http.Handler{middleware.AllRoles()}

	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteSale(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales/statistics",
			Method:      http.MethodGet,
			Handler:     GetSalesStatistics(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales/daily",
			Method:      http.MethodGet,
			Handler:     GetDailySummaries(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales/overview",
			Method:      http.MethodGet,
			Handler:     GetSalesOverview(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales/split",
			Method:      http.MethodGet,
			Handler:     GetSplit(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales/export",
			Method:      http.MethodGet,
			Handler:     ExportSales(service),
			Middlewares: allRoles,
		},
		{
			Path:        "/v1/sales/snapshots",
			Method:      http.MethodGet,
			Handler:     GetSnapshots(service),
			Middlewares: allRoles,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
