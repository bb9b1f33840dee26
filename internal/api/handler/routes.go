package handler

import (
	"net/http"

	"github.com/vfg2006/nola-insights/internal/api/handler/router"
	"github.com/vfg2006/nola-insights/internal/usecases/analyzing"
)

func Healthcheck(catalog SnapshotCatalog) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(catalog),
		},
	}
}

func Dashboard(service analyzing.Analyzer) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/dashboard/options",
			Method:  http.MethodGet,
			Handler: GetDashboardOptions(service),
		},
		{
			Path:    "/v1/dashboard/kpis",
			Method:  http.MethodGet,
			Handler: GetKPIs(service),
		},
		{
			Path:    "/v1/dashboard/insights",
			Method:  http.MethodGet,
			Handler: GetInsights(service),
		},
		{
			Path:    "/v1/dashboard/hourly",
			Method:  http.MethodGet,
			Handler: GetHourly(service),
		},
		{
			Path:    "/v1/dashboard/pivot",
			Method:  http.MethodGet,
			Handler: GetPivot(service),
		},
		{
			Path:    "/v1/dashboard/pivot/export",
			Method:  http.MethodGet,
			Handler: ExportPivot(service),
		},
	}
}

func Snapshot(catalog SnapshotCatalog) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/snapshot",
			Method:  http.MethodGet,
			Handler: GetSnapshot(catalog),
		},
		{
			Path:    "/v1/snapshot/reload",
			Method:  http.MethodPost,
			Handler: ReloadSnapshot(catalog),
		},
	}
}

// SnapshotSyncJobs expõe o disparo manual do extrator agendado
func SnapshotSyncJobs(sync SnapshotSync) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/snapshot/sync/run",
			Method:  http.MethodPost,
			Handler: RunSnapshotSync(sync),
		},
		{
			Path:    "/v1/snapshot/sync/status",
			Method:  http.MethodGet,
			Handler: GetSnapshotSyncStatus(sync),
		},
	}
}
