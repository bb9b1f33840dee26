package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/nola-insights/pkg/log"
)

type healthResponse struct {
	Status         string    `json:"status"`
	Time           time.Time `json:"time"`
	SnapshotLoaded bool      `json:"snapshot_loaded"`
}

// HealthcheckHandler responde 200 mesmo sem snapshot; a ausência aparece em snapshot_loaded
func HealthcheckHandler(catalog SnapshotCatalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := catalog.Current()
		writeJSON(w, log.ForContext(r.Context()), http.StatusOK, healthResponse{
			Status:         "ok",
			Time:           time.Now(),
			SnapshotLoaded: err == nil,
		})
	})
}
