package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/pkg/apiErrors"
	"github.com/vfg2006/nola-insights/pkg/log"
)

// SnapshotCatalog é o catálogo em memória servido pela API
type SnapshotCatalog interface {
	Current() (*domain.Snapshot, error)
	Load(ctx context.Context) (*domain.Snapshot, error)
}

// SnapshotSync dispara a extração sob demanda. Nil quando o agendamento está desligado.
type SnapshotSync interface {
	RunNow(ctx context.Context) (*domain.ExtractionReport, error)
	Status() (running bool, startedAt, completedAt time.Time, last *domain.ExtractionReport)
}

type snapshotStatus struct {
	Source   string                  `json:"source"`
	LoadedAt time.Time               `json:"loaded_at"`
	Rows     int                     `json:"rows"`
	MinDate  time.Time               `json:"min_date"`
	MaxDate  time.Time               `json:"max_date"`
	Metadata domain.SnapshotMetadata `json:"metadata"`
}

func newSnapshotStatus(s *domain.Snapshot) snapshotStatus {
	return snapshotStatus{
		Source:   s.Source,
		LoadedAt: s.LoadedAt,
		Rows:     s.Len(),
		MinDate:  s.MinDate,
		MaxDate:  s.MaxDate,
		Metadata: s.Metadata,
	}
}

type syncStatus struct {
	Running     bool                     `json:"running"`
	StartedAt   *time.Time               `json:"started_at,omitempty"`
	CompletedAt *time.Time               `json:"completed_at,omitempty"`
	LastReport  *domain.ExtractionReport `json:"last_report,omitempty"`
}

// GetSnapshot descreve o snapshot atualmente carregado
func GetSnapshot(catalog SnapshotCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot, err := catalog.Current()
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, newSnapshotStatus(snapshot))
	}
}

// ReloadSnapshot relê o arquivo depois de uma nova execução do extrator.
// Se a leitura falhar o snapshot anterior continua sendo servido.
func ReloadSnapshot(catalog SnapshotCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - ReloadSnapshot")

		snapshot, err := catalog.Load(r.Context())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, newSnapshotStatus(snapshot))
	}
}

// RunSnapshotSync executa o extrator imediatamente e recarrega o catálogo
func RunSnapshotSync(sync SnapshotSync) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("INIT - RunSnapshotSync")

		if sync == nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncDisabled, "Sincronização do snapshot não está habilitada", nil)
			return
		}

		// a extração e a recarga do catálogo seguem mesmo se o cliente desconectar
		report, err := sync.RunNow(context.WithoutCancel(r.Context()))
		if err != nil {
			logger.WithError(err).Error("Erro ao executar a extração do snapshot")
			apiErrors.WriteError(w, apiErrors.ErrExtraction, "Erro ao executar a extração do snapshot", nil)
			return
		}

		if report == nil {
			writeJSON(w, logger, http.StatusAccepted, map[string]string{
				"message": "Extração já em andamento",
			})
			return
		}

		writeJSON(w, logger, http.StatusOK, report)
	}
}

// GetSnapshotSyncStatus retorna o estado da última extração agendada
func GetSnapshotSyncStatus(sync SnapshotSync) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if sync == nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncDisabled, "Sincronização do snapshot não está habilitada", nil)
			return
		}

		running, startedAt, completedAt, last := sync.Status()
		status := syncStatus{Running: running, LastReport: last}
		if !startedAt.IsZero() {
			status.StartedAt = &startedAt
		}
		if !completedAt.IsZero() {
			status.CompletedAt = &completedAt
		}

		writeJSON(w, logger, http.StatusOK, status)
	}
}
