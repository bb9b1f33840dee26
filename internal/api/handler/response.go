package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/pkg/apiErrors"
	"github.com/vfg2006/nola-insights/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const snapshotUnavailableMessage = "Arquivo de dados não encontrado. Execute o extrator (etl run) para gerar o snapshot analítico."

// warningResponse é a resposta de sucesso sem dados para exibir
type warningResponse struct {
	Warning string `json:"warning"`
}

func writeJSON(w http.ResponseWriter, logger log.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("dashboard: failed to encode response")
	}
}

// writeServiceError traduz os erros do analisador para a resposta padronizada
func writeServiceError(w http.ResponseWriter, logger log.Logger, err error) {
	var computation *domain.ComputationError

	switch {
	case errors.Is(err, domain.ErrEmptyResult):
		writeJSON(w, logger, http.StatusOK, warningResponse{Warning: domain.ErrEmptyResult.Error()})

	case errors.Is(err, domain.ErrSnapshotUnavailable):
		logger.WithError(err).Warn("dashboard: snapshot unavailable")
		apiErrors.WriteError(w, apiErrors.ErrSnapshotUnavailable, snapshotUnavailableMessage, nil)

	case errors.Is(err, errInvalidFormat):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownMetric),
		errors.Is(err, domain.ErrUnknownDimension):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.As(err, &computation):
		logger.WithError(err).WithField("section", computation.Section).Warn("dashboard: section computation failed")
		details := domain.SectionError{Message: computation.Err.Error(), Hint: computation.Hint}
		if errors.Is(err, domain.ErrDimensionNotApplicable) {
			apiErrors.WriteError(w, apiErrors.ErrNotApplicable, computation.Err.Error(), details)
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrComputation, computation.Err.Error(), details)

	default:
		logger.WithError(err).Error("dashboard: unexpected error")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
	}
}
