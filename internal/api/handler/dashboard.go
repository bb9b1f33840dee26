package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/nola-insights/internal/usecases/analyzing"
	"github.com/vfg2006/nola-insights/pkg/log"
)

// GetDashboardOptions retorna as opções da barra lateral e do seletor da tabela dinâmica
func GetDashboardOptions(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		options, err := service.Options()
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, options)
	}
}

// GetDashboard calcula todas as seções do painel para os filtros recebidos
func GetDashboard(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		filters, err := parseFilters(query)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		req, err := parsePivotRequest(query)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		response, err := service.Dashboard(filters, &req)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"rows":   response.RowCount,
			"errors": len(response.Errors),
		}).Debug("dashboard: computed")

		writeJSON(w, logger, http.StatusOK, response)
	}
}

func GetKPIs(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseFilters(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		kpis, err := service.KPIs(filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, kpis)
	}
}

func GetInsights(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseFilters(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		insights, err := service.Insights(filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, insights)
	}
}

func GetHourly(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseFilters(r.URL.Query())
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		series, err := service.Hourly(filters)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, series)
	}
}

// GetPivot retorna a tabela dinâmica. Sem linhas nos filtros, responde 200 apenas com o aviso.
func GetPivot(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		filters, err := parseFilters(query)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		req, err := parsePivotRequest(query)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		table, err := service.Pivot(filters, req)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, table)
	}
}

// ExportPivot baixa a tabela dinâmica em CSV (padrão) ou XLSX
func ExportPivot(service analyzing.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		query := r.URL.Query()

		filters, err := parseFilters(query)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		req, err := parsePivotRequest(query)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		format := query.Get("format")
		if format == "" {
			format = analyzing.FormatCSV
		}

		file, err := service.Export(filters, req, format)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(file.Data); err != nil {
			logger.WithError(err).Warn("dashboard: failed to write export")
		}
	}
}
