package handler

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/pkg/utils"
)

// Valores padrão da análise dinâmica: primeira métrica e primeira dimensão do seletor
const (
	defaultMetric = "total_value"
	defaultRow    = "product"
)

// errInvalidFormat marca parâmetros que não puderam ser interpretados
var errInvalidFormat = errors.New("formato inválido")

// parseFilters lê start_date, end_date, stores, channels e weekdays.
// Lista ausente não filtra; lista presente e vazia não aceita nenhuma linha.
func parseFilters(query url.Values) (domain.Filters, error) {
	var filters domain.Filters

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		return filters, fmt.Errorf("%w: %w: start_date deve estar no formato AAAA-MM-DD", domain.ErrInvalidInput, errInvalidFormat)
	}
	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		return filters, fmt.Errorf("%w: %w: end_date deve estar no formato AAAA-MM-DD", domain.ErrInvalidInput, errInvalidFormat)
	}
	filters.StartDate = startDate
	filters.EndDate = endDate

	filters.Stores = list(query, "stores")
	filters.Channels = list(query, "channels")

	if names := list(query, "weekdays"); names != nil {
		filters.Weekdays = make([]time.Weekday, 0, len(names))
		for _, name := range names {
			w, err := domain.ParseWeekday(name)
			if err != nil {
				return filters, err
			}
			filters.Weekdays = append(filters.Weekdays, w)
		}
	}

	if err := filters.Validate(); err != nil {
		return filters, err
	}

	return filters, nil
}

func list(query url.Values, key string) []string {
	_, present := query[key]
	return utils.SplitList(query.Get(key), present)
}

// parsePivotRequest lê metric, row, column e allow_unknown
func parsePivotRequest(query url.Values) (domain.PivotRequest, error) {
	var req domain.PivotRequest

	metricKey := query.Get("metric")
	if metricKey == "" {
		metricKey = defaultMetric
	}
	metric, err := domain.ParseMetric(metricKey)
	if err != nil {
		return req, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	rowKey := query.Get("row")
	if rowKey == "" {
		rowKey = defaultRow
	}
	row, err := domain.ParseDimension(rowKey)
	if err != nil {
		return req, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	column, err := domain.ParseDimension(query.Get("column"))
	if err != nil {
		return req, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	req = domain.PivotRequest{Metric: metric, Row: row, Column: column}

	if raw := query.Get("allow_unknown"); raw != "" {
		req.AllowUnknown, err = strconv.ParseBool(raw)
		if err != nil {
			return req, fmt.Errorf("%w: %w: allow_unknown deve ser true ou false", domain.ErrInvalidInput, errInvalidFormat)
		}
	}

	if err := req.Validate(); err != nil {
		return req, err
	}

	return req, nil
}
