package analyzing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/pkg/log"
)

// Seções do painel
const (
	SectionKPIs     = "kpis"
	SectionInsights = "insights"
	SectionHourly   = "hourly"
	SectionPivot    = "pivot"
)

// Service implementa Analyzer sobre o snapshot compartilhado
type Service struct {
	snapshots SnapshotProvider
}

// NewService cria uma nova instância do serviço de análise
func NewService(snapshots SnapshotProvider) *Service {
	return &Service{
		snapshots: snapshots,
	}
}

func (s *Service) Options() (*domain.DashboardOptions, error) {
	snapshot, err := s.snapshots.Current()
	if err != nil {
		return nil, err
	}

	options := &domain.DashboardOptions{
		MinDate:  snapshot.MinDate,
		MaxDate:  snapshot.MaxDate,
		Stores:   snapshot.Stores(),
		Channels: snapshot.Channels(),
		Weekdays: domain.WeekdayNames(),
		Snapshot: snapshot.Metadata,
	}

	for _, m := range domain.Metrics {
		d, _ := m.Descriptor()
		options.Metrics = append(options.Metrics, domain.Option{Key: d.Key, Label: d.Label})
	}

	options.ColumnDimensions = []domain.Option{{Key: domain.DimensionNone.String(), Label: "Nenhum"}}
	for _, dim := range domain.Dimensions {
		d, _ := dim.Descriptor()
		option := domain.Option{Key: d.Key, Label: d.Label}
		options.RowDimensions = append(options.RowDimensions, option)
		options.ColumnDimensions = append(options.ColumnDimensions, option)
	}

	return options, nil
}

func (s *Service) KPIs(filters domain.Filters) (*domain.KPIs, error) {
	lines, _, err := s.filter(filters)
	if err != nil {
		return nil, err
	}

	var kpis *domain.KPIs
	err = guard(SectionKPIs, func() error {
		kpis = ComputeKPIs(lines)
		return nil
	})
	return kpis, err
}

func (s *Service) Insights(filters domain.Filters) ([]domain.Insight, error) {
	lines, _, err := s.filter(filters)
	if err != nil {
		return nil, err
	}

	var insights []domain.Insight
	err = guard(SectionInsights, func() error {
		var failures map[string]error
		insights, failures = GenerateInsights(lines)
		logHeuristicFailures(failures)
		return nil
	})
	return insights, err
}

func (s *Service) Hourly(filters domain.Filters) ([]domain.HourlyPoint, error) {
	lines, _, err := s.filter(filters)
	if err != nil {
		return nil, err
	}

	var series []domain.HourlyPoint
	err = guard(SectionHourly, func() error {
		series = HourlyRevenue(lines)
		return nil
	})
	return series, err
}

// Pivot retorna domain.ErrEmptyResult quando os filtros não retornam linhas
func (s *Service) Pivot(filters domain.Filters, req domain.PivotRequest) (*domain.PivotTable, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lines, _, err := s.filter(filters)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyResult
	}

	var table *domain.PivotTable
	err = guard(SectionPivot, func() error {
		var buildErr error
		table, buildErr = BuildPivot(lines, req)
		return buildErr
	})
	return table, err
}

func (s *Service) Export(filters domain.Filters, req domain.PivotRequest, format string) (*domain.ExportFile, error) {
	table, err := s.Pivot(filters, req)
	if err != nil {
		return nil, err
	}
	return Export(table, req, format)
}

// Dashboard calcula as seções de forma independente. Sem linhas, responde apenas o aviso,
// os indicadores zerados e o insight de ausência de dados.
func (s *Service) Dashboard(filters domain.Filters, req *domain.PivotRequest) (*domain.DashboardResponse, error) {
	if req != nil {
		if err := req.Validate(); err != nil {
			return nil, err
		}
	}

	lines, applied, err := s.filter(filters)
	if err != nil {
		return nil, err
	}

	response := &domain.DashboardResponse{
		Filters:  applied,
		RowCount: len(lines),
	}

	sectionErr := func(section string, err error) {
		if err == nil {
			return
		}
		if response.Errors == nil {
			response.Errors = make(map[string]domain.SectionError)
		}
		response.Errors[section] = toSectionError(err)
		log.L.WithField("section", section).WithError(err).Warn("Falha ao calcular seção do painel")
	}

	sectionErr(SectionKPIs, guard(SectionKPIs, func() error {
		response.KPIs = ComputeKPIs(lines)
		return nil
	}))

	sectionErr(SectionInsights, guard(SectionInsights, func() error {
		var failures map[string]error
		response.Insights, failures = GenerateInsights(lines)
		logHeuristicFailures(failures)
		return nil
	}))

	if len(lines) == 0 {
		response.Warning = domain.ErrEmptyResult.Error()
		return response, nil
	}

	sectionErr(SectionHourly, guard(SectionHourly, func() error {
		response.Hourly = HourlyRevenue(lines)
		return nil
	}))

	if req != nil {
		sectionErr(SectionPivot, guard(SectionPivot, func() error {
			var buildErr error
			response.Pivot, buildErr = BuildPivot(lines, *req)
			return buildErr
		}))
	}

	return response, nil
}

// filter aplica os limites padrão do snapshot e retorna as linhas e os filtros efetivos
func (s *Service) filter(filters domain.Filters) ([]*domain.SaleLine, domain.Filters, error) {
	snapshot, err := s.snapshots.Current()
	if err != nil {
		return nil, filters, err
	}

	applied := filters.WithDefaults(snapshot)
	lines, err := FilterLines(snapshot.Lines, applied)
	if err != nil {
		return nil, applied, err
	}
	return lines, applied, nil
}

// guard converte panics e erros de agregação em ComputationError da seção
func guard(section string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewComputationError(section, fmt.Errorf("%v", r), "")
		}
	}()

	if err = fn(); err != nil {
		var computation *domain.ComputationError
		if errors.As(err, &computation) {
			return err
		}
		return domain.NewComputationError(section, err, "")
	}
	return nil
}

func toSectionError(err error) domain.SectionError {
	var computation *domain.ComputationError
	if errors.As(err, &computation) {
		return domain.SectionError{Message: computation.Err.Error(), Hint: computation.Hint}
	}
	return domain.SectionError{Message: err.Error()}
}

func logHeuristicFailures(failures map[string]error) {
	for name, err := range failures {
		log.L.WithField("heuristic", name).WithError(err).Warn("Heurística de insight falhou")
	}
}
