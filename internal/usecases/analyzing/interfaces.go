package analyzing

import (
	"github.com/vfg2006/nola-insights/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// SnapshotProvider entrega o snapshot carregado no processo
type SnapshotProvider interface {
	// Current retorna o snapshot atual ou domain.ErrSnapshotUnavailable
	Current() (*domain.Snapshot, error)
}

// Analyzer define as operações do painel sobre o snapshot em memória
type Analyzer interface {
	// Options retorna os valores disponíveis para filtros e seletores
	Options() (*domain.DashboardOptions, error)

	KPIs(filters domain.Filters) (*domain.KPIs, error)
	Insights(filters domain.Filters) ([]domain.Insight, error)
	Hourly(filters domain.Filters) ([]domain.HourlyPoint, error)
	Pivot(filters domain.Filters, req domain.PivotRequest) (*domain.PivotTable, error)

	// Export gera o arquivo da tabela dinâmica em csv ou xlsx
	Export(filters domain.Filters, req domain.PivotRequest, format string) (*domain.ExportFile, error)

	// Dashboard calcula todas as seções; a falha de uma seção fica registrada em Errors
	Dashboard(filters domain.Filters, req *domain.PivotRequest) (*domain.DashboardResponse, error)
}
