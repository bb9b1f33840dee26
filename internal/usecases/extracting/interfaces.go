package extracting

import (
	"context"

	"github.com/vfg2006/nola-insights/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// Pinger verifica a conexão com o banco de origem
type Pinger interface {
	Ping(ctx context.Context) error
}

// SalesSource executa a consulta de vendas concluídas
type SalesSource interface {
	FetchCompleted(ctx context.Context) ([]domain.SaleLine, error)
}

// SnapshotWriter publica o snapshot de forma atômica
type SnapshotWriter interface {
	Write(ctx context.Context, lines []domain.SaleLine, meta domain.SnapshotMetadata) error
	URI() string
}

// Extractor executa uma extração completa
type Extractor interface {
	Run(ctx context.Context) (*domain.ExtractionReport, error)
}
