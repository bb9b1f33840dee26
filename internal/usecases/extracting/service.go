package extracting

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/pkg/log"
	"github.com/vfg2006/nola-insights/pkg/utils"
)

// Service implementa Extractor: conexão, consulta e gravação do snapshot
type Service struct {
	db           Pinger
	source       SalesSource
	writer       SnapshotWriter
	queryTimeout time.Duration
	now          func() time.Time
}

// NewService cria uma nova instância do extrator. queryTimeout zero não limita a consulta.
func NewService(db Pinger, source SalesSource, writer SnapshotWriter, queryTimeout time.Duration) *Service {
	return &Service{
		db:           db,
		source:       source,
		writer:       writer,
		queryTimeout: queryTimeout,
		now:          time.Now,
	}
}

// Run executa o lote inteiro. Não há tentativa parcial: em erro o snapshot anterior permanece.
func (s *Service) Run(ctx context.Context) (*domain.ExtractionReport, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate run id")
	}

	report := &domain.ExtractionReport{
		RunID:       runID,
		StartedAt:   s.now(),
		SnapshotURI: s.writer.URI(),
	}

	logger := log.L.WithContext(ctx).WithField("run_id", report.RunID)
	logger.Info("Iniciando extração de vendas concluídas")

	if err := s.db.Ping(ctx); err != nil {
		logger.WithError(err).Error("Erro ao conectar ao banco de dados")
		return nil, NewStageError(ErrConnection, report.RunID, err)
	}

	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	queryStart := s.now()
	lines, err := s.source.FetchCompleted(queryCtx)
	if err != nil {
		logger.WithError(err).Error("Erro ao executar a consulta de vendas")
		return nil, NewStageError(ErrQuery, report.RunID, err)
	}
	report.QueryDuration = s.now().Sub(queryStart)
	report.RowCount = len(lines)
	report.DistinctSales = countDistinctSales(lines)

	logger.WithFields(log.Fields{
		"rows":           report.RowCount,
		"distinct_sales": report.DistinctSales,
		"duration_ms":    report.QueryDuration.Milliseconds(),
	}).Info("Vendas extraídas")

	meta := domain.SnapshotMetadata{
		RunID:         report.RunID,
		RowCount:      report.RowCount,
		SchemaVersion: domain.SnapshotSchemaVersion,
		ExtractedAt:   report.StartedAt,
	}

	writeStart := s.now()
	if err := s.writer.Write(ctx, lines, meta); err != nil {
		logger.WithError(err).Error("Erro ao gravar o snapshot analítico")
		return nil, NewStageError(ErrPersistence, report.RunID, err)
	}
	report.WriteDuration = s.now().Sub(writeStart)

	logger.WithFields(log.Fields{
		"snapshot":    report.SnapshotURI,
		"duration_ms": report.WriteDuration.Milliseconds(),
	}).Info("Snapshot analítico publicado")

	return report, nil
}

func (s *Service) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

func countDistinctSales(lines []domain.SaleLine) int {
	sales := make(map[int64]struct{})
	for _, line := range lines {
		sales[line.SaleID] = struct{}{}
	}
	return len(sales)
}
