package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/nola-insights/internal/config"
	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/internal/usecases/extracting"
)

// SnapshotSyncConfig representa a configuração do agendador de extração
type SnapshotSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PublishedFunc é chamada após cada extração concluída, por exemplo para recarregar o catálogo
type PublishedFunc func(ctx context.Context, report *domain.ExtractionReport)

// SnapshotSyncService gerencia o agendamento da extração do snapshot analítico
type SnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              SnapshotSyncConfig
	extractor           extracting.Extractor
	onPublished         PublishedFunc
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastReport          *domain.ExtractionReport
}

// NewSnapshotSyncService cria uma nova instância do agendador de extração
func NewSnapshotSyncService(
	extractor extracting.Extractor,
	appConfig *config.Config,
	onPublished PublishedFunc,
) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule: appConfig.SnapshotSync.CronSchedule,
		SyncEnabled:  appConfig.SnapshotSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de extração carregada")

	return &SnapshotSyncService{
		scheduler:   gocron.NewScheduler(time.Local),
		config:      syncConfig,
		extractor:   extractor,
		onPublished: onPublished,
	}
}

// Start agenda a extração e para o agendador quando o contexto é cancelado
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Extração agendada desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de extração do snapshot")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunNow(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar extração do snapshot: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de extração do snapshot")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa uma extração completa, a menos que outra já esteja em andamento.
// Falhas são registradas e o próximo disparo refaz o lote inteiro.
func (s *SnapshotSyncService) RunNow(ctx context.Context) (*domain.ExtractionReport, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Extração do snapshot já em andamento, ignorando")
		return nil, nil
	}
	s.syncRunning = true
	startedAt := time.Now()
	s.lastSyncStartedAt = startedAt
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	report, err := s.extractor.Run(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro na extração agendada do snapshot")
		return nil, err
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastReport = report
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"run_id":   report.RunID,
		"rows":     report.RowCount,
		"duration": time.Since(startedAt).String(),
	}).Info("Extração agendada concluída")

	if s.onPublished != nil {
		s.onPublished(ctx, report)
	}

	return report, nil
}

// Status retorna o horário da última execução e o último relatório de sucesso
func (s *SnapshotSyncService) Status() (running bool, startedAt, completedAt time.Time, last *domain.ExtractionReport) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning, s.lastSyncStartedAt, s.lastSyncCompletedAt, s.lastReport
}
