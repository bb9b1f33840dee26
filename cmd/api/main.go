package main

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/nola-insights/infrastructure/database/postgres"
	"github.com/vfg2006/nola-insights/infrastructure/repository"
	"github.com/vfg2006/nola-insights/infrastructure/snapshot"
	"github.com/vfg2006/nola-insights/internal/api"
	"github.com/vfg2006/nola-insights/internal/api/handler"
	"github.com/vfg2006/nola-insights/internal/config"
	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/internal/scheduler"
	"github.com/vfg2006/nola-insights/internal/usecases/analyzing"
	"github.com/vfg2006/nola-insights/internal/usecases/extracting"
	"github.com/vfg2006/nola-insights/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := snapshot.OpenStore(ctx, cfg.Snapshot)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o bucket do snapshot")
	}
	defer store.Close()

	catalog := snapshot.NewCatalog(store)

	// Sem snapshot a API sobe mesmo assim e responde 503 até o extrator rodar
	if _, err := catalog.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrSnapshotUnavailable) {
			logrus.WithField("snapshot", store.URI()).Warn("Snapshot analítico não encontrado. Execute o extrator (etl run).")
		} else {
			logrus.WithError(err).Error("Erro ao carregar o snapshot analítico")
		}
	}

	analyzer := analyzing.NewService(catalog)

	var sync handler.SnapshotSync
	if syncService := snapshotSync(ctx, cfg, store, catalog); syncService != nil {
		sync = syncService
	}

	server, err := api.New(cfg, analyzer, catalog, sync)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// snapshotSync liga a extração agendada dentro da API. Retorna nil quando desligada
// ou quando não há DATABASE_URL.
func snapshotSync(ctx context.Context, cfg *config.Config, store *snapshot.Store, catalog *snapshot.Catalog) *scheduler.SnapshotSyncService {
	if !cfg.SnapshotSync.Enabled {
		return nil
	}

	if err := cfg.RequireDatabase(); err != nil {
		logrus.WithError(err).Warn("Extração agendada ignorada")
		return nil
	}

	conn, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logrus.WithError(err).Error("Erro ao configurar a conexão com o PostgreSQL")
		return nil
	}
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	extractor := extracting.NewService(conn, repository.NewSaleLineRepository(conn), store, cfg.Database.QueryTimeout)

	reload := func(ctx context.Context, report *domain.ExtractionReport) {
		if _, err := catalog.Load(ctx); err != nil {
			logrus.WithError(err).WithField("run_id", report.RunID).Error("Erro ao recarregar o snapshot após a extração")
		}
	}

	syncService := scheduler.NewSnapshotSyncService(extractor, cfg, reload)
	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de extração do snapshot")
		return nil
	}

	logrus.Info("Agendador de extração do snapshot iniciado com sucesso")
	return syncService
}
