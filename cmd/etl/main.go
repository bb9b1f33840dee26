package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vfg2006/nola-insights/infrastructure/database/postgres"
	"github.com/vfg2006/nola-insights/infrastructure/repository"
	"github.com/vfg2006/nola-insights/infrastructure/snapshot"
	"github.com/vfg2006/nola-insights/internal/config"
	"github.com/vfg2006/nola-insights/internal/usecases/extracting"
	"github.com/vfg2006/nola-insights/pkg/log"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "etl",
	Short: "Extrai as vendas concluídas para o snapshot analítico",
	Long: `Lê as vendas concluídas do PostgreSQL de origem e grava o snapshot colunar
(parquet) consumido pela API do painel.

O lote é sempre completo: uma falha em qualquer estágio encerra a execução e o
snapshot anterior continua publicado.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		log.Configure(cfg.App.LogLevel)

		if compression, _ := cmd.Flags().GetString("compression"); compression != "" {
			cfg.Snapshot.Compression = compression
		}

		return cfg.RequireDatabase()
	},
}

func init() {
	rootCmd.PersistentFlags().String("compression", "", "codec do parquet (snappy, zstd, gzip, none); sobrepõe SNAPSHOT_COMPRESSION")
	rootCmd.AddCommand(runCmd, scheduleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.L.WithError(err).Error("Extração falhou")
		os.Exit(1)
	}
}

// extractor agrupa o serviço e os recursos que precisam ser fechados ao final
type extractor struct {
	*extracting.Service
	conn  *postgres.Connection
	store *snapshot.Store
}

func newExtractor(ctx context.Context) (*extractor, error) {
	conn, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		return nil, err
	}

	store, err := snapshot.OpenStore(ctx, cfg.Snapshot)
	if err != nil {
		conn.Close()
		return nil, err
	}

	service := extracting.NewService(
		conn,
		repository.NewSaleLineRepository(conn),
		store,
		cfg.Database.QueryTimeout,
	)

	return &extractor{Service: service, conn: conn, store: store}, nil
}

func (e *extractor) Close() {
	if err := e.store.Close(); err != nil {
		log.L.WithError(err).Warn("Erro ao fechar o bucket do snapshot")
	}
	if err := e.conn.Close(); err != nil {
		log.L.WithError(err).Warn("Erro ao fechar a conexão com o PostgreSQL")
	}
}
