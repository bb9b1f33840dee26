package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vfg2006/nola-insights/internal/scheduler"
	"github.com/vfg2006/nola-insights/pkg/log"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Executa a extração no agendamento ETL_SYNC_CRON até SIGINT/SIGTERM",
	Long: `Mantém o processo ativo e refaz o lote completo a cada disparo de ETL_SYNC_CRON.
Uma execução com falha é registrada e o próximo disparo tenta novamente.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e, err := newExtractor(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		// o comando existe para agendar, independente de ETL_SYNC_ENABLED
		cfg.SnapshotSync.Enabled = true

		if runNow, _ := cmd.Flags().GetBool("now"); runNow {
			if _, err := e.Run(ctx); err != nil {
				log.L.WithError(err).Error("Extração inicial falhou; aguardando o próximo disparo")
			}
		}

		sync := scheduler.NewSnapshotSyncService(e, cfg, nil)
		if err := sync.Start(ctx); err != nil {
			return err
		}

		<-ctx.Done()
		log.L.Info("Agendador de extração encerrado")
		return nil
	},
}

func init() {
	scheduleCmd.Flags().Bool("now", false, "executa uma extração antes do primeiro disparo")
}
