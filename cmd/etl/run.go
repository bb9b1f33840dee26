package main

import (
	"github.com/spf13/cobra"

	"github.com/vfg2006/nola-insights/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Executa uma extração completa e encerra",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := newExtractor(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		report, err := e.Run(ctx)
		if err != nil {
			return err
		}

		log.L.WithFields(log.Fields{
			"run_id":         report.RunID,
			"rows":           report.RowCount,
			"distinct_sales": report.DistinctSales,
			"snapshot":       report.SnapshotURI,
		}).Info("Extração concluída")

		return nil
	},
}
