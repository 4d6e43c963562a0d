package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sales-dashboard/internal/export"
	"github.com/sells-group/sales-dashboard/internal/snapshot"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard report to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		gen, err := seedGenerator(time.Now())
		if err != nil {
			return err
		}
		snap := snapshot.Load(ctx, st, gen, time.Now())
		rep := buildReport(snap, metricsOptions())

		if err := export.WriteReport(exportPath, rep); err != nil {
			return err
		}
		zap.L().Info("report exported", zap.String("path", exportPath))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPath, "out", "dashboard.xlsx", "output file path")
	rootCmd.AddCommand(exportCmd)
}
