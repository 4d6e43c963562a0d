package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sells-group/sales-dashboard/internal/analytics"
	"github.com/sells-group/sales-dashboard/internal/export"
	"github.com/sells-group/sales-dashboard/internal/leaderboard"
	"github.com/sells-group/sales-dashboard/internal/model"
	"github.com/sells-group/sales-dashboard/internal/narrative"
	"github.com/sells-group/sales-dashboard/internal/snapshot"
)

// buildReport derives the exportable report from a snapshot.
func buildReport(snap *snapshot.Snapshot, opts snapshot.MetricsOptions) export.Report {
	return export.Report{
		GeneratedAt: snap.TakenAt,
		Metrics:     snap.Metrics(opts),
		Leaderboard: leaderboard.Gamified(snap.Users, snap.Deals, model.ClosedWonStages(), snap.Streaks, 10),
		Renewals:    analytics.MonthlyRenewals(snap.Contracts, snap.TakenAt, 12),
	}
}

// reportBrief composes the narrative summary for a report.
func reportBrief(rep export.Report, currency string) string {
	in := narrative.BriefInput{
		TotalPipelineValue:  rep.Metrics.TotalPipelineValue,
		Currency:            currency,
		StalledDeals:        rep.Metrics.StalledDeals,
		ExecutionConfidence: rep.Metrics.ExecutionConfidence,
	}
	// Scan in stage-name order so tied counts always pick the same stage.
	for _, stage := range analytics.SortedStages(rep.Metrics.Leakage) {
		if n := rep.Metrics.Leakage[stage]; n > in.LeakageCount {
			in.LeakageCount = n
			in.LeakageStage = string(stage)
		}
	}
	if len(rep.Leaderboard) > 0 {
		in.TopPerformer = rep.Leaderboard[0].Name
	}
	return narrative.Brief(in)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard metric bundle as JSON",
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

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"report": rep,
			"brief":  reportBrief(rep, riskConfig().HomeCurrency),
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
