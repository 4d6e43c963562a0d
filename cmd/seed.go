package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sales-dashboard/internal/store"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo data and persist the opportunity book",
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
		ds := gen.Generate()

		if seedReset {
			existing, err := st.ListOpportunities(ctx, store.ListFilter{})
			if err != nil {
				return err
			}
			for _, d := range existing {
				if err := st.DeleteOpportunity(ctx, d.ID); err != nil {
					return err
				}
			}
		}

		for _, d := range ds.Deals {
			if _, err := st.CreateOpportunity(ctx, d); err != nil {
				return err
			}
		}

		zap.L().Info("seed complete",
			zap.Int("deals", len(ds.Deals)),
			zap.Int("activities", len(ds.Activities)),
			zap.Int("quotes", len(ds.Quotes)),
			zap.Int("orders", len(ds.Orders)),
			zap.Int("contracts", len(ds.Contracts)),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete existing opportunities first")
	rootCmd.AddCommand(seedCmd)
}
