package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/plattolabs/stackforge/internal/linkage"
	"github.com/plattolabs/stackforge/internal/orchestrate"
	"github.com/plattolabs/stackforge/internal/resolve"
	"github.com/plattolabs/stackforge/internal/status"
	"github.com/plattolabs/stackforge/internal/store"
)

var synthStore string

func init() {
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize every resolved unit into a deployable app",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, topo, err := loadTopology()
			if err != nil {
				return err
			}
			pl, err := resolve.Resolve(m, topo, envFilter)
			if err != nil {
				return err
			}

			cli, err := store.New(ctx, store.Settings{
				Backend: store.Backend(storeBackend(synthStore)),
				Region:  settings.StoreRegion,
				Profile: settings.AWSProfile,
			})
			if err != nil {
				return err
			}
			defer func() { _ = cli.Close() }()

			catalog, err := linkage.Catalog(m, topo)
			if err != nil {
				return err
			}

			rev := revision()
			res, err := orchestrate.Synthesize(ctx, orchestrate.Options{
				Manifest: m,
				Topology: topo,
				Plan:     pl,
				Links:    linkage.NewChecker(cli, catalog),
				Revision: rev,
				Log:      log,
			})
			if err != nil {
				return err
			}
			res.App.Synth(nil)

			status.PrintReport(cmd.OutOrStdout(), &status.Report{
				SynthesizedAt: time.Now(),
				Revision:      rev,
				Summary:       pl.Summary(),
				Units:         res.Built,
			})
			return res.Err()
		},
	}
	cmd.Flags().StringVar(&synthStore, "store", "", "Parameter-store backend: ssm|memory (auto when empty)")
	rootCmd.AddCommand(cmd)
}
