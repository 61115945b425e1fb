package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plattolabs/stackforge/internal/linkage"
	"github.com/plattolabs/stackforge/internal/store"
)

var paramsStore string

func init() {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Preflight every published parameter path against the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			m, topo, err := loadTopology()
			if err != nil {
				return err
			}
			catalog, err := linkage.Catalog(m, topo)
			if err != nil {
				return err
			}

			cli, err := store.New(ctx, store.Settings{
				Backend: store.Backend(storeBackend(paramsStore)),
				Region:  settings.StoreRegion,
				Profile: settings.AWSProfile,
			})
			if err != nil {
				return err
			}
			defer func() { _ = cli.Close() }()

			checker := linkage.NewChecker(cli, catalog)
			out := cmd.OutOrStdout()
			pending := 0
			for _, path := range catalog {
				st, err := checker.Check(ctx, path)
				if err != nil {
					return err
				}
				if st != linkage.StatusPublished {
					pending++
				}
				_, _ = fmt.Fprintf(out, "%-9s %s\n", st, path)
			}
			_, _ = fmt.Fprintf(out, "%d paths, %d not yet published\n", len(catalog), pending)
			return nil
		},
	}
	cmd.Flags().StringVar(&paramsStore, "store", "", "Parameter-store backend: ssm|memory (auto when empty)")
	rootCmd.AddCommand(cmd)
}
