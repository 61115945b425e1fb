package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the manifest and its derived topology",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, topo, err := loadTopology()
			if err != nil {
				return err
			}
			if err := m.CheckEnvironmentFilter(envFilter); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "manifest OK: %d environments, %d brands\n",
				m.Environments.Len(), len(topo.Brands()))
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
