package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plattolabs/stackforge/internal/diff"
	"github.com/plattolabs/stackforge/internal/resolve"
)

var (
	planJSON  bool
	planState string
	planWrite bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Resolve the manifest into its ordered deployable units",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, topo, err := loadTopology()
			if err != nil {
				return err
			}
			pl, err := resolve.Resolve(m, topo, envFilter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if planJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(pl.Units); err != nil {
					return err
				}
			} else {
				for _, u := range pl.Units {
					line := fmt.Sprintf("%-14s %s  %s/%s", u.Kind, u.Name, u.AccountID, u.Region)
					if len(u.DependsOn) > 0 {
						line += "  <- " + strings.Join(u.DependsOn, ", ")
					}
					_, _ = fmt.Fprintln(out, line)
				}
				_, _ = fmt.Fprintln(out, pl.Summary())
			}

			if planState != "" {
				if err := printDiff(cmd, pl); err != nil {
					return err
				}
			}
			if planWrite {
				return writeState(pl)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&planJSON, "json", false, "Output units as JSON")
	cmd.Flags().StringVar(&planState, "state", "", "Diff against a previously written unit snapshot")
	cmd.Flags().BoolVar(&planWrite, "write-state", false, "Write the resolved units to the snapshot file")
	rootCmd.AddCommand(cmd)
}

func printDiff(cmd *cobra.Command, next *resolve.Plan) error {
	b, err := os.ReadFile(planState)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var units []resolve.Unit
	if err := json.Unmarshal(b, &units); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	pl := diff.Between(resolve.FromUnits(units), next)

	out := cmd.OutOrStdout()
	if pl.Empty() {
		_, _ = fmt.Fprintln(out, "no changes")
		return nil
	}
	for _, c := range pl.Creates {
		_, _ = fmt.Fprintf(out, "create: %s %s\n", c.Kind, c.Name)
	}
	for _, u := range pl.Updates {
		_, _ = fmt.Fprintf(out, "update: %s %s\n", u.Kind, u.Name)
	}
	for _, d := range pl.Deletes {
		_, _ = fmt.Fprintf(out, "delete: %s %s\n", d.Kind, d.Name)
	}
	return nil
}

func writeState(pl *resolve.Plan) error {
	path := planState
	if path == "" {
		path = ".stackforge.plan.json"
	}
	b, err := json.MarshalIndent(pl.Units, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
