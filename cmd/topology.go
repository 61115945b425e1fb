package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plattolabs/stackforge/internal/manifest"
)

var topologyJSON bool

func init() {
	cmd := &cobra.Command{
		Use:   "topology",
		Short: "Show the derived brand sets and component targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, topo, err := loadTopology()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if topologyJSON {
				doc := map[string]any{
					"brands":          topo.Brands(),
					"apiBrands":       topo.APIBrands(),
					"webBrands":       topo.WebBrands(),
					"marketingBrands": topo.MarketingBrands(),
					"secretRefs":      topo.SecretRefs(),
					"primaryTarget":   topo.PrimaryTarget(),
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			_, _ = fmt.Fprintf(out, "brands:     %s\n", strings.Join(topo.Brands(), ", "))
			_, _ = fmt.Fprintf(out, "api:        %s\n", strings.Join(topo.APIBrands(), ", "))
			_, _ = fmt.Fprintf(out, "web:        %s\n", strings.Join(topo.WebBrands(), ", "))
			_, _ = fmt.Fprintf(out, "marketing:  %s\n", strings.Join(topo.MarketingBrands(), ", "))
			primary := topo.PrimaryTarget()
			_, _ = fmt.Fprintf(out, "primary:    %s %s/%s\n", primary.Env, primary.AccountID, primary.Region)
			for _, c := range manifest.Components() {
				if !m.Enabled(c) {
					continue
				}
				var tgts []string
				for _, t := range topo.Targets(c, envFilter) {
					tgts = append(tgts, fmt.Sprintf("%s(%s/%s)", t.Env, t.AccountID, t.Region))
				}
				_, _ = fmt.Fprintf(out, "%-14s %s\n", c.String()+":", strings.Join(tgts, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&topologyJSON, "json", false, "Output topology as JSON")
	rootCmd.AddCommand(cmd)
}
