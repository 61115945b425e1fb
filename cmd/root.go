package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plattolabs/stackforge/internal/config"
	"github.com/plattolabs/stackforge/internal/logging"
	"github.com/plattolabs/stackforge/internal/manifest"
	"github.com/plattolabs/stackforge/internal/render"
	"github.com/plattolabs/stackforge/internal/topology"
	"github.com/plattolabs/stackforge/internal/util"
)

// rootCmd represents the base command when called without any subcommands
var (
	manifestPath string
	envFilter    string
	logLevel     string
	settings     config.Settings
	log          *slog.Logger
	rootCmd      = &cobra.Command{
		Use:   "stackforge",
		Short: "resolve a platform manifest into ordered deployable stacks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			settings, err = config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("manifest") && settings.Manifest != "" {
				manifestPath = settings.Manifest
			}
			if !cmd.Flags().Changed("env") && settings.Environment != "" {
				envFilter = settings.Environment
			}
			if !cmd.Flags().Changed("log-level") && settings.LogLevel != "" {
				logLevel = settings.LogLevel
			}
			log = logging.New(cmd.ErrOrStderr(), logging.ParseLevel(logLevel))
			slog.SetDefault(log)
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "manifest.yaml", "Path to the platform manifest")
	rootCmd.PersistentFlags().StringVar(&envFilter, "env", "", "Restrict multi-environment components to one environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
}

// storeBackend resolves the parameter-store backend for a command: the
// command's --store flag when given, the STACKFORGE_STORE setting otherwise.
// An empty result leaves the choice to the store factory.
func storeBackend(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return settings.StoreBackend
}

// revision returns the short source revision of the manifest's worktree.
func revision() string {
	return util.GitShortSHA(filepath.Dir(manifestPath))
}

// loadManifest runs the template pass and parses the manifest.
func loadManifest() (*manifest.Manifest, error) {
	eng := render.NewEngine()
	return manifest.Load(manifestPath, eng, render.Data(revision()))
}

// loadTopology loads the manifest and derives its topology in one step, the
// common prelude of most subcommands.
func loadTopology() (*manifest.Manifest, *topology.Topology, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, nil, err
	}
	topo, err := topology.Derive(m)
	if err != nil {
		return nil, nil, err
	}
	return m, topo, nil
}
