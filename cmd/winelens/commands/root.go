package commands

import (
	"context"

	"winelens/internal/config"
	"winelens/internal/logging"
	"winelens/internal/mcp"
	"winelens/internal/wine"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
	dataset *wine.Dataset
)

var rootCmd = &cobra.Command{
	Use:   "winelens",
	Short: "Winelens filters and aggregates a wine catalog",
	Long: `Winelens loads a wine review catalog (CSV, optionally zipped) and exposes its
filter and aggregation engine: cascading country/region/grape options, price and
rating constraints, country rankings, distribution summaries and CSV/ZIP export.
Run without a subcommand it serves the engine as MCP tools over stdio.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		dataset, err = wine.Load(cfg.DatasetPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DatasetPath).Msg("Failed to load dataset")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Int("rows", len(dataset.Records)).
			Msg("Winelens starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(dataset, cfg)
		return server.Run(context.Background())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
