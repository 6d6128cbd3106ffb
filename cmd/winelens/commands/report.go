package commands

import (
	"encoding/json"
	"os"

	"winelens/internal/report"

	"github.com/spf13/cobra"
)

var (
	reportFilter filterFlags
	reportTop    int
	reportAsJSON bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the four-tab market report for the current filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := reportFilter.constraint(cmd, dataset.Records)
		if err != nil {
			return err
		}

		top := reportTop
		if top <= 0 {
			top = cfg.TopCountries
		}
		r, err := report.Build(dataset, c, report.Options{Top: top})
		if err != nil {
			return err
		}

		if reportAsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(r)
		}
		report.Render(os.Stdout, r)
		return nil
	},
}

func init() {
	reportFilter.register(reportCmd)
	reportCmd.Flags().IntVar(&reportTop, "top", 0, "ranking depth for the country views (default: TOP_COUNTRIES)")
	reportCmd.Flags().BoolVar(&reportAsJSON, "json", false, "emit the report as JSON")
	rootCmd.AddCommand(reportCmd)
}
