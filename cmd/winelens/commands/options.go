package commands

import (
	"fmt"

	"winelens/internal/engine"

	"github.com/spf13/cobra"
)

var (
	optionsCountries []string
	optionsRegions   []string
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the cascading filter options for a selection",
	Long: `Prints the distinct countries of the catalog, the regions available under the
selected countries, and the grapes available under the selected countries and
regions. Without a selection every upstream option counts as selected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		records := dataset.Records
		countries := engine.AvailableCountries(records)

		selCountries := optionsCountries
		if !cmd.Flags().Changed("country") {
			selCountries = countries
		}
		regions := engine.AvailableRegions(records, selCountries)

		selRegions := optionsRegions
		if !cmd.Flags().Changed("region") {
			selRegions = regions
		}
		grapes := engine.AvailableGrapes(records, selCountries, selRegions)

		printOptions("Countries", countries)
		printOptions("Regions", regions)
		printOptions("Grapes", grapes)
		return nil
	},
}

func printOptions(label string, values []string) {
	fmt.Printf("%s (%d):\n", label, len(values))
	for _, v := range values {
		fmt.Printf("  %s\n", v)
	}
}

func init() {
	optionsCmd.Flags().StringSliceVar(&optionsCountries, "country", nil, "countries to cascade from (repeatable)")
	optionsCmd.Flags().StringSliceVar(&optionsRegions, "region", nil, "regions to cascade from (repeatable)")
	rootCmd.AddCommand(optionsCmd)
}
