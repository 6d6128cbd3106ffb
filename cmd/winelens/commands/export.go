package commands

import (
	"fmt"
	"path/filepath"

	"winelens/internal/engine"
	"winelens/internal/export"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var (
	exportFilter filterFlags
	exportOut    string
	exportOpen   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the rows matching the current filter to CSV or a zip archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := exportFilter.constraint(cmd, dataset.Records)
		if err != nil {
			return err
		}
		matched, err := engine.Filter(dataset.Records, c)
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = filepath.Join(cfg.ExportDir, "filtered_wines.zip")
		}
		if err := export.ExportFile(path, dataset, matched); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rows to %s\n", len(matched), path)

		if exportOpen {
			return browser.OpenFile(path)
		}
		return nil
	},
}

func init() {
	exportFilter.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path; .zip wraps the CSV in an archive (default: filtered_wines.zip in EXPORT_DIR)")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "open the written file with the OS handler")
	rootCmd.AddCommand(exportCmd)
}
