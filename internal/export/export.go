package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"winelens/internal/wine"

	"github.com/rs/zerolog/log"
)

// DefaultCSVName is the entry name the dashboard used inside its
// download archive.
const DefaultCSVName = "filtered_wines.csv"

// WriteCSV serializes the given rows under the dataset's column order:
// UTF-8, header row, comma separated, no index column. Row order is
// preserved exactly; cells render the way the loader parses them, so a
// written file loads back to identical values.
func WriteCSV(w io.Writer, ds *wine.Dataset, records []wine.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(ds.Columns))
	for _, rec := range records {
		for i, col := range ds.Columns {
			row[i] = rec.Cell(col)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteArchive wraps the CSV in a DEFLATE zip archive under the given
// entry name (DefaultCSVName when empty).
func WriteArchive(w io.Writer, ds *wine.Dataset, records []wine.Record, name string) error {
	if name == "" {
		name = DefaultCSVName
	}

	zw := zip.NewWriter(w)
	entry, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create archive entry: %w", err)
	}
	if err := WriteCSV(entry, ds, records); err != nil {
		return err
	}
	return zw.Close()
}

// ExportFile writes the rows to path, as a zip archive when the path
// ends in .zip and as plain CSV otherwise.
func ExportFile(path string, ds *wine.Dataset, records []wine.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".zip") {
		err = WriteArchive(f, ds, records, DefaultCSVName)
	} else {
		err = WriteCSV(f, ds, records)
	}
	if err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	log.Info().Str("path", path).Int("rows", len(records)).Msg("Filtered rows exported")
	return nil
}
