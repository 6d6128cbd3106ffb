package wine

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Load reads a catalog from path. A .zip archive is searched for its
// first .csv entry (the shipped dataset is df_wine_eda.csv inside
// df_wine_eda.zip); anything else is parsed as plain CSV.
func Load(path string) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return LoadZip(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadZip extracts and parses the first CSV entry of a zip archive.
func LoadZip(path string) (*Dataset, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if !strings.EqualFold(filepath.Ext(entry.Name), ".csv") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open archive entry %s: %w", entry.Name, err)
		}
		defer rc.Close()
		return LoadCSV(rc)
	}
	return nil, fmt.Errorf("archive %s contains no csv entry", filepath.Base(path))
}

// LoadCSV parses a header-led CSV stream into a Dataset. Numeric cells
// that are blank or unparsable load as missing rather than failing the
// whole file; ragged rows are rejected.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// 1. Locate the residual index column (pandas writes "Unnamed: 0",
	// or a blank first header).
	indexIdx := -1
	for i, h := range header {
		if NormalizeColumn(h) == indexColumn || (i == 0 && strings.TrimSpace(h) == "") {
			indexIdx = i
			break
		}
	}

	var columns []string
	for i, h := range header {
		if i == indexIdx {
			continue
		}
		columns = append(columns, h)
	}

	// 2. Parse rows
	ds := &Dataset{Columns: columns}
	droppedCells := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		var rec Record
		for i, h := range header {
			if i == indexIdx {
				continue
			}
			cell := strings.TrimSpace(row[i])
			switch NormalizeColumn(h) {
			case "country":
				rec.Country = cell
			case "region":
				rec.Region = cell
			case "grape":
				rec.Grape = cell
			case "price_usd":
				if v, ok := parsePrice(cell); ok {
					rec.PriceUSD = &v
				} else if cell != "" {
					droppedCells++
				}
			case "rating":
				if v, ok := parseRating(cell); ok {
					rec.Rating = &v
				} else if cell != "" {
					droppedCells++
				}
			default:
				if cell != "" {
					if rec.Extra == nil {
						rec.Extra = make(map[string]string)
					}
					rec.Extra[h] = cell
				}
			}
		}
		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 {
		return nil, ErrEmptyDataset
	}
	if droppedCells > 0 {
		log.Warn().Int("cells", droppedCells).Msg("Unparsable numeric cells loaded as missing")
	}
	log.Debug().Int("rows", len(ds.Records)).Int("columns", len(ds.Columns)).Msg("Dataset loaded")
	return ds, nil
}

// parsePrice accepts a finite non-negative decimal; anything else is
// missing.
func parsePrice(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// parseRating accepts integers, tolerating the float spelling pandas
// emits for nullable integer columns ("92.0").
func parseRating(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
