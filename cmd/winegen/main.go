package main

import (
	"flag"
	"fmt"
	"os"

	"winelens/cmd/winegen/engine"
	"winelens/internal/export"
)

func main() {
	out := flag.String("out", "./df_wine_eda.zip", "Output path; a .zip suffix wraps the CSV in an archive")
	count := flag.Int("count", 500, "Number of rows to generate")
	seed := flag.Int64("seed", 1, "Random seed for reproducible output")
	missing := flag.Float64("missing", 0.05, "Share of rows with a missing price or rating (0-1)")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Count:       *count,
		Seed:        *seed,
		MissingRate: *missing,
	}

	fmt.Printf("Generating %d rows (seed %d, missing rate %.2f) to %s...\n", cfg.Count, cfg.Seed, cfg.MissingRate, *out)

	ds := engine.Generate(cfg)
	if err := export.ExportFile(*out, ds, ds.Records); err != nil {
		fmt.Printf("Failed to save dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
