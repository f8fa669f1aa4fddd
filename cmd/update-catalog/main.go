package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"solar-sizer/internal/data"
	"solar-sizer/internal/logging"
	"solar-sizer/internal/model"
	"solar-sizer/internal/vendor"

	"github.com/urfave/cli/v2"
)

// update-catalog merges vendor entries from an import file into the curated
// catalog, checks the result and writes it back.
func main() {
	app := &cli.App{
		Name:  "update-catalog",
		Usage: "Merge vendor updates into the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "seed", Value: "examples/vendors.yaml", Usage: "Existing catalog (.yaml or .json)", EnvVars: []string{"VENDOR_CATALOG"}},
			&cli.StringFlag{Name: "import", Usage: "Catalog with new or changed vendors", Required: true},
			&cli.StringFlag{Name: "output", Usage: "Output path (default: overwrite --seed)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Report changes without writing"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := logging.Init()

	seedPath := c.String("seed")
	output := c.String("output")
	if output == "" {
		output = seedPath
	}

	var seed []model.Vendor
	if _, err := os.Stat(seedPath); err == nil {
		if seed, err = data.LoadCatalog(seedPath); err != nil {
			return err
		}
		fmt.Printf("Loaded %d vendors from %s\n", len(seed), seedPath)
	} else {
		logger.Warn("seed catalog not found, starting empty", slog.String("path", seedPath))
	}

	updates, err := data.LoadCatalog(c.String("import"))
	if err != nil {
		return err
	}

	merged, added, replaced := data.MergeCatalog(seed, updates)
	fmt.Printf("Merged %d vendors: %d added, %d replaced\n", len(merged), added, replaced)

	s := vendor.NewMatcher(merged).Summarize()
	fmt.Printf("Verified %d, unverified %d, average rating %.1f\n", s.Verified, s.Unverified, s.AverageRating)
	cities := make([]string, 0, len(s.VendorsByLocation))
	for city := range s.VendorsByLocation {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	for _, city := range cities {
		fmt.Printf("  %-20s %d\n", city, s.VendorsByLocation[city])
	}

	if c.Bool("dry-run") {
		fmt.Println("Dry run, nothing written")
		return nil
	}
	if err := data.SaveCatalog(output, merged); err != nil {
		return fmt.Errorf("failed to save catalog: %w", err)
	}
	fmt.Printf("Saved %d vendors to %s\n", len(merged), output)
	return nil
}
