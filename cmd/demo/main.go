package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/config"
	"solar-sizer/internal/data"
	"solar-sizer/internal/logging"
	"solar-sizer/internal/model"
	"solar-sizer/internal/projection"
	"solar-sizer/internal/sizing"

	"github.com/urfave/cli/v2"
)

// Demo:
// - Load the configured market and vendor catalog
// - Run validate -> size -> compare -> match for a few sample businesses
// - Show the closest published case study for each
type business struct {
	name     string
	bill     float64
	location string
}

var samples = []business{
	{"Mama Put Bakery", 225000, "Lagos"},
	{"Corner barber shop", 12000, "Ikeja"},
	{"Garki cold room", 600000, "Abuja"},
	{"Kano print shop", 95000, "Kano"},
	{"Enugu pharmacy", 150000, "Enugu"},
	{"Unlikely bill", 0, "Lagos"},
}

func main() {
	app := &cli.App{
		Name:  "demo",
		Usage: "Walk sample businesses through sizing, cost comparison and vendor matching",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "Path to YAML config (optional)", EnvVars: []string{"SOLAR_CONFIG"}},
			&cli.StringFlag{Name: "case-studies", Value: "examples/case_studies.json", Usage: "Case studies JSON", EnvVars: []string{"CASE_STUDIES_FILE"}},
			&cli.IntFlag{Name: "years", Value: projection.DefaultYears, Usage: "Cost comparison horizon"},
			&cli.StringFlag{Name: "out", Usage: "Optional directory for per-business comparison CSVs (e.g. results/)"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logging.InitTo(os.Stderr, "", "warn")

	cfg, err := config.LoadOrDefault(c.String("config"))
	if err != nil {
		return err
	}
	// Quotes are not recorded by the demo.
	cfg.Quotes.Backend = config.BackendMemory

	a, closeStore, err := advisor.FromConfig(c.Context, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	studies, err := data.LoadCaseStudies(c.String("case-studies"))
	if err != nil {
		return err
	}

	m := a.Market()
	fmt.Printf("Market=%s (%s, tariff %s/kWh)  Vendors=%d  Case studies=%d\n\n",
		m.Name, m.CurrencyCode, sizing.FormatAmount(m.CurrencySymbol, m.TariffPerKWh), len(a.Vendors()), len(studies))

	for _, b := range samples {
		fmt.Printf("== %s: %s/month in %s\n", b.name, sizing.FormatAmount(m.CurrencySymbol, b.bill), b.location)

		out, err := a.Assess(b.bill, b.location)
		if out.Validation.Severity != model.SeveritySuccess {
			fmt.Printf("   %s: %s\n", out.Validation.Severity, out.Validation.Message)
		}
		if err != nil {
			fmt.Println()
			continue
		}

		r := out.Sizing
		fmt.Printf("   system=%gkW  panels=%d  inverter=%gkVA  batteries=%d  cost=%s  payback=%gy\n",
			r.SystemSize.ActualCapacityKW, r.Components.Panels.Quantity, r.Components.Inverter.SizeKVA,
			r.Components.Batteries.Quantity, sizing.FormatAmount(m.CurrencySymbol, r.Costs.Total), r.Financials.PaybackPeriodYears)

		points := a.ProjectCosts(b.bill, c.Int("years"))
		s := projection.Summarize(points)
		fmt.Printf("   %d-year savings vs diesel=%s  breakeven year=%d\n",
			s.Years, sizing.FormatAmount(m.CurrencySymbol, s.TotalSavings), s.BreakevenYear)

		if dir := c.String("out"); dir != "" {
			path := filepath.Join(dir, slug(b.name)+".csv")
			if err := projection.WriteComparisonCSVFile(path, points); err != nil {
				return err
			}
			fmt.Printf("   wrote %s\n", path)
		}

		if v := out.Vendors; v != nil {
			if v.Success() {
				top := v.Vendors[0]
				fmt.Printf("   %s; top: %s (%.1f, %s)\n", v.Message, top.CompanyName, top.Rating, top.RecommendedFor)
			} else {
				fmt.Printf("   vendors: %s\n", v.Status)
			}
		}

		if similar := data.SimilarCaseStudies(studies, r.SystemSize.ActualCapacityKW, b.location, 1); len(similar) > 0 {
			cs := similar[0]
			fmt.Printf("   similar: %s, %s, %gkW, payback %d months\n", cs.ClientName, cs.Location, cs.SystemSizeKW, cs.PaybackPeriodMonths)
		}
		fmt.Println()
	}
	return nil
}

func slug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", "-"))
}
