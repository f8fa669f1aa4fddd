package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
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

// Flags shared by several commands. urfave flags carry parse state, so each
// command gets its own instance.
func billFlag() cli.Flag {
	return &cli.Float64Flag{
		Name:     "bill",
		Aliases:  []string{"b"},
		Usage:    "Monthly electricity bill in local currency",
		Required: true,
	}
}

func marketFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "market",
		Aliases: []string{"m"},
		Usage:   "Market preset id (see `cli markets`); configured market when empty",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"}
}

func initLogging(c *cli.Context) {
	logging.InitTo(c.App.ErrWriter, os.Getenv("API_ENV"), c.String("log-level"))
}

// loadAdvisor builds the advisor from --config and applies --market.
func loadAdvisor(c *cli.Context) (*advisor.Advisor, func() error, error) {
	cfg, err := config.LoadOrDefault(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	a, closeStore, err := advisor.FromConfig(c.Context, cfg)
	if err != nil {
		return nil, nil, err
	}

	if id := c.String("market"); id != "" {
		preset, err := data.LoadMarketPreset(marketsDir(c), id)
		if err != nil {
			closeStore()
			return nil, nil, err
		}
		if a, err = a.WithMarket(preset.Market); err != nil {
			closeStore()
			return nil, nil, err
		}
	}
	return a, closeStore, nil
}

func marketsDir(c *cli.Context) string {
	if dir := c.String("markets-dir"); dir != "" {
		return dir
	}
	return data.DefaultMarketsDir()
}

// gate validates the bill, prints warnings and fails on rejection.
func gate(w io.Writer, a *advisor.Advisor, bill float64) (model.Verdict, error) {
	v := a.Validate(bill)
	if !v.Proceedable() {
		return v, cli.Exit(v.Message, 2)
	}
	if v.Severity == model.SeverityWarning {
		fmt.Fprintf(w, "Warning: %s\n\n", v.Message)
	}
	return v, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func sizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "size",
		Usage: "Size a system for a monthly bill",
		Flags: []cli.Flag{
			billFlag(),
			marketFlag(),
			&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Also match vendors serving this location"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			a, closeStore, err := loadAdvisor(c)
			if err != nil {
				return err
			}
			defer closeStore()

			w := c.App.Writer
			if c.Bool("json") {
				out, assessErr := a.Assess(c.Float64("bill"), c.String("location"))
				if err := printJSON(w, out); err != nil {
					return err
				}
				if assessErr != nil {
					return cli.Exit(out.Validation.Message, 2)
				}
				return nil
			}

			if _, err := gate(w, a, c.Float64("bill")); err != nil {
				return err
			}
			out, err := a.Assess(c.Float64("bill"), c.String("location"))
			if err != nil {
				return err
			}
			printSizing(w, a.Market(), out.Sizing)
			if out.Vendors != nil {
				fmt.Fprintln(w)
				printMatch(w, out.Vendors.Message, out.Vendors.Vendors)
			}
			return nil
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Compare cumulative solar and diesel costs",
		Flags: []cli.Flag{
			billFlag(),
			marketFlag(),
			&cli.IntFlag{Name: "years", Aliases: []string{"y"}, Value: projection.DefaultYears, Usage: "Projection horizon in years"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the series to this CSV file"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			a, closeStore, err := loadAdvisor(c)
			if err != nil {
				return err
			}
			defer closeStore()

			w := c.App.Writer
			if _, err := gate(w, a, c.Float64("bill")); err != nil {
				return err
			}
			points := a.ProjectCosts(c.Float64("bill"), c.Int("years"))
			summary := projection.Summarize(points)

			if out := c.String("out"); out != "" {
				if err := projection.WriteComparisonCSVFile(out, points); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintf(w, "Wrote %d rows to %s\n", len(points), out)
			}
			if c.Bool("json") {
				return printJSON(w, map[string]any{"points": points, "summary": summary})
			}
			printComparison(w, a.Market(), points, summary)
			return nil
		},
	}
}

func matchCommand() *cli.Command {
	return &cli.Command{
		Name:  "match",
		Usage: "Find verified vendors for a capacity and location",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "kw", Usage: "Required capacity in kW", Required: true},
			&cli.StringFlag{Name: "location", Aliases: []string{"l"}, Usage: "Business location", Required: true},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			a, closeStore, err := loadAdvisor(c)
			if err != nil {
				return err
			}
			defer closeStore()

			res := a.MatchVendors(c.Float64("kw"), c.String("location"))
			w := c.App.Writer
			if c.Bool("json") {
				if err := printJSON(w, res); err != nil {
					return err
				}
			} else if res.Success() {
				printMatch(w, res.Message, res.Vendors)
			}
			if !res.Success() {
				msg := res.Message
				if len(res.AvailableLocations) > 0 {
					msg += "\nVendors currently serve: " + strings.Join(res.AvailableLocations, ", ")
				}
				return cli.Exit(msg, 3)
			}
			return nil
		},
	}
}

func quoteCommand() *cli.Command {
	return &cli.Command{
		Name:  "quote",
		Usage: "Send a quote request to a vendor for the system sized from a bill",
		Flags: []cli.Flag{
			billFlag(),
			marketFlag(),
			&cli.StringFlag{Name: "vendor", Usage: "Vendor id", Required: true},
			&cli.StringFlag{Name: "name", Usage: "Contact name", Required: true},
			&cli.StringFlag{Name: "email", Usage: "Contact email", Required: true},
			&cli.StringFlag{Name: "phone", Usage: "Contact phone"},
			&cli.StringFlag{Name: "business", Usage: "Business name"},
			&cli.StringFlag{Name: "location", Usage: "Business location"},
		},
		Action: func(c *cli.Context) error {
			a, closeStore, err := loadAdvisor(c)
			if err != nil {
				return err
			}
			defer closeStore()

			w := c.App.Writer
			if _, err := gate(w, a, c.Float64("bill")); err != nil {
				return err
			}
			result := a.Size(c.Float64("bill"))
			who := model.Requester{
				Name:         c.String("name"),
				Email:        c.String("email"),
				Phone:        optional(c, "phone"),
				BusinessName: optional(c, "business"),
				Location:     optional(c, "location"),
			}
			receipt, err := a.RecordQuote(c.Context, who, c.String("vendor"), &result)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\nQuote id: %s\n", receipt.Message, receipt.QuoteID)
			return nil
		},
	}
}

func marketsCommand() *cli.Command {
	return &cli.Command{
		Name:  "markets",
		Usage: "List market presets",
		Action: func(c *cli.Context) error {
			presets, err := data.ListMarketPresets(marketsDir(c))
			if err != nil {
				return err
			}
			w := c.App.Writer
			fmt.Fprintf(w, "%-12s %-14s %-8s %-10s %-6s\n", "id", "country", "currency", "tariff", "sun_h")
			for _, p := range presets {
				m := p.Market
				fmt.Fprintf(w, "%-12s %-14s %-8s %-10.2f %-6.1f\n", p.ID, m.Country, m.CurrencyCode, m.TariffPerKWh, m.PeakSunHours)
			}
			return nil
		},
	}
}

func vendorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "vendors",
		Usage: "List the vendor catalog",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			a, closeStore, err := loadAdvisor(c)
			if err != nil {
				return err
			}
			defer closeStore()

			w := c.App.Writer
			if c.Bool("json") {
				return printJSON(w, map[string]any{"vendors": a.Vendors(), "summary": a.CatalogSummary()})
			}
			fmt.Fprintf(w, "%-8s %-32s %-26s %-10s %-6s %-8s\n", "id", "company", "headquarters", "range", "rating", "verified")
			for _, v := range a.Vendors() {
				fmt.Fprintf(w, "%-8s %-32s %-26s %-10s %-6.1f %-8t\n", v.ID, v.CompanyName, v.Headquarters,
					fmt.Sprintf("%g-%gkW", v.SystemSizeMinKW, v.SystemSizeMaxKW), v.Rating, v.Verified)
			}
			s := a.CatalogSummary()
			fmt.Fprintf(w, "\n%d vendors (%d verified, %d unverified), average rating %.1f\n", s.Total, s.Verified, s.Unverified, s.AverageRating)
			return nil
		},
	}
}

func quotesCommand() *cli.Command {
	return &cli.Command{
		Name:  "quotes",
		Usage: "List recorded quote requests",
		Action: func(c *cli.Context) error {
			a, closeStore, err := loadAdvisor(c)
			if err != nil {
				return err
			}
			defer closeStore()

			quotes, err := a.Quotes(c.Context)
			if err != nil {
				if errors.Is(err, advisor.ErrQuotesDisabled) {
					return cli.Exit(err.Error(), 1)
				}
				return err
			}
			w := c.App.Writer
			fmt.Fprintf(w, "%-28s %-20s %-24s %-8s %-8s\n", "quote_id", "created", "vendor", "kW", "status")
			for _, q := range quotes {
				fmt.Fprintf(w, "%-28s %-20s %-24s %-8.1f %-8s\n", q.QuoteID, q.Timestamp.Format("2006-01-02 15:04"),
					q.Vendor.CompanyName, q.SystemDetails.RecommendedCapacityKW, q.Status)
			}
			return nil
		},
	}
}

func optional(c *cli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func printSizing(w io.Writer, m model.MarketParams, r *model.SizingResult) {
	amt := func(x float64) string { return sizing.FormatAmount(m.CurrencySymbol, x) }
	comp := r.Components

	fmt.Fprintf(w, "Consumption    %g kWh/month, %g kWh/day\n", r.Consumption.MonthlyKWh, r.Consumption.DailyKWh)
	fmt.Fprintf(w, "System size    %g kW (ideal %g kW)\n", r.SystemSize.ActualCapacityKW, r.SystemSize.IdealCapacityKW)
	fmt.Fprintf(w, "Panels         %d x %gW\n", comp.Panels.Quantity, comp.Panels.WattagePerPanel)
	inverter := fmt.Sprintf("%g kVA %s", comp.Inverter.SizeKVA, comp.Inverter.Type)
	if comp.Inverter.Capped {
		inverter += fmt.Sprintf(" (largest available; %g kVA required)", comp.Inverter.RequiredKVA)
	}
	fmt.Fprintf(w, "Inverter       %s\n", inverter)
	fmt.Fprintf(w, "Batteries      %d x %gAh (%d Ah, %gh backup at %gV)\n", comp.Batteries.Quantity,
		comp.Batteries.CapacityPerBatteryAh, comp.Batteries.TotalCapacityAh, comp.Batteries.BackupHours, comp.Batteries.SystemVoltage)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Equipment      %s\n", amt(r.Costs.Equipment))
	fmt.Fprintf(w, "Installation   %s\n", amt(r.Costs.Installation))
	fmt.Fprintf(w, "Total          %s\n", amt(r.Costs.Total))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Savings        %s/month\n", amt(r.Financials.MonthlySavings))
	fmt.Fprintf(w, "Payback        %d months (%g years)\n", r.Financials.PaybackPeriodMonths, r.Financials.PaybackPeriodYears)
	fmt.Fprintf(w, "Lifetime       %s (ROI %g%%)\n", amt(r.Financials.LifetimeSavings), r.Financials.ROI)
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Explanation)
}

func printMatch(w io.Writer, message string, vendors []model.VendorMatch) {
	fmt.Fprintln(w, message)
	for i, v := range vendors {
		fmt.Fprintf(w, "%2d. %-32s %.1f★ %2dy %-10s %s\n", i+1, v.CompanyName, v.Rating, v.YearsInBusiness,
			v.SystemCapacityRange, v.RecommendedFor)
	}
}

func printComparison(w io.Writer, m model.MarketParams, points []model.CostComparisonPoint, s projection.Summary) {
	fmt.Fprintf(w, "%-5s %-18s %-18s %-18s\n", "year", "solar", "diesel", "savings")
	for _, p := range points {
		fmt.Fprintf(w, "%-5d %-18s %-18s %-18s\n", p.Year,
			sizing.FormatAmount(m.CurrencySymbol, p.SolarCumulative),
			sizing.FormatAmount(m.CurrencySymbol, p.DieselCumulative),
			sizing.FormatAmount(m.CurrencySymbol, p.DieselCumulative-p.SolarCumulative))
	}
	if s.BreakevenYear > 0 {
		fmt.Fprintf(w, "\nSolar is cheaper from year %d; %s saved over %d years.\n", s.BreakevenYear,
			sizing.FormatAmount(m.CurrencySymbol, s.TotalSavings), s.Years)
	} else {
		fmt.Fprintf(w, "\nDiesel stays cheaper over %d years.\n", s.Years)
	}
}
