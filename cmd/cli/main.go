// Command cli sizes solar systems, compares them with diesel and matches
// installers from the terminal.
//
// Usage:
//
//	cli size --bill 225000 --location Lagos
//	cli compare --bill 225000 --years 10 --out results/comparison.csv
//	cli match --kw 12.8 --location Lagos
//	cli quote --bill 225000 --vendor VEN001 --name "Chioma" --email chioma@example.com
//	cli markets | vendors | quotes
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cli",
		Usage: "Size solar systems for small businesses and find verified installers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config (defaults built in when empty)",
				EnvVars: []string{"SOLAR_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "markets-dir",
				Usage:   "Directory of market presets",
				EnvVars: []string{"MARKETS_DIR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			initLogging(c)
			return nil
		},
		Commands: []*cli.Command{
			sizeCommand(),
			compareCommand(),
			matchCommand(),
			quoteCommand(),
			marketsCommand(),
			vendorsCommand(),
			quotesCommand(),
		},
	}
}
