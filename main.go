package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"seolens/internal/domain"
	"seolens/internal/page"
	"seolens/internal/sessions"
)

func crawlFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "max-pages", Aliases: []string{"n"}, Usage: "page budget for the crawl (1-200)"},
		&cli.BoolFlag{Name: "no-robots", Usage: "ignore robots.txt (not recommended)"},
		&cli.StringFlag{Name: "user-agent", Usage: "User-Agent header for all requests"},
		&cli.Float64Flag{Name: "timeout", Usage: "per-request timeout in seconds"},
		&cli.Float64Flag{Name: "delay", Usage: "politeness delay between requests in seconds"},
		&cli.StringFlag{Name: "config", Usage: "YAML crawl configuration file"},
		&cli.StringFlag{Name: "lexicon", Usage: "YAML lexicon override file"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the report to a file instead of stdout"},
		&cli.BoolFlag{Name: "json", Usage: "emit the raw analysis digest as JSON"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
	}
}

func main() {
	app := &cli.App{
		Name:  "seolens",
		Usage: "on-page SEO analyzer: crawl, extract, score, contextualize",
		Commands: []*cli.Command{
			{
				Name:      "domain",
				Usage:     "crawl a site and score every page",
				ArgsUsage: "<url>",
				Flags: append(crawlFlags(),
					&cli.BoolFlag{Name: "save", Usage: "persist the session to the local database"},
					&cli.StringFlag{Name: "db", Usage: "SQLite database path (implies --save)"},
				),
				Action: domain.AnalyzeAction,
			},
			{
				Name:      "page",
				Usage:     "score one page with site-context adjustments",
				ArgsUsage: "<url>",
				Flags:     crawlFlags(),
				Action:    page.AnalyzeAction,
			},
			{
				Name:  "sessions",
				Usage: "work with persisted analysis sessions",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "list past sessions",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "max sessions to show"},
							&cli.StringFlag{Name: "db", Usage: "SQLite database path"},
						},
						Action: sessions.ListAction,
					},
					{
						Name:      "show",
						Usage:     "re-render the report for one session",
						ArgsUsage: "<id>",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Usage: "SQLite database path"},
							&cli.BoolFlag{Name: "json", Usage: "emit the raw analysis digest as JSON"},
							&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to a file instead of stdout"},
							&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "log errors only"},
						},
						Action: sessions.ShowAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
