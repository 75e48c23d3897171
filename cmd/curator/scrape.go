package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/artlens/curator/pkg/curator/collection"
	"github.com/artlens/curator/pkg/curator/harvard"
	"github.com/artlens/curator/pkg/curator/setup"
)

const (
	defaultDivision   = "European and American Art"
	defaultScrapeFile = "harvard_european_american_art.csv"
)

type scrapeOptions struct {
	division   string
	output     string
	pageSize   int
	maxObjects int
	skipVerify bool
}

func newScrapeCommand() *cobra.Command {
	opts := scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Export a museum division to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup.LoadDotEnv(); err != nil {
				return err
			}
			config, err := setup.NewConfigFromEnv()
			if err != nil {
				return err
			}
			if err := config.ValidateHarvard(); err != nil {
				return err
			}

			client := harvard.NewClient(harvard.Config{
				ApiKey:  config.HarvardApiKey,
				BaseUrl: config.HarvardApiUrl,
				Timeout: config.HarvardTimeout,
			})

			return runScrape(cmd, client, opts)
		},
	}

	cmd.Flags().StringVar(&opts.division, "division", defaultDivision, "Division to export")
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultScrapeFile, "CSV file to write")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", harvard.DefaultPageSize, "Objects per request (API maximum is 100)")
	cmd.Flags().IntVar(&opts.maxObjects, "max-objects", harvard.DefaultMaxObjects, "Stop after this many objects")
	cmd.Flags().BoolVar(&opts.skipVerify, "skip-verify", false, "Do not check the division name first")

	return cmd
}

func runScrape(cmd *cobra.Command, client *harvard.Client, opts scrapeOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if !opts.skipVerify {
		verifyDivision(cmd, client, opts.division)
	}

	objects, err := client.FetchCollection(ctx, harvard.CollectionQuery{
		Division:   opts.division,
		PageSize:   opts.pageSize,
		MaxObjects: opts.maxObjects,
	})
	if err != nil {
		slog.Error("failed to fetch collection, keeping partial results", "error", err, "fetched", len(objects))
	}

	if len(objects) == 0 {
		fmt.Fprintln(out, "No data to save.")
		return err
	}

	rows := collection.Flatten(objects)

	file, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.output, err)
	}
	defer file.Close()

	var progress io.Writer
	if isTerminal(cmd.ErrOrStderr()) {
		progress = cmd.ErrOrStderr()
	}

	exporter := &collection.Exporter{Progress: progress}
	if err := exporter.WriteCSV(file, rows); err != nil {
		return err
	}

	fmt.Fprintln(out, renderTable("Scrape summary",
		table.Row{"Division", "Objects", "File"},
		[]table.Row{{opts.division, len(rows), opts.output}},
	))
	return nil
}

// verifyDivision only warns; an unknown division still gets scraped.
func verifyDivision(cmd *cobra.Command, client *harvard.Client, division string) {
	divisions, err := client.Divisions(cmd.Context())
	if err != nil {
		slog.Warn("failed to verify division", "error", err)
		return
	}

	if slices.Contains(divisions, division) {
		slog.Info("division confirmed", "division", division)
		return
	}

	slog.Warn("division not found", "division", division)
	rows := make([]table.Row, 0, len(divisions))
	for _, d := range divisions {
		rows = append(rows, table.Row{d})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable("Available divisions", table.Row{"Division"}, rows))
}
