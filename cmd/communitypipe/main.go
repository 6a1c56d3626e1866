// Copyright 2025 MataConnect
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/mataconnect/communitypipe/ai"
	"github.com/mataconnect/communitypipe/ai/openai"
	"github.com/mataconnect/communitypipe/enrich"
	"github.com/mataconnect/communitypipe/migrate"
	"github.com/mataconnect/communitypipe/migrate/mongo"
	"github.com/mataconnect/communitypipe/storage"
	"github.com/mataconnect/communitypipe/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "communitypipe",
		Usage: "Community enrichment and migration pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "enrich",
				Usage:     "Enrich community URLs from an input list into the local store",
				ArgsUsage: "<url-list-file>",
				Action:    enrichCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the record store directory",
						Value:   "communities.db",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Enrichment service host URL",
						Value: "https://api.openai.com/v1",
					},
					&cli.StringFlag{
						Name:     "model",
						Usage:    "Enrichment model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "API key for the enrichment service",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "Migrate cached records into the destination collection",
				Action: migrateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the record store directory",
						Value:   "communities.db",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents per bulk insert",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.StringFlag{
						Name:  "mongo-uri",
						Usage: "MongoDB connection URI (default: $" + mongo.EnvURI + ")",
					},
					&cli.StringFlag{
						Name:  "mongo-database",
						Usage: "Destination database name (default: $" + mongo.EnvDatabase + ")",
					},
					&cli.StringFlag{
						Name:  "mongo-collection",
						Usage: "Destination collection name (default: $" + mongo.EnvCollection + ")",
					},
				},
			},
			{
				Name:      "preview",
				Usage:     "Enrich ad-hoc URLs and print the payloads without touching the store",
				ArgsUsage: "<url> [<url> ...]",
				Action:    previewCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Usage: "Enrichment service host URL",
						Value: "https://api.openai.com/v1",
					},
					&cli.StringFlag{
						Name:     "model",
						Usage:    "Enrichment model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "API key for the enrichment service",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func enrichCommand(c *cli.Context) error {
	ctx := context.Background()

	inputPath := c.Args().First()
	if inputPath == "" {
		return fmt.Errorf("input list path is required")
	}

	// Nonzero exit when the input source does not exist
	urls, err := enrich.ReadURLList(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read URL list: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Found %d URLs to process\n", len(urls))

	enricher, err := newEnricher(c)
	if err != nil {
		return err
	}

	store, err := badger.NewRecordStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer store.Close()

	runner, err := enrich.NewRunner(store, enricher)
	if err != nil {
		return err
	}

	summary, runErr := runner.Run(ctx, urls)
	printEnrichSummary(summary)
	if runErr != nil {
		return fmt.Errorf("enrichment run aborted: %w", runErr)
	}
	return nil
}

func migrateCommand(c *cli.Context) error {
	ctx := context.Background()

	// Fail on configuration before opening anything. Flags override the
	// environment-derived settings.
	destConfig := mongo.FromEnv()
	if uri := c.String("mongo-uri"); uri != "" {
		destConfig.URI = uri
	}
	if db := c.String("mongo-database"); db != "" {
		destConfig.Database = db
	}
	if coll := c.String("mongo-collection"); coll != "" {
		destConfig.Collection = coll
	}
	if err := destConfig.Validate(); err != nil {
		return err
	}

	loadConfig := &migrate.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
	}
	if loadConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if loadConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	store, err := badger.NewRecordStore(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer store.Close()

	dest, err := mongo.Connect(ctx, destConfig)
	if err != nil {
		return err
	}
	defer dest.Close(ctx)

	loader := migrate.NewLoader(dest, loadConfig, os.Stderr)

	all, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan record store: %w", err)
	}

	summary, err := loader.Load(ctx, all)
	printMigrateSummary(summary)
	if err != nil {
		return fmt.Errorf("migration aborted: %w", err)
	}
	return nil
}

func previewCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.Args().Len() == 0 {
		return fmt.Errorf("at least one URL is required")
	}

	enricher, err := newEnricher(c)
	if err != nil {
		return err
	}

	total := c.Args().Len()
	for i, raw := range c.Args().Slice() {
		url := enrich.CleanURL(raw)
		fmt.Fprintf(os.Stderr, "[%d/%d] enriching %s\n", i+1, total, url)

		community, err := enricher.EnrichCommunity(ctx, url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to enrich %s: %v\n", url, err)
			continue
		}

		data, err := storage.MarshalCommunity(community)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}

func newEnricher(c *cli.Context) (ai.Enricher, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid enrichment configuration: %w", err)
	}

	enricher, err := openai.NewEnricher(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create enricher: %w", err)
	}
	return enricher, nil
}

func printEnrichSummary(s *enrich.Summary) {
	if s == nil {
		return
	}
	fmt.Fprintln(os.Stderr, strings.Repeat("=", 50))
	fmt.Fprintln(os.Stderr, "Processing Summary:")
	fmt.Fprintf(os.Stderr, "   Total URLs: %d\n", s.Total)
	fmt.Fprintf(os.Stderr, "   Processed:  %d\n", s.Processed)
	fmt.Fprintf(os.Stderr, "   Skipped:    %d\n", s.Skipped)
	fmt.Fprintf(os.Stderr, "   Failed:     %d\n", s.Failed)
	fmt.Fprintln(os.Stderr, strings.Repeat("=", 50))
}

func printMigrateSummary(s *migrate.Summary) {
	if s == nil {
		return
	}
	fmt.Fprintln(os.Stderr, strings.Repeat("=", 50))
	fmt.Fprintln(os.Stderr, "Loading Summary:")
	fmt.Fprintf(os.Stderr, "   Total records: %d\n", s.Total)
	fmt.Fprintf(os.Stderr, "   Succeeded:     %d\n", s.Succeeded)
	fmt.Fprintf(os.Stderr, "   Failed:        %d\n", s.Failed)
	fmt.Fprintln(os.Stderr, strings.Repeat("=", 50))
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
