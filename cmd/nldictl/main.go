// Command nldictl administers the NLDI crawler-source registry.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/nldi-service/internal/config"
	"github.com/nldi-service/internal/pkg/logger"
	"github.com/nldi-service/internal/repository/postgres"
	"github.com/nldi-service/internal/usecase"
)

func main() {
	app := &cli.App{
		Name:    "nldictl",
		Usage:   "administer the NLDI source registry",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the service YAML config",
				EnvVars: []string{"NLDI_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "align-sources",
				Usage:  "reconcile the crawler_source table with the configured source list",
				Action: alignSources,
			},
			{
				Name:   "list-sources",
				Usage:  "print the registered crawler sources",
				Action: listSources,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(c *cli.Context) (*config.Config, *usecase.SourceRegistry, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := postgres.New(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	registry, err := usecase.NewSourceRegistry(ctx, postgres.NewCrawlerSourceRepository(db), log)
	if err != nil {
		cancel()
		db.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		cancel()
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}
	return cfg, registry, cleanup, nil
}

func alignSources(c *cli.Context) error {
	cfg, registry, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(cfg.Sources) == 0 {
		return cli.Exit("no sources configured; nothing to align", 1)
	}

	ctx, cancel := context.WithTimeout(c.Context, 60*time.Second)
	defer cancel()

	if err := registry.Align(ctx, cfg.Sources); err != nil {
		return err
	}

	fmt.Printf("aligned %d sources\n", len(cfg.Sources))
	return nil
}

func listSources(c *cli.Context) error {
	_, registry, cleanup, err := setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUFFIX\tNAME\tINGEST\tURI")
	for _, src := range registry.List() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			src.ID, src.FoldedSuffix(), src.Name, src.IngestType, src.URI)
	}
	return w.Flush()
}
