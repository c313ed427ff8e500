package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"storefront/internal/apis/shop"
	"storefront/internal/bootstrap"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/region"
	"storefront/internal/repository"
	jsonfile "storefront/internal/repository/json"
)

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		category   = flag.String("category", "", "override category label (optional)")
		location   = flag.String("location", "", "override location free-text (optional)")
		outputFile = flag.String("out", "", "override output file (optional)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	slog.SetDefault(log)

	// overrides
	if *category != "" {
		cfg.CLI.Category = *category
	}
	if *location != "" {
		cfg.CLI.Location = *location
	}
	if *outputFile != "" {
		cfg.CLI.OutputFile = *outputFile
	}

	transport, err := bootstrap.BuildTransport(cfg, log, 5)
	if err != nil {
		log.Error("build transport failed", "err", err)
		os.Exit(1)
	}

	shopSvc := shop.New(transport, cfg.Shop.BaseURL, log)
	table := catalog.NewTable(cfg.Categories, cfg.Shop.DefaultCategory)
	svc := catalog.NewService(shopSvc, table, log)

	regionCode := region.Resolve(cfg.CLI.Location)
	cat := table.Lookup(cfg.CLI.Category)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second)
	defer cancel()

	products, err := svc.FetchCatalog(ctx, cat.Label, regionCode)
	if err != nil {
		log.Error("fetch catalog failed", "err", err)
		os.Exit(1)
	}

	res := repository.CatalogResult{
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Category: &repository.CategoryMeta{
			Label: cat.Label,
			Group: cat.Group,
			Path:  cat.Path,
		},
		Region:   regionCode,
		Products: products,
		Count:    len(products),
	}

	repo := jsonfile.New(cfg.CLI.OutputFile, log)
	if err := repo.Save(ctx, res); err != nil {
		log.Error("save json failed", "err", err)
		os.Exit(1)
	}

	log.Info("done",
		"env", cfg.Env,
		"category", cat.Label,
		"region", regionCode,
		"count", len(products),
		"output", cfg.CLI.OutputFile,
	)
}
