package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
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

type job struct {
	category string
	region   string
}

func main() {
	var (
		configPath = flag.String("config", "./config/config.yaml", "path to config.yaml")
		outputFile = flag.String("out", "./out/scan.json", "output file")
		workers    = flag.Int("workers", 4, "concurrent fetches")
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

	transport, err := bootstrap.BuildTransport(cfg, log, *workers)
	if err != nil {
		log.Error("build transport failed", "err", err)
		os.Exit(1)
	}

	shopSvc := shop.New(transport, cfg.Shop.BaseURL, log)
	table := catalog.NewTable(cfg.Categories, cfg.Shop.DefaultCategory)
	svc := catalog.NewService(shopSvc, table, log)

	regions := region.Codes()
	cats := table.All()

	jobs := make([]job, 0, len(cats)*len(regions))
	for _, c := range cats {
		for _, r := range regions {
			jobs = append(jobs, job{category: c.Label, region: r})
		}
	}

	log.Info("scan started",
		"categories", len(cats),
		"regions", len(regions),
		"pairs", len(jobs),
		"workers", *workers,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		done   atomic.Int64
		failed atomic.Int64
	)

	// прогресс раз в 5 секунд, чтобы длинный прогон не выглядел зависшим
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Info("scan progress",
					"done", done.Load(),
					"failed", failed.Load(),
					"total", len(jobs),
				)
			}
		}
	}()

	jobCh := make(chan job)
	entries := make([]repository.ScanEntry, len(jobs))
	idx := make(map[job]int, len(jobs))
	for i, j := range jobs {
		idx[j] = i
	}

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobCh {
				fetchCtx, cancelFetch := context.WithTimeout(ctx, time.Duration(cfg.HTTP.TimeoutSeconds)*time.Second)
				products, err := svc.FetchCatalog(fetchCtx, j.category, j.region)
				cancelFetch()

				e := repository.ScanEntry{Category: j.category, Region: j.region}
				if err != nil {
					e.Error = err.Error()
					failed.Add(1)
				} else {
					e.Count = len(products)
				}
				entries[idx[j]] = e
				done.Add(1)
			}
		}()
	}

	start := time.Now()
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)
	wg.Wait()

	total := 0
	for _, e := range entries {
		total += e.Count
	}

	res := repository.ScanResult{
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:   entries,
		Total:     total,
	}

	repo := jsonfile.New(*outputFile, log)
	if err := repo.SaveScan(ctx, res); err != nil {
		log.Error("save scan failed", "err", err)
		os.Exit(1)
	}

	log.Info("scan finished",
		"pairs", len(jobs),
		"failed", failed.Load(),
		"products_total", total,
		"elapsed", time.Since(start).Round(time.Millisecond).String(),
		"output", *outputFile,
	)
}
