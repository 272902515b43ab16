package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/selivandex/macro-pipeline/internal/adapters/config"
	"github.com/selivandex/macro-pipeline/internal/pipeline"
	"github.com/selivandex/macro-pipeline/pkg/logger"
)

func main() {
	var (
		dataDir  = flag.String("data", "", "Macro data directory (overrides MACRO_DATA_DIR)")
		fromDate = flag.String("from", "2000-01-01", "Start date (YYYY-MM-DD)")
		toDate   = flag.String("to", "", "End date (YYYY-MM-DD), defaults to today")
	)

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *dataDir != "" {
		cfg.Data.MacroDir = *dataDir
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	from, err := time.Parse("2006-01-02", *fromDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid start date: %v\n", err)
		os.Exit(1)
	}

	to := time.Now().UTC()
	if *toDate != "" {
		to, err = time.Parse("2006-01-02", *toDate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid end date: %v\n", err)
			os.Exit(1)
		}
	}

	fetcher, err := pipeline.NewFetcher(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create fetcher: %v\n", err)
		os.Exit(1)
	}

	fetched := fetcher.Fetch(context.Background(), from, to)
	fmt.Printf("Fetched %d series into %s\n", fetched, cfg.Data.MacroDir)
	if fetched == 0 {
		os.Exit(1)
	}
}
