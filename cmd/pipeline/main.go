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
		dataDir   = flag.String("data", "", "Macro data directory (overrides MACRO_DATA_DIR)")
		outputDir = flag.String("out", "", "Output directory (overrides OUTPUT_DIR)")
		priceFile = flag.String("prices", "", "Price CSV to align indicators onto (overrides PRICE_FILE)")
		fromDate  = flag.String("from", "", "Start date (YYYY-MM-DD)")
		toDate    = flag.String("to", "", "End date (YYYY-MM-DD)")
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
	if *outputDir != "" {
		cfg.Data.OutputDir = *outputDir
	}
	if *priceFile != "" {
		cfg.Data.PriceFile = *priceFile
	}
	if cfg.Data.OutputDir == "" {
		cfg.Data.OutputDir = cfg.Data.MacroDir
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	from, err := parseDate(*fromDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid start date: %v\n", err)
		os.Exit(1)
	}
	to, err := parseDate(*toDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid end date: %v\n", err)
		os.Exit(1)
	}

	runner, err := pipeline.NewRunner(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create pipeline: %v\n", err)
		os.Exit(1)
	}

	result, err := runner.Run(context.Background(), from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Derived %d indicator columns over %d months -> %s\n",
		result.Columns, result.Rows, result.OutputFile)
	if result.AlignedFile != "" {
		fmt.Printf("Aligned table -> %s\n", result.AlignedFile)
	}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
