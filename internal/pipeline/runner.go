package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/macro-pipeline/internal/adapters/config"
	"github.com/selivandex/macro-pipeline/internal/adapters/macro"
	"github.com/selivandex/macro-pipeline/internal/adapters/price"
	"github.com/selivandex/macro-pipeline/internal/enhancements"
	"github.com/selivandex/macro-pipeline/internal/indicators"
	"github.com/selivandex/macro-pipeline/pkg/logger"
	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

// Output file names inside the configured output directory
const (
	DerivedIndicatorsFile = "derived_indicators.csv"
	AlignedIndicatorsFile = "aligned_indicators.csv"
)

// Runner executes the batch pipeline: load raw series, derive the
// indicator table, compute enhancements, export, and optionally align
// the result onto a price index.
type Runner struct {
	cfg           *config.Config
	registry      *macro.Registry
	repo          *macro.Repository
	outRepo       *macro.Repository
	indicatorCalc *indicators.Calculator
	enhancer      *enhancements.Calculator
}

// Result summarizes one pipeline run
type Result struct {
	Rows        int
	Columns     int
	OutputFile  string
	AlignedFile string
}

// NewRunner creates a runner from configuration
func NewRunner(cfg *config.Config) (*Runner, error) {
	registry := macro.DefaultRegistry()
	if cfg.Data.RegistryFile != "" {
		var err error
		registry, err = macro.LoadRegistry(cfg.Data.RegistryFile)
		if err != nil {
			return nil, err
		}
	}

	enhancer := enhancements.NewCalculator(enhancements.Config{
		NaturalRateWindow: cfg.Pipeline.NaturalRateWindow,
		CorrelationWindow: cfg.Pipeline.CorrelationWindow,
		Psi:               cfg.Pipeline.Psi,
		LowerBound:        cfg.Pipeline.LowerBound,
	})

	return &Runner{
		cfg:           cfg,
		registry:      registry,
		repo:          macro.NewRepository(cfg.Data.MacroDir),
		outRepo:       macro.NewRepository(cfg.Data.OutputDir),
		indicatorCalc: indicators.NewCalculator(),
		enhancer:      enhancer,
	}, nil
}

// Run executes the pipeline stages in order. Non-zero bounds restrict
// the raw observations to the date range before any computation.
func (r *Runner) Run(ctx context.Context, from, to time.Time) (*Result, error) {
	logger.Info("starting pipeline",
		zap.String("macro_dir", r.cfg.Data.MacroDir),
		zap.Int("series", len(r.registry.Series)),
	)

	raw, err := r.repo.LoadAll(r.registry, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load raw series: %w", err)
	}

	logger.Info("raw series loaded", zap.Int("count", len(raw)))

	frame, err := r.indicatorCalc.Calculate(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate indicators: %w", err)
	}

	enhanced, err := r.enhancer.Enhance(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate enhancements: %w", err)
	}

	if err := frame.Join(enhanced); err != nil {
		return nil, fmt.Errorf("failed to join enhancements: %w", err)
	}

	if err := r.outRepo.SaveFrame(frame, DerivedIndicatorsFile); err != nil {
		return nil, fmt.Errorf("failed to export indicators: %w", err)
	}

	logger.Info("indicator table exported",
		zap.Int("rows", frame.Len()),
		zap.Int("columns", len(frame.Columns())),
		zap.String("file", DerivedIndicatorsFile),
	)

	result := &Result{
		Rows:       frame.Len(),
		Columns:    len(frame.Columns()),
		OutputFile: DerivedIndicatorsFile,
	}

	if r.cfg.Data.PriceFile != "" {
		if err := r.alignToPrices(ctx, frame); err != nil {
			return nil, err
		}
		result.AlignedFile = AlignedIndicatorsFile
	}

	return result, nil
}

// alignToPrices reindexes the monthly indicator table onto the price
// timestamps so both can be merged by date downstream.
func (r *Runner) alignToPrices(_ context.Context, frame *timeseries.Frame) error {
	priceRepo := price.NewRepository(r.cfg.Data.PriceFile)

	candles, err := priceRepo.LoadCandles()
	if err != nil {
		return fmt.Errorf("failed to load price data: %w", err)
	}

	aligned := frame.Reindex(price.Timestamps(candles))
	if err := r.outRepo.SaveFrame(aligned, AlignedIndicatorsFile); err != nil {
		return fmt.Errorf("failed to export aligned indicators: %w", err)
	}

	logger.Info("aligned indicator table exported",
		zap.Int("rows", aligned.Len()),
		zap.String("file", AlignedIndicatorsFile),
	)

	technicalCalc := indicators.NewTechnicalCalculator()
	technical, err := technicalCalc.Calculate(candles)
	if err != nil {
		logger.Warn("skipping technical indicators", zap.Error(err))
		return nil
	}

	logger.Info("technical indicators computed",
		zap.String("rsi_14", technical.RSI["14"].String()),
		zap.String("atr_14", technical.ATR.String()),
	)

	return nil
}
