package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/macro-pipeline/internal/adapters/config"
	"github.com/selivandex/macro-pipeline/internal/adapters/fred"
	"github.com/selivandex/macro-pipeline/internal/adapters/macro"
	"github.com/selivandex/macro-pipeline/pkg/logger"
)

// Fetcher pulls raw series from the remote economic-data API into the
// local macro_<SERIES>.csv repository.
type Fetcher struct {
	client   *fred.Client
	repo     *macro.Repository
	registry *macro.Registry
}

// NewFetcher creates a fetcher from configuration
func NewFetcher(cfg *config.Config) (*Fetcher, error) {
	registry := macro.DefaultRegistry()
	if cfg.Data.RegistryFile != "" {
		var err error
		registry, err = macro.LoadRegistry(cfg.Data.RegistryFile)
		if err != nil {
			return nil, err
		}
	}

	return &Fetcher{
		client:   fred.NewClient(cfg.Fred.BaseURL, cfg.Fred.APIKey, cfg.Fred.Timeout),
		repo:     macro.NewRepository(cfg.Data.MacroDir),
		registry: registry,
	}, nil
}

// Fetch downloads every remote-capable registry series over the date
// range and stores each as a CSV file. An unconfigured API logs an
// error and fetches nothing; per-series failures are logged and
// skipped. Returns the number of series stored.
func (f *Fetcher) Fetch(ctx context.Context, from, to time.Time) int {
	if !f.client.Configured() {
		logger.Error("remote API unavailable", zap.Error(fred.ErrNotConfigured))
		return 0
	}

	fetched := 0
	for _, def := range f.registry.Remote() {
		s, err := f.client.GetSeries(ctx, def.FredID, from, to)
		if err != nil {
			logger.Error("failed to fetch series",
				zap.String("series", def.Name),
				zap.String("fred_id", def.FredID),
				zap.Error(err),
			)
			continue
		}

		if err := f.repo.SaveSeries(def.Name, s); err != nil {
			logger.Error("failed to store series",
				zap.String("series", def.Name),
				zap.Error(err),
			)
			continue
		}

		logger.Info("series fetched",
			zap.String("series", def.Name),
			zap.Int("observations", s.Len()),
		)
		fetched++
	}

	return fetched
}
