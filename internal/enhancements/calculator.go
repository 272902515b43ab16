// Package enhancements derives monetary-policy state tables from the
// macro indicator frame: natural-rate estimates, lower-bound
// probabilities, regime flags, and volatility correlations.
package enhancements

import (
	"fmt"

	"github.com/selivandex/macro-pipeline/internal/adapters/macro"
	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

// Config holds enhancement parameters
type Config struct {
	// NaturalRateWindow is the rolling-mean window for the natural rate
	// proxy; a quarter of it is the minimum sample requirement
	NaturalRateWindow int
	// CorrelationWindow is the rolling rank-correlation window; half of
	// it is the minimum sample requirement
	CorrelationWindow int
	// Psi is the monetary policy rule parameter; the regime threshold
	// is (psi-1)/psi
	Psi float64
	// LowerBound is the interest-rate lower bound
	LowerBound float64
	// Regions to process, baseline first
	Regions []string
}

// Calculator computes enhancement tables over an indicator frame
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator, filling unset config fields with
// defaults (window 120, correlation window 24, psi 1.5, bound 0)
func NewCalculator(cfg Config) *Calculator {
	if cfg.NaturalRateWindow <= 0 {
		cfg.NaturalRateWindow = 120
	}
	if cfg.CorrelationWindow <= 0 {
		cfg.CorrelationWindow = 24
	}
	if cfg.Psi == 0 {
		cfg.Psi = 1.5
	}
	if len(cfg.Regions) == 0 {
		cfg.Regions = macro.Regions
	}
	return &Calculator{cfg: cfg}
}

// RegimeThreshold returns the probability cutoff (psi-1)/psi
func (c *Calculator) RegimeThreshold() float64 {
	return (c.cfg.Psi - 1) / c.cfg.Psi
}

// Enhance runs every enhancement over the indicator frame and returns
// one frame on the same index holding all derived columns.
func (c *Calculator) Enhance(frame *timeseries.Frame) (*timeseries.Frame, error) {
	out := timeseries.NewFrame(frame.Index())

	rates := c.NaturalRates(frame)
	if err := out.Join(rates); err != nil {
		return nil, fmt.Errorf("natural rates: %w", err)
	}

	probs := c.LowerBoundProbabilities(rates)
	if err := out.Join(probs); err != nil {
		return nil, fmt.Errorf("lower-bound probabilities: %w", err)
	}

	regimes := c.Regimes(probs)
	if err := out.Join(regimes); err != nil {
		return nil, fmt.Errorf("regimes: %w", err)
	}

	corrs := c.Correlations(frame)
	if err := out.Join(corrs); err != nil {
		return nil, fmt.Errorf("correlations: %w", err)
	}

	return out, nil
}
