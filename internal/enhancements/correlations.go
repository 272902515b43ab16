package enhancements

import (
	"math"

	"go.uber.org/zap"

	"github.com/selivandex/macro-pipeline/pkg/logger"
	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

// Correlation output column suffixes
const (
	VIXInflationCorrSuffix = "_VIX_INFLATION_CORR"
	VIXRatesCorrSuffix     = "_VIX_RATES_CORR"
)

// Correlations computes rolling Spearman rank correlations between
// month-over-month VIX changes and changes in each region's inflation
// differential and 10Y yield spread against the baseline.
func (c *Calculator) Correlations(frame *timeseries.Frame) *timeseries.Frame {
	out := timeseries.NewFrame(frame.Index())

	vix, ok := frame.Column("VIX")
	if !ok {
		logger.Warn("volatility index missing, skipping correlations")
		return out
	}
	vixChanges := diff(vix)

	window := c.cfg.CorrelationWindow
	minPeriods := window / 2
	base := c.cfg.Regions[0]

	for _, region := range c.cfg.Regions[1:] {
		targets := []struct {
			column string
			suffix string
		}{
			{base + "-" + region + "_CPI_YOY", VIXInflationCorrSuffix},
			{base + "-" + region + "_10Y", VIXRatesCorrSuffix},
		}

		for _, target := range targets {
			values, ok := frame.Column(target.column)
			if !ok {
				logger.Warn("skipping correlation, column missing",
					zap.String("column", target.column),
				)
				continue
			}
			corr := timeseries.RollingCorrSpearman(vixChanges, diff(values), window, minPeriods)
			_ = out.Set(region+target.suffix, corr)
		}
	}

	return out
}

func diff(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		if i == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = values[i] - values[i-1]
	}
	return out
}
