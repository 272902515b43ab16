package enhancements

import (
	"go.uber.org/zap"

	"github.com/selivandex/macro-pipeline/pkg/logger"
	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

// NaturalRateSuffix names the natural-rate output columns
const NaturalRateSuffix = "_NATURAL_RATE"

// NaturalRates estimates a natural-rate proxy per region: the rolling
// mean of the real rate (nominal 10Y yield minus CPI YoY inflation).
// Regions missing either input column are skipped.
func (c *Calculator) NaturalRates(frame *timeseries.Frame) *timeseries.Frame {
	out := timeseries.NewFrame(frame.Index())
	minPeriods := c.cfg.NaturalRateWindow / 4

	for _, region := range c.cfg.Regions {
		yieldCol := region + "_10Y"
		inflationCol := region + "_CPI_YOY"

		realRate, err := frame.Sub(yieldCol, inflationCol)
		if err != nil {
			logger.Warn("skipping natural rate, column missing",
				zap.String("region", region),
				zap.Error(err),
			)
			continue
		}

		natural := timeseries.RollingMean(realRate, c.cfg.NaturalRateWindow, minPeriods)
		_ = out.Set(region+NaturalRateSuffix, natural)
	}

	return out
}
