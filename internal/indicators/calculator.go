package indicators

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/macro-pipeline/internal/adapters/macro"
	"github.com/selivandex/macro-pipeline/pkg/logger"
	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

// Calculator derives the macro indicator table from raw series: yield
// spreads against the US, CPI year-over-year rates and their
// differentials, plus the volatility index, all on a monthly grid.
type Calculator struct {
	regions []string
}

// NewCalculator creates a calculator over the default region set
func NewCalculator() *Calculator {
	return &Calculator{regions: macro.Regions}
}

// NewCalculatorForRegions creates a calculator over a custom region set;
// the first region is the spread baseline
func NewCalculatorForRegions(regions []string) *Calculator {
	return &Calculator{regions: regions}
}

// Calculate builds the indicator frame from raw series. Yields and the
// VIX are resampled to monthly last observations; CPI indices are
// resampled monthly with linear interpolation before the YoY change.
// Regions with missing inputs are skipped, not fatal.
func (c *Calculator) Calculate(raw map[string]*timeseries.Series) (*timeseries.Frame, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no raw series to calculate indicators from")
	}

	monthly := make(map[string]*timeseries.Series)

	if vix, ok := raw["VIX"]; ok {
		monthly["VIX"] = vix.ResampleMonthly(timeseries.ResampleLast)
	} else {
		logger.Warn("volatility index missing from raw series")
	}

	for _, region := range c.regions {
		for _, tenor := range []string{"2Y", "10Y"} {
			name := region + "_" + tenor
			if s, ok := raw[name]; ok {
				monthly[name] = s.ResampleMonthly(timeseries.ResampleLast)
			}
		}

		cpiName := region + "_CPI"
		cpi, ok := raw[cpiName]
		if !ok {
			logger.Warn("CPI series missing, skipping YoY", zap.String("region", region))
			continue
		}

		// Monthly grid with interior gaps closed before the 12-month
		// change, so quarterly CPI prints still produce a full YoY curve
		cpiMonthly := cpi.ResampleMonthly(timeseries.ResampleLast).Interpolate()
		yoy := cpiMonthly.PctChange(12).FFill().BFill()
		monthly[region+"_CPI_YOY"] = yoy
	}

	index := commonMonthlyIndex(monthly)
	if len(index) == 0 {
		return nil, fmt.Errorf("no observations across raw series")
	}

	frame := timeseries.NewFrame(index)

	// Levels first: VIX plus the per-region columns the enhancement
	// stage consumes
	if s, ok := monthly["VIX"]; ok {
		if err := frame.SetSeries("VIX", s); err != nil {
			return nil, err
		}
	}
	for _, region := range c.regions {
		for _, suffix := range []string{"_2Y", "_10Y", "_CPI_YOY"} {
			name := region + suffix
			if s, ok := monthly[name]; ok {
				if err := frame.SetSeries(name, s); err != nil {
					return nil, err
				}
			}
		}
	}

	// Spreads: baseline minus each other region
	base := c.regions[0]
	for _, region := range c.regions[1:] {
		for _, suffix := range []string{"_2Y", "_10Y", "_CPI_YOY"} {
			baseCol := base + suffix
			regionCol := region + suffix
			if !frame.Has(baseCol) || !frame.Has(regionCol) {
				logger.Warn("skipping spread, column missing",
					zap.String("base", baseCol),
					zap.String("region", regionCol),
				)
				continue
			}
			spread, err := frame.Sub(baseCol, regionCol)
			if err != nil {
				return nil, err
			}
			name := fmt.Sprintf("%s-%s%s", base, region, suffix)
			if err := frame.Set(name, spread); err != nil {
				return nil, err
			}
		}
	}

	// Close remaining gaps the way the loader does: Inf to NaN, then
	// forward/backward fill
	frame.ReplaceInf()
	frame.FFill()

	return frame, nil
}

// commonMonthlyIndex spans the earliest to the latest month across all
// resampled series
func commonMonthlyIndex(monthly map[string]*timeseries.Series) []time.Time {
	var first, last time.Time
	for _, s := range monthly {
		if s.Len() == 0 {
			continue
		}
		start, _ := s.At(0)
		end, _ := s.At(s.Len() - 1)
		if first.IsZero() || start.Before(first) {
			first = start
		}
		if last.IsZero() || end.After(last) {
			last = end
		}
	}

	if first.IsZero() {
		return nil
	}

	var index []time.Time
	for t := first; !t.After(last); t = t.AddDate(0, 1, 0) {
		index = append(index, t)
	}
	return index
}
