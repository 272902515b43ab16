package enhancements

import (
	"math"
	"strings"

	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

// RegimeSuffix names the regime output columns
const RegimeSuffix = "_REGIME"

// Regime values: 1 when the lower bound is likely binding, 0 otherwise
const (
	RegimeTargetEquilibrium = 0.0
	RegimeLowerBoundRisk    = 1.0
)

// Regimes flags each lower-bound-probability column against the
// (psi-1)/psi threshold. Probabilities above the threshold mark the
// constrained regime. NaN probabilities stay NaN.
func (c *Calculator) Regimes(probs *timeseries.Frame) *timeseries.Frame {
	out := timeseries.NewFrame(probs.Index())
	threshold := c.RegimeThreshold()

	for _, name := range probs.Columns() {
		region := strings.TrimSuffix(name, LowerBoundProbSuffix)
		if region == name {
			continue
		}

		values, _ := probs.Column(name)
		flags := make([]float64, len(values))
		for i, p := range values {
			switch {
			case math.IsNaN(p):
				flags[i] = math.NaN()
			case p > threshold:
				flags[i] = RegimeLowerBoundRisk
			default:
				flags[i] = RegimeTargetEquilibrium
			}
		}
		_ = out.Set(region+RegimeSuffix, flags)
	}

	return out
}
