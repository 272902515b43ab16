package enhancements

import (
	"math"
	"strings"

	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

// LowerBoundProbSuffix names the probability output columns
const LowerBoundProbSuffix = "_LB_PROB"

// logisticSlope controls how fast the probability decays as the natural
// rate moves away from the lower bound
const logisticSlope = 4.0

// LowerBoundProbabilities maps each natural-rate column to the
// probability of the lower bound binding: 1/(1+exp(4*gap)) where gap is
// the natural rate minus the lower bound. A zero gap yields exactly 0.5
// and the output always lies in [0,1].
func (c *Calculator) LowerBoundProbabilities(rates *timeseries.Frame) *timeseries.Frame {
	out := timeseries.NewFrame(rates.Index())

	for _, name := range rates.Columns() {
		region := strings.TrimSuffix(name, NaturalRateSuffix)
		if region == name {
			continue
		}

		values, _ := rates.Column(name)
		probs := make([]float64, len(values))
		for i, v := range values {
			if math.IsNaN(v) {
				probs[i] = math.NaN()
				continue
			}
			gap := v - c.cfg.LowerBound
			probs[i] = 1 / (1 + math.Exp(logisticSlope*gap))
		}
		_ = out.Set(region+LowerBoundProbSuffix, probs)
	}

	return out
}
