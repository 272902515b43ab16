package timeseries

import (
	"math"
	"time"
)

// Reindex projects the frame onto an arbitrary target index. Each cell
// takes the last observation at or before the target timestamp; rows
// before the first observation are back-filled from it. The output index
// is exactly the target index.
func (f *Frame) Reindex(target []time.Time) *Frame {
	out := NewFrame(target)
	for _, name := range f.order {
		values := valuesAt(f.index, f.cols[name], target, true)
		_ = out.Set(name, fillBackward(values))
	}
	return out
}

// ReindexSeries projects a single series onto a target index with the
// same forward/backward fill semantics as Frame.Reindex.
func ReindexSeries(s *Series, target []time.Time) *Series {
	values := fillBackward(valuesAt(s.times, s.values, target, true))
	idx := make([]time.Time, len(target))
	copy(idx, target)
	return &Series{times: idx, values: values}
}

// valuesAt samples (times, values) at each target timestamp. The target
// index must be ascending. With asof set, a target between observations
// takes the previous observation; otherwise only exact timestamp matches
// produce a value.
func valuesAt(times []time.Time, values []float64, target []time.Time, asof bool) []float64 {
	out := make([]float64, len(target))
	j := 0
	last := math.NaN()

	for i, t := range target {
		for j < len(times) && !times[j].After(t) {
			last = values[j]
			j++
		}

		if j > 0 && times[j-1].Equal(t) {
			out[i] = values[j-1]
		} else if asof {
			out[i] = last
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
