package timeseries

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Series represents a single time series: timestamps sorted ascending,
// one value per timestamp. Missing observations are stored as NaN.
type Series struct {
	times  []time.Time
	values []float64
}

// NewSeries creates a series from parallel slices. Points are sorted by
// timestamp; duplicate timestamps keep the last value.
func NewSeries(times []time.Time, values []float64) (*Series, error) {
	if len(times) != len(values) {
		return nil, fmt.Errorf("times/values length mismatch: %d vs %d", len(times), len(values))
	}

	type point struct {
		t time.Time
		v float64
	}

	points := make([]point, len(times))
	for i := range times {
		points[i] = point{t: times[i], v: values[i]}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].t.Before(points[j].t)
	})

	s := &Series{
		times:  make([]time.Time, 0, len(points)),
		values: make([]float64, 0, len(points)),
	}

	for _, p := range points {
		n := len(s.times)
		if n > 0 && s.times[n-1].Equal(p.t) {
			s.values[n-1] = p.v
			continue
		}
		s.times = append(s.times, p.t)
		s.values = append(s.values, p.v)
	}

	return s, nil
}

// Len returns the number of observations
func (s *Series) Len() int {
	return len(s.times)
}

// Times returns a copy of the timestamp index
func (s *Series) Times() []time.Time {
	out := make([]time.Time, len(s.times))
	copy(out, s.times)
	return out
}

// Values returns a copy of the observation values
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// At returns the observation at position i
func (s *Series) At(i int) (time.Time, float64) {
	return s.times[i], s.values[i]
}

// Slice returns observations between from and to inclusive. Zero time
// bounds are ignored.
func (s *Series) Slice(from, to time.Time) *Series {
	times := make([]time.Time, 0, len(s.times))
	values := make([]float64, 0, len(s.values))

	for i, t := range s.times {
		if !from.IsZero() && t.Before(from) {
			continue
		}
		if !to.IsZero() && t.After(to) {
			continue
		}
		times = append(times, t)
		values = append(values, s.values[i])
	}

	return &Series{times: times, values: values}
}

// FFill returns a copy with NaN gaps filled by the last known value
func (s *Series) FFill() *Series {
	return &Series{times: s.Times(), values: fillForward(s.Values())}
}

// BFill returns a copy with NaN gaps filled by the next known value
func (s *Series) BFill() *Series {
	return &Series{times: s.Times(), values: fillBackward(s.Values())}
}

// Interpolate returns a copy with interior NaN gaps filled linearly
// between the surrounding known values. Leading and trailing gaps are
// left as NaN.
func (s *Series) Interpolate() *Series {
	return &Series{times: s.Times(), values: interpolateLinear(s.Values())}
}

// Diff returns first differences; the first value is NaN
func (s *Series) Diff() *Series {
	return &Series{times: s.Times(), values: diff(s.values)}
}

// PctChange returns the percent change against the observation `periods`
// steps back. The first `periods` values are NaN.
func (s *Series) PctChange(periods int) *Series {
	values := make([]float64, len(s.values))
	for i := range values {
		if i < periods {
			values[i] = math.NaN()
			continue
		}
		prev := s.values[i-periods]
		cur := s.values[i]
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			values[i] = math.NaN()
			continue
		}
		values[i] = (cur - prev) / prev * 100
	}
	return &Series{times: s.Times(), values: values}
}

// fillForward propagates the last known value into NaN gaps
func fillForward(values []float64) []float64 {
	last := math.NaN()
	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = last
		} else {
			last = v
		}
	}
	return values
}

// fillBackward propagates the next known value into NaN gaps
func fillBackward(values []float64) []float64 {
	next := math.NaN()
	for i := len(values) - 1; i >= 0; i-- {
		if math.IsNaN(values[i]) {
			values[i] = next
		} else {
			next = values[i]
		}
	}
	return values
}

// interpolateLinear fills interior gaps linearly by position
func interpolateLinear(values []float64) []float64 {
	prev := -1
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			step := (v - values[prev]) / float64(i-prev)
			for j := prev + 1; j < i; j++ {
				values[j] = values[prev] + step*float64(j-prev)
			}
		}
		prev = i
	}
	return values
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
