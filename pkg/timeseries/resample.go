package timeseries

import (
	"math"
	"time"
)

// ResampleMethod selects how observations inside one bucket collapse
type ResampleMethod int

const (
	// ResampleLast keeps the last observation of each month
	ResampleLast ResampleMethod = iota
	// ResampleMean averages the observations of each month
	ResampleMean
)

// ResampleMonthly buckets observations by calendar month and collapses
// each bucket with the given method. The output index is the first day
// of each month between the first and last observation, so months with
// no observations appear as NaN and can be interpolated.
func (s *Series) ResampleMonthly(method ResampleMethod) *Series {
	if len(s.times) == 0 {
		return &Series{}
	}

	type bucket struct {
		sum   float64
		count int
		last  float64
	}

	buckets := make(map[time.Time]*bucket)
	for i, t := range s.times {
		v := s.values[i]
		if math.IsNaN(v) {
			continue
		}
		key := monthStart(t)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.sum += v
		b.count++
		b.last = v
	}

	first := monthStart(s.times[0])
	last := monthStart(s.times[len(s.times)-1])

	var times []time.Time
	var values []float64

	for t := first; !t.After(last); t = t.AddDate(0, 1, 0) {
		times = append(times, t)
		b, ok := buckets[t]
		if !ok {
			values = append(values, math.NaN())
			continue
		}
		switch method {
		case ResampleMean:
			values = append(values, b.sum/float64(b.count))
		default:
			values = append(values, b.last)
		}
	}

	return &Series{times: times, values: values}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
