package timeseries

import (
	"math"
	"sort"
)

// RollingMean computes a trailing mean over `window` observations. NaN
// inputs are skipped; positions with fewer than minPeriods known values
// inside the window stay NaN.
func RollingMean(values []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		count := 0
		for j := start; j <= i; j++ {
			if math.IsNaN(values[j]) {
				continue
			}
			sum += values[j]
			count++
		}
		if count < minPeriods || count == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(count)
	}
	return out
}

// RollingCorrSpearman computes a trailing Spearman rank correlation
// between two equal-length slices. Only pairs where both values are
// known count toward minPeriods.
func RollingCorrSpearman(a, b []float64, window, minPeriods int) []float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i - window + 1
		if start < 0 {
			start = 0
		}

		var wa, wb []float64
		for j := start; j <= i; j++ {
			if math.IsNaN(a[j]) || math.IsNaN(b[j]) {
				continue
			}
			wa = append(wa, a[j])
			wb = append(wb, b[j])
		}

		if len(wa) < minPeriods || len(wa) < 2 {
			out[i] = math.NaN()
			continue
		}
		out[i] = spearman(wa, wb)
	}
	return out
}

// spearman is the Pearson correlation of the value ranks
func spearman(a, b []float64) float64 {
	return pearson(ranks(a), ranks(b))
}

// ranks assigns 1-based ranks, averaging ranks across ties
func ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return values[idx[i]] < values[idx[j]]
	})

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// Average rank for the tie group [i, j]
		rank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[idx[k]] = rank
		}
		i = j + 1
	}
	return out
}

func pearson(a, b []float64) float64 {
	n := float64(len(a))
	if n == 0 {
		return math.NaN()
	}

	var sumA, sumB float64
	for i := range a {
		sumA += a[i]
		sumB += b[i]
	}
	meanA := sumA / n
	meanB := sumB / n

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varA*varB)
}
