package timeseries

import (
	"fmt"
	"math"
	"time"
)

// Frame is a set of named series sharing one timestamp index. Column
// order is preserved for deterministic CSV output.
type Frame struct {
	index []time.Time
	order []string
	cols  map[string][]float64
}

// NewFrame creates an empty frame over the given index
func NewFrame(index []time.Time) *Frame {
	idx := make([]time.Time, len(index))
	copy(idx, index)
	return &Frame{
		index: idx,
		cols:  make(map[string][]float64),
	}
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns a copy of the timestamp index
func (f *Frame) Index() []time.Time {
	out := make([]time.Time, len(f.index))
	copy(out, f.index)
	return out
}

// Columns returns column names in insertion order
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Has reports whether the column exists
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Set adds or replaces a column. The values length must match the index.
func (f *Frame) Set(name string, values []float64) error {
	if len(values) != len(f.index) {
		return fmt.Errorf("column %s: %d values for %d rows", name, len(values), len(f.index))
	}
	if _, ok := f.cols[name]; !ok {
		f.order = append(f.order, name)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	f.cols[name] = vals
	return nil
}

// SetSeries adds a column from a series, reindexing it onto the frame's
// index. Timestamps missing from the series become NaN.
func (f *Frame) SetSeries(name string, s *Series) error {
	return f.Set(name, valuesAt(s.times, s.values, f.index, false))
}

// Column returns the values of a column
func (f *Frame) Column(name string) ([]float64, bool) {
	values, ok := f.cols[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out, true
}

// Series extracts a column as a standalone series
func (f *Frame) Series(name string) (*Series, bool) {
	values, ok := f.Column(name)
	if !ok {
		return nil, false
	}
	return &Series{times: f.Index(), values: values}, true
}

// Sub returns the element-wise difference of two columns
func (f *Frame) Sub(a, b string) ([]float64, error) {
	va, ok := f.cols[a]
	if !ok {
		return nil, fmt.Errorf("column %s not found", a)
	}
	vb, ok := f.cols[b]
	if !ok {
		return nil, fmt.Errorf("column %s not found", b)
	}
	out := make([]float64, len(va))
	for i := range out {
		out[i] = va[i] - vb[i]
	}
	return out, nil
}

// FFill fills NaN gaps in every column with the last known value, then
// back-fills any leading gaps
func (f *Frame) FFill() {
	for _, name := range f.order {
		f.cols[name] = fillBackward(fillForward(f.cols[name]))
	}
}

// ReplaceInf replaces ±Inf cells with NaN so fills can close them
func (f *Frame) ReplaceInf() {
	for _, name := range f.order {
		for i, v := range f.cols[name] {
			if math.IsInf(v, 0) {
				f.cols[name][i] = math.NaN()
			}
		}
	}
}

// Slice returns the rows between from and to inclusive. Zero time
// bounds are ignored.
func (f *Frame) Slice(from, to time.Time) *Frame {
	keep := make([]int, 0, len(f.index))
	for i, t := range f.index {
		if !from.IsZero() && t.Before(from) {
			continue
		}
		if !to.IsZero() && t.After(to) {
			continue
		}
		keep = append(keep, i)
	}

	index := make([]time.Time, len(keep))
	for i, j := range keep {
		index[i] = f.index[j]
	}

	out := NewFrame(index)
	for _, name := range f.order {
		values := make([]float64, len(keep))
		for i, j := range keep {
			values[i] = f.cols[name][j]
		}
		_ = out.Set(name, values)
	}
	return out
}

// Join copies every column of other into f. Both frames must share the
// same index length and ordering.
func (f *Frame) Join(other *Frame) error {
	if other.Len() != f.Len() {
		return fmt.Errorf("index length mismatch: %d vs %d", f.Len(), other.Len())
	}
	for i := range f.index {
		if !f.index[i].Equal(other.index[i]) {
			return fmt.Errorf("index mismatch at row %d", i)
		}
	}
	for _, name := range other.order {
		if err := f.Set(name, other.cols[name]); err != nil {
			return err
		}
	}
	return nil
}
