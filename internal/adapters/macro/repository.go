package macro

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/macro-pipeline/pkg/logger"
	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

const dateLayout = "2006-01-02"

// Repository loads raw macro series from CSV files and writes derived
// tables back. Files follow the macro_<SERIES>.csv convention: a date
// index column followed by one value column.
type Repository struct {
	dir string
}

// NewRepository creates a repository over a directory
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// SeriesPath returns the conventional file path for a series
func (r *Repository) SeriesPath(name string) string {
	return filepath.Join(r.dir, fmt.Sprintf("macro_%s.csv", name))
}

// LoadSeries reads one series file. A missing file propagates the
// underlying error to the caller.
func (r *Repository) LoadSeries(name string) (*timeseries.Series, error) {
	path := r.SeriesPath(name)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open series %s: %w", name, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read series %s: %w", name, err)
	}

	var times []time.Time
	var values []float64

	for i, record := range records {
		if len(record) < 2 {
			continue
		}
		t, err := time.Parse(dateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("series %s row %d: bad date %q", name, i+1, record[0])
		}
		times = append(times, t)
		values = append(values, parseValue(record[1]))
	}

	if len(times) == 0 {
		return nil, fmt.Errorf("series %s: no observations", name)
	}

	return timeseries.NewSeries(times, values)
}

// LoadAll loads every registry series that has a file, skipping missing
// ones with a warning. Non-zero bounds restrict observations to the
// date range. It fails only when nothing could be loaded.
func (r *Repository) LoadAll(reg *Registry, from, to time.Time) (map[string]*timeseries.Series, error) {
	out := make(map[string]*timeseries.Series)

	for _, def := range reg.Series {
		s, err := r.LoadSeries(def.Name)
		if err != nil {
			logger.Warn("skipping series",
				zap.String("series", def.Name),
				zap.Error(err),
			)
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			s = s.Slice(from, to)
			if s.Len() == 0 {
				logger.Warn("series empty inside date range", zap.String("series", def.Name))
				continue
			}
		}
		out[def.Name] = s
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no macro series found in %s", r.dir)
	}
	return out, nil
}

// SaveSeries writes one series in the macro_<SERIES>.csv convention
func (r *Repository) SaveSeries(name string, s *timeseries.Series) error {
	path := r.SeriesPath(name)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"date", name}); err != nil {
		return err
	}

	times := s.Times()
	values := s.Values()
	for i := range times {
		record := []string{times[i].Format(dateLayout), formatValue(values[i])}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// SaveFrame writes a derived table: date index plus one column per
// indicator, NaN cells left empty.
func (r *Repository) SaveFrame(f *timeseries.Frame, filename string) error {
	path := filepath.Join(r.dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	columns := f.Columns()
	header := append([]string{"date"}, columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	index := f.Index()
	values := make(map[string][]float64, len(columns))
	for _, name := range columns {
		values[name], _ = f.Column(name)
	}

	record := make([]string, len(header))
	for i, t := range index {
		record[0] = t.Format(dateLayout)
		for j, name := range columns {
			record[j+1] = formatValue(values[name][i])
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// LoadFrame reads a derived table written by SaveFrame
func (r *Repository) LoadFrame(filename string) (*timeseries.Frame, error) {
	path := filepath.Join(r.dir, filename)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("%s: expected date column plus indicators", path)
	}

	index := make([]time.Time, 0, len(records)-1)
	columns := make([][]float64, len(header)-1)

	for i, record := range records[1:] {
		t, err := time.Parse(dateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad date %q", path, i+2, record[0])
		}
		index = append(index, t)
		for j := range columns {
			if j+1 < len(record) {
				columns[j] = append(columns[j], parseValue(record[j+1]))
			} else {
				columns[j] = append(columns[j], math.NaN())
			}
		}
	}

	frame := timeseries.NewFrame(index)
	for j, name := range header[1:] {
		if err := frame.Set(name, columns[j]); err != nil {
			return nil, err
		}
	}
	return frame, nil
}

// parseValue reads one CSV cell; empty cells and the "." placeholder
// used by the remote API exports become NaN
func parseValue(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "." {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
