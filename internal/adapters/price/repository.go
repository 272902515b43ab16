package price

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selivandex/macro-pipeline/pkg/models"
)

// Repository loads candle data from CSV price files. Expected layout:
// date,open,high,low,close[,volume] with a header row. Dates are either
// YYYY-MM-DD or RFC3339.
type Repository struct {
	path string
}

// NewRepository creates a repository over one price file
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// LoadCandles reads every candle from the file, sorted as stored
func (r *Repository) LoadCandles() ([]models.Candle, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read price file: %w", err)
	}

	candles := make([]models.Candle, 0, len(records))
	for i, record := range records {
		if len(record) < 5 {
			continue
		}

		t, err := parseDate(record[0])
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("price file row %d: bad date %q", i+1, record[0])
		}

		candle := models.Candle{Timestamp: t}
		fields := []*decimal.Decimal{&candle.Open, &candle.High, &candle.Low, &candle.Close}
		for j, field := range fields {
			d, err := decimal.NewFromString(strings.TrimSpace(record[j+1]))
			if err != nil {
				return nil, fmt.Errorf("price file row %d: bad value %q", i+1, record[j+1])
			}
			*field = d
		}

		if len(record) > 5 && strings.TrimSpace(record[5]) != "" {
			volume, err := decimal.NewFromString(strings.TrimSpace(record[5]))
			if err != nil {
				return nil, fmt.Errorf("price file row %d: bad volume %q", i+1, record[5])
			}
			candle.Volume = volume
		}

		candles = append(candles, candle)
	}

	if len(candles) == 0 {
		return nil, fmt.Errorf("price file %s: no candles", r.path)
	}
	return candles, nil
}

// Timestamps extracts the candle index for macro alignment
func Timestamps(candles []models.Candle) []time.Time {
	out := make([]time.Time, len(candles))
	for i, c := range candles {
		out[i] = c.Timestamp
	}
	return out
}

func parseDate(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if t, err := time.Parse("2006-01-02", cell); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, cell)
}
