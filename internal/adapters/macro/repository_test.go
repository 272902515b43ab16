package macro

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/selivandex/macro-pipeline/pkg/logger"
	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRepository_LoadSeries(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	writeFile(t, repo.SeriesPath("US_10Y"), "date,US_10Y\n2020-01-02,1.88\n2020-01-03,1.80\n2020-01-06,.\n")

	s, err := repo.LoadSeries("US_10Y")
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("expected 3 observations, got %d", s.Len())
	}

	_, first := s.At(0)
	if first != 1.88 {
		t.Errorf("expected 1.88, got %v", first)
	}

	_, missing := s.At(2)
	if !math.IsNaN(missing) {
		t.Errorf("'.' placeholder should parse as NaN, got %v", missing)
	}
}

func TestRepository_LoadSeriesMissingFile(t *testing.T) {
	repo := NewRepository(t.TempDir())

	_, err := repo.LoadSeries("US_10Y")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestRepository_LoadAll(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	writeFile(t, repo.SeriesPath("VIX"), "date,VIX\n2020-01-02,13.5\n2020-02-03,18.1\n")
	writeFile(t, repo.SeriesPath("US_10Y"), "date,US_10Y\n2020-01-02,1.88\n")

	reg := &Registry{Series: []SeriesDef{
		{Name: "VIX"},
		{Name: "US_10Y"},
		{Name: "US_2Y"}, // no file, skipped
	}}

	series, err := repo.LoadAll(reg, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if len(series) != 2 {
		t.Errorf("expected 2 series, got %d", len(series))
	}
	if _, ok := series["US_2Y"]; ok {
		t.Error("missing series should be skipped, not loaded")
	}
}

func TestRepository_LoadAllDateRange(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	writeFile(t, repo.SeriesPath("VIX"), "date,VIX\n2019-12-31,12\n2020-01-02,13.5\n2020-02-03,18.1\n")

	reg := &Registry{Series: []SeriesDef{{Name: "VIX"}}}

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	series, err := repo.LoadAll(reg, from, time.Time{})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if series["VIX"].Len() != 2 {
		t.Errorf("expected 2 observations after filtering, got %d", series["VIX"].Len())
	}
}

func TestRepository_LoadAllEmpty(t *testing.T) {
	repo := NewRepository(t.TempDir())

	if _, err := repo.LoadAll(DefaultRegistry(), time.Time{}, time.Time{}); err == nil {
		t.Error("expected error when no series could be loaded")
	}
}

func TestRepository_SeriesRoundTrip(t *testing.T) {
	repo := NewRepository(t.TempDir())

	times := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	s, _ := timeseries.NewSeries(times, []float64{1.5, math.NaN()})

	if err := repo.SaveSeries("JP_10Y", s); err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}

	loaded, err := repo.LoadSeries("JP_10Y")
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("expected 2 observations, got %d", loaded.Len())
	}
	_, v0 := loaded.At(0)
	if v0 != 1.5 {
		t.Errorf("expected 1.5, got %v", v0)
	}
	_, v1 := loaded.At(1)
	if !math.IsNaN(v1) {
		t.Errorf("NaN should survive the round trip, got %v", v1)
	}
}

func TestRepository_FrameRoundTrip(t *testing.T) {
	repo := NewRepository(t.TempDir())

	index := []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	frame := timeseries.NewFrame(index)
	_ = frame.Set("US-JP_10Y", []float64{2.0, 2.1})
	_ = frame.Set("JP_REGIME", []float64{0, math.NaN()})

	if err := repo.SaveFrame(frame, "derived_indicators.csv"); err != nil {
		t.Fatalf("SaveFrame: %v", err)
	}

	loaded, err := repo.LoadFrame("derived_indicators.csv")
	if err != nil {
		t.Fatalf("LoadFrame: %v", err)
	}

	if got := loaded.Columns(); len(got) != 2 || got[0] != "US-JP_10Y" || got[1] != "JP_REGIME" {
		t.Errorf("unexpected columns: %v", got)
	}

	spread, _ := loaded.Column("US-JP_10Y")
	if spread[1] != 2.1 {
		t.Errorf("expected 2.1, got %v", spread[1])
	}

	regime, _ := loaded.Column("JP_REGIME")
	if !math.IsNaN(regime[1]) {
		t.Errorf("empty cell should load as NaN, got %v", regime[1])
	}
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.toml")

	writeFile(t, path, `
[[series]]
name = "US_10Y"
fred_id = "DGS10"

[[series]]
name = "JP_2Y"
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	if len(reg.Series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(reg.Series))
	}
	if reg.Series[0].FredID != "DGS10" {
		t.Errorf("unexpected fred_id: %q", reg.Series[0].FredID)
	}

	remote := reg.Remote()
	if len(remote) != 1 || remote[0].Name != "US_10Y" {
		t.Errorf("expected only US_10Y to be remote, got %v", remote)
	}
}

func TestLoadRegistry_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.toml")
	writeFile(t, path, "")

	if _, err := LoadRegistry(path); err == nil {
		t.Error("expected error for empty registry")
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()

	// 2Y + 10Y + CPI per region plus the VIX
	want := len(Regions)*3 + 1
	if len(reg.Series) != want {
		t.Errorf("expected %d series, got %d", want, len(reg.Series))
	}

	// Non-US 2Y yields are CSV-only; everything else is remote-capable
	if got := len(reg.Remote()); got != 14 {
		t.Errorf("expected 14 remote series, got %d", got)
	}
}
