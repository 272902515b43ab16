package enhancements

import (
	"math"
	"os"
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

func monthlyIndex(n int) []time.Time {
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	index := make([]time.Time, n)
	for i := range index {
		index[i] = start.AddDate(0, i, 0)
	}
	return index
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// indicatorFrame builds a two-region indicator table with constant
// levels, so the natural rate converges to a known value.
func indicatorFrame(n int) *timeseries.Frame {
	f := timeseries.NewFrame(monthlyIndex(n))

	_ = f.Set("VIX", constant(n, 15))
	_ = f.Set("US_10Y", constant(n, 3))
	_ = f.Set("US_CPI_YOY", constant(n, 2))
	_ = f.Set("JP_10Y", constant(n, 1))
	_ = f.Set("JP_CPI_YOY", constant(n, 1))
	_ = f.Set("US-JP_10Y", constant(n, 2))
	_ = f.Set("US-JP_CPI_YOY", constant(n, 1))

	return f
}

func testCalculator() *Calculator {
	return NewCalculator(Config{
		NaturalRateWindow: 8,
		CorrelationWindow: 6,
		Psi:               1.5,
		Regions:           []string{"US", "JP"},
	})
}

func TestNaturalRates(t *testing.T) {
	calc := testCalculator()
	frame := indicatorFrame(24)

	rates := calc.NaturalRates(frame)

	us, ok := rates.Column("US_NATURAL_RATE")
	if !ok {
		t.Fatal("US_NATURAL_RATE missing")
	}
	// Real rate 3 - 2 = 1, constant, so the rolling mean is 1 once the
	// minimum sample (window/4 = 2) is reached
	if !math.IsNaN(us[0]) {
		t.Error("first row is below min periods, expected NaN")
	}
	if math.Abs(us[10]-1) > 1e-9 {
		t.Errorf("expected natural rate 1, got %.4f", us[10])
	}

	jp, _ := rates.Column("JP_NATURAL_RATE")
	if math.Abs(jp[10]-0) > 1e-9 {
		t.Errorf("expected natural rate 0, got %.4f", jp[10])
	}
}

func TestNaturalRates_SkipsMissingRegion(t *testing.T) {
	calc := NewCalculator(Config{
		NaturalRateWindow: 8,
		Regions:           []string{"US", "JP", "CA"},
	})
	frame := indicatorFrame(24)

	rates := calc.NaturalRates(frame)

	if rates.Has("CA_NATURAL_RATE") {
		t.Error("region without inputs should be skipped")
	}
	if !rates.Has("US_NATURAL_RATE") || !rates.Has("JP_NATURAL_RATE") {
		t.Error("remaining regions should still be estimated")
	}
}

func TestLowerBoundProbabilities(t *testing.T) {
	calc := testCalculator()
	frame := indicatorFrame(24)
	rates := calc.NaturalRates(frame)

	probs := calc.LowerBoundProbabilities(rates)

	t.Run("zero gap yields exactly one half", func(t *testing.T) {
		jp, ok := probs.Column("JP_LB_PROB")
		if !ok {
			t.Fatal("JP_LB_PROB missing")
		}
		if jp[10] != 0.5 {
			t.Errorf("natural rate 0 at bound 0 should give probability 0.5, got %v", jp[10])
		}
	})

	t.Run("all probabilities lie in unit interval", func(t *testing.T) {
		for _, name := range probs.Columns() {
			values, _ := probs.Column(name)
			for i, p := range values {
				if math.IsNaN(p) {
					continue
				}
				if p < 0 || p > 1 {
					t.Errorf("%s row %d: probability %v outside [0,1]", name, i, p)
				}
			}
		}
	})

	t.Run("larger gap lowers probability", func(t *testing.T) {
		us, _ := probs.Column("US_LB_PROB")
		jp, _ := probs.Column("JP_LB_PROB")
		if us[10] >= jp[10] {
			t.Errorf("gap 1 should give lower probability than gap 0: %.4f vs %.4f", us[10], jp[10])
		}
	})
}

func TestRegimes(t *testing.T) {
	calc := testCalculator()

	if math.Abs(calc.RegimeThreshold()-1.0/3.0) > 1e-12 {
		t.Errorf("psi 1.5 should give threshold 1/3, got %.6f", calc.RegimeThreshold())
	}

	index := monthlyIndex(4)
	probs := timeseries.NewFrame(index)
	_ = probs.Set("US_LB_PROB", []float64{0.5, 0.2, 1.0 / 3.0, math.NaN()})

	regimes := calc.Regimes(probs)

	values, ok := regimes.Column("US_REGIME")
	if !ok {
		t.Fatal("US_REGIME missing")
	}

	// 0.5 > 1/3 is the constrained regime; the threshold itself is not
	if values[0] != 1 {
		t.Errorf("probability 0.5 should flag regime 1, got %v", values[0])
	}
	if values[1] != 0 {
		t.Errorf("probability 0.2 should flag regime 0, got %v", values[1])
	}
	if values[2] != 0 {
		t.Errorf("probability at the threshold should flag regime 0, got %v", values[2])
	}
	if !math.IsNaN(values[3]) {
		t.Errorf("NaN probability should stay NaN, got %v", values[3])
	}

	for i, v := range values[:3] {
		if v != 0 && v != 1 {
			t.Errorf("row %d: regime %v is not binary", i, v)
		}
	}
}

func TestCorrelations(t *testing.T) {
	calc := testCalculator()
	n := 24
	frame := timeseries.NewFrame(monthlyIndex(n))

	// VIX and the inflation differential rise together; the 10Y spread
	// moves against them
	vix := make([]float64, n)
	infl := make([]float64, n)
	rates := make([]float64, n)
	for i := 0; i < n; i++ {
		vix[i] = 15 + float64(i) + 0.3*float64(i%2)
		infl[i] = 1 + 0.5*float64(i) + 0.1*float64(i%2)
		rates[i] = 10 - 0.4*float64(i) - 0.05*float64(i%2)
	}
	_ = frame.Set("VIX", vix)
	_ = frame.Set("US-JP_CPI_YOY", infl)
	_ = frame.Set("US-JP_10Y", rates)

	corrs := calc.Correlations(frame)

	inflCorr, ok := corrs.Column("JP_VIX_INFLATION_CORR")
	if !ok {
		t.Fatal("JP_VIX_INFLATION_CORR missing")
	}
	rateCorr, ok := corrs.Column("JP_VIX_RATES_CORR")
	if !ok {
		t.Fatal("JP_VIX_RATES_CORR missing")
	}

	last := n - 1
	if inflCorr[last] <= 0 {
		t.Errorf("co-moving series should correlate positively, got %.4f", inflCorr[last])
	}
	if rateCorr[last] >= 0 {
		t.Errorf("opposing series should correlate negatively, got %.4f", rateCorr[last])
	}

	if !math.IsNaN(inflCorr[0]) {
		t.Error("first row has no change observations, expected NaN")
	}
}

func TestCorrelations_MissingVIX(t *testing.T) {
	calc := testCalculator()
	frame := timeseries.NewFrame(monthlyIndex(5))
	_ = frame.Set("US-JP_10Y", constant(5, 2))

	corrs := calc.Correlations(frame)
	if len(corrs.Columns()) != 0 {
		t.Error("correlations without a volatility index should be empty")
	}
}

func TestEnhance_CombinesAllTables(t *testing.T) {
	calc := testCalculator()
	frame := indicatorFrame(24)

	out, err := calc.Enhance(frame)
	if err != nil {
		t.Fatalf("Enhance: %v", err)
	}

	for _, name := range []string{
		"US_NATURAL_RATE", "JP_NATURAL_RATE",
		"US_LB_PROB", "JP_LB_PROB",
		"US_REGIME", "JP_REGIME",
		"JP_VIX_INFLATION_CORR", "JP_VIX_RATES_CORR",
	} {
		if !out.Has(name) {
			t.Errorf("expected enhancement column %s", name)
		}
	}

	if out.Len() != frame.Len() {
		t.Errorf("enhancement index should match the indicator table: %d vs %d", out.Len(), frame.Len())
	}
}
