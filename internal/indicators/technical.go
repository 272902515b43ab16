package indicators

import (
	"fmt"

	"github.com/cinar/indicator"
	"github.com/shopspring/decimal"

	"github.com/selivandex/macro-pipeline/pkg/models"
)

// TechnicalCalculator computes price-side indicators from candle data
type TechnicalCalculator struct{}

// NewTechnicalCalculator creates new technical indicator calculator
func NewTechnicalCalculator() *TechnicalCalculator {
	return &TechnicalCalculator{}
}

// smaPeriods are the moving-average windows reported in the output
var smaPeriods = []int{20, 50, 200}

// Calculate computes SMA, RSI, ATR, MACD and Bollinger Bands from the
// latest candles
func (c *TechnicalCalculator) Calculate(candles []models.Candle) (*models.TechnicalIndicators, error) {
	if len(candles) < 26 {
		return nil, fmt.Errorf("insufficient candles for indicators (need at least 26, got %d)", len(candles))
	}

	closes := make([]float64, len(candles))
	highs := make([]float64, len(candles))
	lows := make([]float64, len(candles))

	for i, candle := range candles {
		closes[i] = models.ToFloat64(candle.Close)
		highs[i] = models.ToFloat64(candle.High)
		lows[i] = models.ToFloat64(candle.Low)
	}

	sma := make(map[string]decimal.Decimal)
	for _, period := range smaPeriods {
		if len(closes) < period {
			continue
		}
		values := indicator.Sma(period, closes)
		sma[fmt.Sprintf("%d", period)] = models.NewDecimal(values[len(values)-1])
	}

	_, rsi14 := indicator.Rsi(closes)
	if len(rsi14) < 14 {
		return nil, fmt.Errorf("insufficient RSI data")
	}

	_, atr14 := indicator.Atr(14, highs, lows, closes)
	if len(atr14) == 0 {
		return nil, fmt.Errorf("ATR returned no data")
	}

	macdLine, signalLine := indicator.Macd(closes)
	histogram := macdLine[len(macdLine)-1] - signalLine[len(signalLine)-1]

	bbMiddle, bbUpper, bbLower := indicator.BollingerBands(closes)

	return &models.TechnicalIndicators{
		SMA: sma,
		RSI: map[string]decimal.Decimal{
			"14": models.NewDecimal(rsi14[len(rsi14)-1]),
		},
		ATR: models.NewDecimal(atr14[len(atr14)-1]),
		MACD: &models.MACDIndicator{
			MACD:      models.NewDecimal(macdLine[len(macdLine)-1]),
			Signal:    models.NewDecimal(signalLine[len(signalLine)-1]),
			Histogram: models.NewDecimal(histogram),
		},
		BollingerBands: &models.BollingerBandsIndicator{
			Upper:  models.NewDecimal(bbUpper[len(bbUpper)-1]),
			Middle: models.NewDecimal(bbMiddle[len(bbMiddle)-1]),
			Lower:  models.NewDecimal(bbLower[len(bbLower)-1]),
		},
	}, nil
}

// CalculateSMA calculates Simple Moving Average over candle closes
func (c *TechnicalCalculator) CalculateSMA(candles []models.Candle, period int) (float64, error) {
	if len(candles) < period {
		return 0, fmt.Errorf("insufficient candles for SMA calculation")
	}

	closes := make([]float64, len(candles))
	for i, candle := range candles {
		closes[i] = models.ToFloat64(candle.Close)
	}

	sma := indicator.Sma(period, closes)
	if len(sma) == 0 {
		return 0, fmt.Errorf("SMA calculation failed")
	}
	return sma[len(sma)-1], nil
}

// CalculateEMA calculates Exponential Moving Average over candle closes
func (c *TechnicalCalculator) CalculateEMA(candles []models.Candle, period int) (float64, error) {
	if len(candles) < period {
		return 0, fmt.Errorf("insufficient candles for EMA calculation")
	}

	closes := make([]float64, len(candles))
	for i, candle := range candles {
		closes[i] = models.ToFloat64(candle.Close)
	}

	ema := indicator.Ema(period, closes)
	if len(ema) == 0 {
		return 0, fmt.Errorf("EMA calculation failed")
	}
	return ema[len(ema)-1], nil
}
