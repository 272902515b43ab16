package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle represents a single OHLCV bar from a price repository
type Candle struct {
	Timestamp time.Time       `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
}

// TechnicalIndicators holds indicator values computed from candle data
type TechnicalIndicators struct {
	SMA            map[string]decimal.Decimal `json:"sma"`
	RSI            map[string]decimal.Decimal `json:"rsi"`
	ATR            decimal.Decimal            `json:"atr"`
	MACD           *MACDIndicator             `json:"macd,omitempty"`
	BollingerBands *BollingerBandsIndicator   `json:"bollinger_bands,omitempty"`
}

// MACDIndicator represents MACD values
type MACDIndicator struct {
	MACD      decimal.Decimal `json:"macd"`
	Signal    decimal.Decimal `json:"signal"`
	Histogram decimal.Decimal `json:"histogram"`
}

// BollingerBandsIndicator represents Bollinger Bands values
type BollingerBandsIndicator struct {
	Upper  decimal.Decimal `json:"upper"`
	Middle decimal.Decimal `json:"middle"`
	Lower  decimal.Decimal `json:"lower"`
}
