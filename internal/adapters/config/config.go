package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Data     DataConfig     `envconfig:"DATA"`
	Fred     FredConfig     `envconfig:"FRED"`
	Pipeline PipelineConfig `envconfig:"PIPELINE"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// DataConfig represents input/output locations
type DataConfig struct {
	MacroDir     string `envconfig:"MACRO_DATA_DIR" default:"data/macro"`
	OutputDir    string `envconfig:"OUTPUT_DIR" default:"data/macro"`
	PriceFile    string `envconfig:"PRICE_FILE" required:"false"`
	RegistryFile string `envconfig:"SERIES_REGISTRY_FILE" required:"false"`
}

// FredConfig represents the remote economic-data API configuration
type FredConfig struct {
	APIKey  string        `envconfig:"FRED_API_KEY" required:"false"`
	BaseURL string        `envconfig:"FRED_BASE_URL" default:"https://api.stlouisfed.org/fred"`
	Timeout time.Duration `envconfig:"FRED_TIMEOUT" default:"10s"`
}

// PipelineConfig represents indicator computation parameters
type PipelineConfig struct {
	NaturalRateWindow int     `envconfig:"NATURAL_RATE_WINDOW" default:"120"`
	CorrelationWindow int     `envconfig:"CORRELATION_WINDOW" default:"24"`
	Psi               float64 `envconfig:"PSI" default:"1.5"`
	LowerBound        float64 `envconfig:"LOWER_BOUND" default:"0.0"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" required:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Data.MacroDir == "" {
		return fmt.Errorf("macro data directory is required")
	}

	if c.Pipeline.NaturalRateWindow < 4 {
		return fmt.Errorf("natural_rate_window must be at least 4")
	}
	if c.Pipeline.CorrelationWindow < 2 {
		return fmt.Errorf("correlation_window must be at least 2")
	}

	// The regime threshold (psi-1)/psi only lands in (0,1) for psi > 1
	if c.Pipeline.Psi <= 1 {
		return fmt.Errorf("psi must be greater than 1")
	}

	return nil
}

// RegimeThreshold returns the lower-bound regime cutoff (psi-1)/psi
func (c *PipelineConfig) RegimeThreshold() float64 {
	return (c.Psi - 1) / c.Psi
}
