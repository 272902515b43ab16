package macro

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// BaseRegion is the spread baseline; every spread is base minus region.
const BaseRegion = "US"

// Regions covered by the default registry, baseline first
var Regions = []string{"US", "JP", "AU", "CA", "EU", "GB"}

// SeriesDef describes one raw input series. FredID is empty for series
// only available from local CSV files.
type SeriesDef struct {
	Name   string `toml:"name"`
	FredID string `toml:"fred_id"`
}

// Registry is the set of raw series the pipeline loads
type Registry struct {
	Series []SeriesDef `toml:"series"`
}

// Names returns the series names in registry order
func (r *Registry) Names() []string {
	out := make([]string, len(r.Series))
	for i, def := range r.Series {
		out[i] = def.Name
	}
	return out
}

// Remote returns the series that can be fetched from the remote API
func (r *Registry) Remote() []SeriesDef {
	var out []SeriesDef
	for _, def := range r.Series {
		if def.FredID != "" {
			out = append(out, def)
		}
	}
	return out
}

// DefaultRegistry returns the built-in series set: 2Y and 10Y yields,
// CPI index per region, plus the VIX. Non-US 2Y yields have no remote
// id and come from CSV files only.
func DefaultRegistry() *Registry {
	return &Registry{Series: []SeriesDef{
		{Name: "VIX", FredID: "VIXCLS"},

		{Name: "US_2Y", FredID: "DGS2"},
		{Name: "US_10Y", FredID: "DGS10"},
		{Name: "US_CPI", FredID: "CPIAUCSL"},

		{Name: "JP_2Y"},
		{Name: "JP_10Y", FredID: "IRLTLT01JPM156N"},
		{Name: "JP_CPI", FredID: "JPNCPIALLMINMEI"},

		{Name: "AU_2Y"},
		{Name: "AU_10Y", FredID: "IRLTLT01AUM156N"},
		{Name: "AU_CPI", FredID: "AUSCPIALLQINMEI"},

		{Name: "CA_2Y"},
		{Name: "CA_10Y", FredID: "IRLTLT01CAM156N"},
		{Name: "CA_CPI", FredID: "CANCPIALLMINMEI"},

		{Name: "EU_2Y"},
		{Name: "EU_10Y", FredID: "IRLTLT01EZM156N"},
		{Name: "EU_CPI", FredID: "CP0000EZ19M086NEST"},

		{Name: "GB_2Y"},
		{Name: "GB_10Y", FredID: "IRLTLT01GBM156N"},
		{Name: "GB_CPI", FredID: "GBRCPIALLMINMEI"},
	}}
}

// LoadRegistry reads a registry override from a TOML file
func LoadRegistry(path string) (*Registry, error) {
	var reg Registry
	if _, err := toml.DecodeFile(path, &reg); err != nil {
		return nil, fmt.Errorf("failed to load series registry: %w", err)
	}
	if len(reg.Series) == 0 {
		return nil, fmt.Errorf("series registry %s defines no series", path)
	}
	return &reg, nil
}
