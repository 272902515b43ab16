package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/selivandex/macro-pipeline/pkg/timeseries"
)

const dateLayout = "2006-01-02"

// Client fetches economic series from a FRED-style observations API
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a new API client. The API key is required for
// requests; an empty key makes every call fail with ErrNotConfigured.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// ErrNotConfigured reports a missing API key
var ErrNotConfigured = fmt.Errorf("remote API key not configured")

// Configured reports whether the client can make requests
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// GetSeries fetches observations for a series id over a date range.
// Zero time bounds are omitted from the request. Missing observations
// (reported as ".") become NaN.
func (c *Client) GetSeries(ctx context.Context, seriesID string, from, to time.Time) (*timeseries.Series, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	params := url.Values{}
	params.Set("series_id", seriesID)
	params.Set("api_key", c.apiKey)
	params.Set("file_type", "json")
	if !from.IsZero() {
		params.Set("observation_start", from.Format(dateLayout))
	}
	if !to.IsZero() {
		params.Set("observation_end", to.Format(dateLayout))
	}

	endpoint := fmt.Sprintf("%s/series/observations?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result observationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Observations) == 0 {
		return nil, fmt.Errorf("no observations for series %s", seriesID)
	}

	times := make([]time.Time, 0, len(result.Observations))
	values := make([]float64, 0, len(result.Observations))

	for _, obs := range result.Observations {
		t, err := time.Parse(dateLayout, obs.Date)
		if err != nil {
			return nil, fmt.Errorf("series %s: bad observation date %q", seriesID, obs.Date)
		}
		times = append(times, t)
		values = append(values, parseObservation(obs.Value))
	}

	return timeseries.NewSeries(times, values)
}

func parseObservation(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "." {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
