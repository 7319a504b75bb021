// Package geocoding implements the GeoLocation plugin, which turns a place
// name into coordinates using the Open-Meteo geocoding API.
package geocoding

import (
	"agentplugins/internal/logger"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the Open-Meteo geocoding search endpoint
	DefaultBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

	// PluginName is the name the plugin is registered under
	PluginName = "GeoLocation"

	FunctionGetLocation = "get_location"
)

// Location is the best match for a place name
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country,omitempty"`
	Admin1    string  `json:"admin1,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// ErrNoMatch indicates the geocoding API knows no place by that name
type ErrNoMatch struct {
	Query string
}

func (e *ErrNoMatch) Error() string {
	return fmt.Sprintf("no location found for '%s'", e.Query)
}

// Client queries the geocoding API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. An empty baseURL selects DefaultBaseURL and a
// nil client selects http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Lookup returns the top match for a free-text location
func (c *Client) Lookup(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}

	params := url.Values{}
	params.Add("name", searchName(query))
	params.Add("count", "1")
	params.Add("language", "en")
	params.Add("format", "json")

	logger.Get().Debug().Str("query", query).Msg("Geocoding location")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Results []Location `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, &ErrNoMatch{Query: query}
	}
	return &parsed.Results[0], nil
}

// searchName strips qualifiers after the first comma ("Seattle, WA"), which
// the search endpoint does not match on
func searchName(query string) string {
	if i := strings.Index(query, ","); i > 0 {
		return strings.TrimSpace(query[:i])
	}
	return query
}
