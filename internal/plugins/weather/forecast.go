// Package weather implements the Weather plugin: a daily forecast lookup
// against the Open-Meteo forecast API, and a location-aware variant that
// resolves a place name and a day specification through sibling plugins.
package weather

import (
	"agentplugins/internal/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// PluginName is the name the plugin is registered under
	PluginName = "Weather"

	FunctionForecast            = "get_forecast"
	FunctionForecastForLocation = "get_forecast_for_location"

	// DefaultBaseURL is the Open-Meteo forecast endpoint
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	// MaxForecastDays is the longest horizon the forecast API serves
	MaxForecastDays = 16

	// DefaultForecastDays is used when the caller does not ask for a horizon
	DefaultForecastDays = MaxForecastDays

	dailyFields   = "temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,weather_code"
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m"

	apiDateLayout = "2006-01-02"
	dayLabel      = "Monday, January 2"
)

// ForecastRequest describes a forecast lookup
type ForecastRequest struct {
	Latitude  float64
	Longitude float64
	Days      int
}

// DailyForecast is one day of a forecast
type DailyForecast struct {
	Date                string   `json:"date"`
	Day                 string   `json:"day"`
	HighTempF           *float64 `json:"high_temp_f"`
	LowTempF            *float64 `json:"low_temp_f"`
	PrecipitationInches *float64 `json:"precipitation_inches"`
	PrecipitationChance *float64 `json:"precipitation_chance"`
	Conditions          string   `json:"conditions"`
}

// Forecast is the result handed back to the host
type Forecast struct {
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	ForecastDays int             `json:"forecast_days"`
	Forecast     []DailyForecast `json:"forecast"`
}

// JSON renders the forecast as indented JSON
func (f *Forecast) JSON() (string, error) {
	out, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format forecast: %w", err)
	}
	return string(out), nil
}

// forecastResponse is the subset of the Open-Meteo response we read
type forecastResponse struct {
	Daily *struct {
		Time                        []string   `json:"time"`
		TemperatureMax              []*float64 `json:"temperature_2m_max"`
		TemperatureMin              []*float64 `json:"temperature_2m_min"`
		PrecipitationSum            []*float64 `json:"precipitation_sum"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		WeatherCode                 []*int     `json:"weather_code"`
	} `json:"daily"`
}

// Provider fetches forecasts from the Open-Meteo API
type Provider struct {
	baseURL    string
	httpClient *http.Client
}

// NewProvider creates a Provider. An empty baseURL selects DefaultBaseURL and
// a nil client selects http.DefaultClient.
func NewProvider(baseURL string, httpClient *http.Client) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// ClampDays caps a requested horizon at MaxForecastDays. Non-positive values
// are passed through untouched and left for the API to judge.
func ClampDays(days int) int {
	if days > MaxForecastDays {
		return MaxForecastDays
	}
	return days
}

// Forecast issues a single request for a daily forecast
func (p *Provider) Forecast(ctx context.Context, req ForecastRequest) (*Forecast, error) {
	log := logger.Get()
	days := ClampDays(req.Days)

	params := url.Values{}
	params.Add("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	params.Add("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	params.Add("daily", dailyFields)
	params.Add("current", currentFields)
	params.Add("temperature_unit", "fahrenheit")
	params.Add("wind_speed_unit", "mph")
	params.Add("precipitation_unit", "inch")
	params.Add("forecast_days", strconv.Itoa(days))
	params.Add("timezone", "auto")

	log.Debug().
		Float64("latitude", req.Latitude).
		Float64("longitude", req.Longitude).
		Int("days", days).
		Msg("Requesting forecast")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &ErrUpstreamHTTP{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, &ErrUpstreamHTTP{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ErrUpstreamHTTP{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Int("status", resp.StatusCode).Msg("Forecast API returned an error status")
		return nil, &ErrUpstreamHTTP{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed forecastResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ErrUpstreamParse{Err: err}
	}

	entries, err := buildDailyForecasts(parsed)
	if err != nil {
		return nil, &ErrUpstreamParse{Err: err}
	}

	return &Forecast{
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ForecastDays: len(entries),
		Forecast:     entries,
	}, nil
}

// buildDailyForecasts zips the parallel daily arrays into entries, keeping
// the API's day order
func buildDailyForecasts(resp forecastResponse) ([]DailyForecast, error) {
	daily := resp.Daily
	if daily == nil {
		return nil, errors.New("response has no daily forecast")
	}
	n := len(daily.Time)
	for name, l := range map[string]int{
		"temperature_2m_max":            len(daily.TemperatureMax),
		"temperature_2m_min":            len(daily.TemperatureMin),
		"precipitation_sum":             len(daily.PrecipitationSum),
		"precipitation_probability_max": len(daily.PrecipitationProbabilityMax),
		"weather_code":                  len(daily.WeatherCode),
	} {
		if l != n {
			return nil, fmt.Errorf("daily.%s has %d entries, daily.time has %d", name, l, n)
		}
	}

	entries := make([]DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse(apiDateLayout, daily.Time[i])
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", daily.Time[i], err)
		}

		conditions := UnknownCondition
		if code := daily.WeatherCode[i]; code != nil {
			conditions = DescribeCode(*code)
		}

		entries = append(entries, DailyForecast{
			Date:                date.Format(apiDateLayout),
			Day:                 date.Format(dayLabel),
			HighTempF:           daily.TemperatureMax[i],
			LowTempF:            daily.TemperatureMin[i],
			PrecipitationInches: daily.PrecipitationSum[i],
			PrecipitationChance: daily.PrecipitationProbabilityMax[i],
			Conditions:          conditions,
		})
	}
	return entries, nil
}
