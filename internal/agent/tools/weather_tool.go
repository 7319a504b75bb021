package tools

import (
	"agentplugins/internal/logger"
	"agentplugins/internal/plugins/weather"
	"context"
	"encoding/json"
	"fmt"
)

// ForecastInput defines the input parameters for the get_forecast tool
type ForecastInput struct {
	Latitude  float64 `json:"latitude" jsonschema_description:"Latitude of the location in decimal degrees."`
	Longitude float64 `json:"longitude" jsonschema_description:"Longitude of the location in decimal degrees."`
	Days      *int    `json:"days,omitempty" jsonschema_description:"Number of days to forecast, starting today. Default is 16, maximum is 16."`
}

// LocationForecastInput defines the input parameters for the get_forecast_for_location tool
type LocationForecastInput struct {
	Location string `json:"location" jsonschema_description:"Name of a city or place, e.g. Seattle."`
	Day      string `json:"day,omitempty" jsonschema_description:"Which day to forecast: a number of days from today (0 is today) or a weekday name such as Friday. Default is 0."`
}

// ForecastInputSchema is the JSON schema for the get_forecast tool
var ForecastInputSchema = GenerateSchema[ForecastInput]()

// LocationForecastInputSchema is the JSON schema for the get_forecast_for_location tool
var LocationForecastInputSchema = GenerateSchema[LocationForecastInput]()

// WeatherTools returns the Weather tools. host is used to reach the
// TimePlugin and GeoLocation tools.
func WeatherTools(provider *weather.Provider, host weather.Invoker) []ToolDefinition {
	return []ToolDefinition{
		{
			Plugin:      weather.PluginName,
			Name:        weather.FunctionForecast,
			Description: "Get the daily weather forecast for a latitude and longitude: high and low temperature (°F), precipitation (inches), chance of precipitation and conditions for each day.",
			InputSchema: ForecastInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				forecastInput := ForecastInput{}
				if err := decodeInput(input, &forecastInput); err != nil {
					return errorText(err), nil
				}

				days := weather.DefaultForecastDays
				if forecastInput.Days != nil {
					days = *forecastInput.Days
				}

				forecast, err := provider.Forecast(ctx, weather.ForecastRequest{
					Latitude:  forecastInput.Latitude,
					Longitude: forecastInput.Longitude,
					Days:      days,
				})
				return renderForecast(forecast, err, "Error fetching weather forecast")
			},
		},
		{
			Plugin:      weather.PluginName,
			Name:        weather.FunctionForecastForLocation,
			Description: "Get the weather forecast for a named place through a given day. The day can be a number of days from today or a weekday name; the forecast covers today through that day.",
			InputSchema: LocationForecastInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				locationInput := LocationForecastInput{}
				if err := decodeInput(input, &locationInput); err != nil {
					return errorText(err), nil
				}

				forecast, err := provider.ForecastForLocation(ctx, host, locationInput.Location, locationInput.Day)
				return renderForecast(forecast, err,
					fmt.Sprintf("Error getting forecast for '%s'", locationInput.Location))
			},
		},
	}
}

func renderForecast(forecast *weather.Forecast, err error, prefix string) (string, error) {
	if err != nil {
		logger.Get().Warn().Err(err).Msg(prefix)
		return fmt.Sprintf("%s: %v", prefix, err), nil
	}

	out, err := forecast.JSON()
	if err != nil {
		return fmt.Sprintf("%s: %v", prefix, err), nil
	}
	return out, nil
}
