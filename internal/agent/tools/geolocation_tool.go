package tools

import (
	"agentplugins/internal/logger"
	"agentplugins/internal/plugins/geocoding"
	"context"
	"encoding/json"
	"fmt"
)

// LocationInput defines the input parameters for the get_location tool
type LocationInput struct {
	Location string `json:"location" jsonschema_description:"Name of a city or place, e.g. Seattle or Paris, France."`
}

// LocationInputSchema is the JSON schema for the get_location tool
var LocationInputSchema = GenerateSchema[LocationInput]()

// GeoLocationTools returns the GeoLocation tools backed by client
func GeoLocationTools(client *geocoding.Client) []ToolDefinition {
	return []ToolDefinition{
		{
			Plugin:      geocoding.PluginName,
			Name:        geocoding.FunctionGetLocation,
			Description: "Look up the latitude and longitude of a place by name. Returns JSON with name, country, latitude, longitude and timezone.",
			InputSchema: LocationInputSchema,
			Function: func(ctx context.Context, input json.RawMessage) (string, error) {
				locationInput := LocationInput{}
				if err := decodeInput(input, &locationInput); err != nil {
					return errorText(err), nil
				}

				location, err := client.Lookup(ctx, locationInput.Location)
				if err != nil {
					logger.Get().Warn().Err(err).Str("location", locationInput.Location).Msg("Geocoding failed")
					return errorText(fmt.Errorf("could not look up location: %w", err)), nil
				}

				out, err := json.MarshalIndent(location, "", "  ")
				if err != nil {
					return errorText(fmt.Errorf("failed to format location: %w", err)), nil
				}
				return string(out), nil
			},
		},
	}
}
