package tools

import (
	"agentplugins/internal/plugins/timeplugin"
	"context"
	"encoding/json"
)

// DateInput defines the input of the date part tools
type DateInput struct {
	Date string `json:"date,omitempty" jsonschema_description:"Optional date, e.g. 2023-05-15, 05/15/2023 or May 15, 2023. Defaults to today."`
}

// CurrentTimeInput defines the input of the current time tools, which take no parameters
type CurrentTimeInput struct{}

// DateInputSchema is the JSON schema for the date part tools
var DateInputSchema = GenerateSchema[DateInput]()

// CurrentTimeInputSchema is the JSON schema for the current time tools
var CurrentTimeInputSchema = GenerateSchema[CurrentTimeInput]()

// TimePluginTools returns the TimePlugin tools backed by clock
func TimePluginTools(clock *timeplugin.Clock) []ToolDefinition {
	currentTimestamp := func(ctx context.Context, input json.RawMessage) (string, error) {
		return clock.CurrentTimestamp(), nil
	}

	return []ToolDefinition{
		{
			Plugin:      timeplugin.PluginName,
			Name:        timeplugin.FunctionCurrentTime,
			Description: "Get the current local date and time in the format YYYY-MM-DD HH:MM:SS.",
			InputSchema: CurrentTimeInputSchema,
			Function:    currentTimestamp,
		},
		{
			Plugin:      timeplugin.PluginName,
			Name:        timeplugin.FunctionCurrentDate,
			Description: "Get the current local date and time in the format YYYY-MM-DD HH:MM:SS. Use this to find out what today is.",
			InputSchema: CurrentTimeInputSchema,
			Function:    currentTimestamp,
		},
		{
			Plugin:      timeplugin.PluginName,
			Name:        timeplugin.FunctionYear,
			Description: "Get the year of a date, or the current year if no date is given.",
			InputSchema: DateInputSchema,
			Function:    datePart(clock.Year),
		},
		{
			Plugin:      timeplugin.PluginName,
			Name:        timeplugin.FunctionMonth,
			Description: "Get the full month name (e.g. May) of a date, or the current month if no date is given.",
			InputSchema: DateInputSchema,
			Function:    datePart(clock.MonthName),
		},
		{
			Plugin:      timeplugin.PluginName,
			Name:        timeplugin.FunctionDayOfWeek,
			Description: "Get the full weekday name (e.g. Thursday) of a date, or today's weekday if no date is given.",
			InputSchema: DateInputSchema,
			Function:    datePart(clock.DayOfWeekName),
		},
	}
}

// datePart adapts a Clock accessor into a tool function that reports parse
// failures as text
func datePart(part func(dateStr string) (string, error)) func(ctx context.Context, input json.RawMessage) (string, error) {
	return func(ctx context.Context, input json.RawMessage) (string, error) {
		dateInput := DateInput{}
		if err := decodeInput(input, &dateInput); err != nil {
			return errorText(err), nil
		}

		result, err := part(dateInput.Date)
		if err != nil {
			return errorText(err), nil
		}
		return result, nil
	}
}

func errorText(err error) string {
	return "Error: " + err.Error()
}
