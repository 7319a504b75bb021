package weather

import (
	"agentplugins/internal/logger"
	"agentplugins/internal/plugins/geocoding"
	"agentplugins/internal/plugins/timeplugin"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Invoker calls a function of another plugin registered with the host and
// returns its single string result
type Invoker interface {
	Invoke(ctx context.Context, plugin, function string, args map[string]any) (string, error)
}

// ResolveDaySpec turns a day specification into a number of days after today.
// A plain integer is used as is. A weekday name resolves to its next
// occurrence strictly after today, so naming today's weekday yields 7.
func ResolveDaySpec(spec string, today time.Time) (int, error) {
	spec = strings.TrimSpace(spec)
	if n, err := strconv.Atoi(spec); err == nil {
		return n, nil
	}

	target, ok := parseWeekday(spec)
	if !ok {
		return 0, &ErrInvalidDaySpec{Spec: spec}
	}

	offset := (int(target) - int(today.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return offset, nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d, true
		}
	}
	return 0, false
}

// ForecastForLocation asks the host for today's date and the coordinates of
// location, then fetches a forecast that runs through the requested day.
// The three calls are made one after another.
func (p *Provider) ForecastForLocation(ctx context.Context, host Invoker, location, daySpec string) (*Forecast, error) {
	log := logger.Get()

	if strings.TrimSpace(daySpec) == "" {
		daySpec = "0"
	}

	today, err := currentDate(ctx, host)
	if err != nil {
		return nil, err
	}

	offset, err := ResolveDaySpec(daySpec, today)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("daySpec", daySpec).
		Str("today", today.Format(apiDateLayout)).
		Int("offset", offset).
		Msg("Resolved day specification")

	lat, lon, err := coordinates(ctx, host, location)
	if err != nil {
		return nil, err
	}

	return p.Forecast(ctx, ForecastRequest{
		Latitude:  lat,
		Longitude: lon,
		Days:      offset + 1,
	})
}

func currentDate(ctx context.Context, host Invoker) (time.Time, error) {
	raw, err := host.Invoke(ctx, timeplugin.PluginName, timeplugin.FunctionCurrentDate, map[string]any{})
	if err != nil {
		return time.Time{}, &ErrCoordination{
			Plugin:   timeplugin.PluginName,
			Function: timeplugin.FunctionCurrentDate,
			Reason:   "call failed",
			Err:      err,
		}
	}
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, &ErrCoordination{
			Plugin:   timeplugin.PluginName,
			Function: timeplugin.FunctionCurrentDate,
			Reason:   "returned no value",
		}
	}

	today, err := timeplugin.ParseDate(raw)
	if err != nil {
		return time.Time{}, &ErrCoordination{
			Plugin:   timeplugin.PluginName,
			Function: timeplugin.FunctionCurrentDate,
			Reason:   fmt.Sprintf("returned an unparseable date %q", raw),
			Err:      err,
		}
	}
	return today, nil
}

func coordinates(ctx context.Context, host Invoker, location string) (float64, float64, error) {
	raw, err := host.Invoke(ctx, geocoding.PluginName, geocoding.FunctionGetLocation, map[string]any{
		"location": location,
	})
	if err != nil {
		return 0, 0, &ErrCoordination{
			Plugin:   geocoding.PluginName,
			Function: geocoding.FunctionGetLocation,
			Reason:   "call failed",
			Err:      err,
		}
	}
	if strings.TrimSpace(raw) == "" {
		return 0, 0, &ErrCoordination{
			Plugin:   geocoding.PluginName,
			Function: geocoding.FunctionGetLocation,
			Reason:   fmt.Sprintf("returned no value for %q", location),
		}
	}

	var coords struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		return 0, 0, &ErrCoordination{
			Plugin:   geocoding.PluginName,
			Function: geocoding.FunctionGetLocation,
			Reason:   fmt.Sprintf("returned an unparseable location: %s", raw),
			Err:      err,
		}
	}
	if coords.Latitude == nil || coords.Longitude == nil {
		return 0, 0, &ErrCoordination{
			Plugin:   geocoding.PluginName,
			Function: geocoding.FunctionGetLocation,
			Reason:   fmt.Sprintf("returned no latitude/longitude: %s", raw),
		}
	}
	return *coords.Latitude, *coords.Longitude, nil
}
