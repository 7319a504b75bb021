// Package tools exposes the plugins to the agent host as named tools.
// Each tool belongs to a plugin and is registered as "<Plugin>-<function>",
// with a description and an input schema the model uses to decide when and
// how to call it.
package tools

import (
	"agentplugins/internal/logger"
	"agentplugins/internal/plugins/geocoding"
	"agentplugins/internal/plugins/timeplugin"
	"agentplugins/internal/plugins/weather"
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// ToolDefinition defines a tool that can be used by the agent.
type ToolDefinition struct {
	// Plugin groups related tools, e.g. "Weather"
	Plugin string `json:"plugin"`

	// Name is the function name inside the plugin
	Name string `json:"name"`

	// Description explains what the tool does and when to use it
	Description string `json:"description"`

	// InputSchema defines the expected parameters and their types
	InputSchema anthropic.ToolInputSchemaParam `json:"input_schema"`

	// Function runs the tool. Failures the model should see are returned as
	// text; the error is reserved for the tool not running at all.
	Function func(ctx context.Context, input json.RawMessage) (string, error)
}

// QualifiedName is the name the tool is advertised under
func (d ToolDefinition) QualifiedName() string {
	return d.Plugin + "-" + d.Name
}

// GenerateSchema creates a JSON schema for the given type
func GenerateSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	var v T

	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

// ErrToolNotFound indicates a requested tool does not exist
type ErrToolNotFound struct {
	ToolName string
}

func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool not found: %s", e.ToolName)
}

// Registry holds the tools offered to the host. Tools are registered at
// startup; after that the registry is only read.
type Registry struct {
	tools map[string]ToolDefinition
	order []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]ToolDefinition),
	}
}

// Register adds tools, rejecting a name that is already taken
func (r *Registry) Register(defs ...ToolDefinition) error {
	for _, def := range defs {
		name := def.QualifiedName()
		if _, exists := r.tools[name]; exists {
			return fmt.Errorf("tool already registered: %s", name)
		}
		if def.Function == nil {
			return fmt.Errorf("tool %s has no function", name)
		}
		r.tools[name] = def
		r.order = append(r.order, name)
	}
	return nil
}

// Definitions returns the registered tools in registration order
func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name])
	}
	return defs
}

// Lookup finds a tool by its qualified name
func (r *Registry) Lookup(name string) (ToolDefinition, bool) {
	def, ok := r.tools[name]
	return def, ok
}

// Execute runs a tool by qualified name with raw JSON input
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return "", &ErrToolNotFound{ToolName: name}
	}
	return def.Function(ctx, input)
}

var _ weather.Invoker = (*Registry)(nil)

// Invoke runs function of plugin with named arguments. It is how one plugin
// reaches another through the host.
func (r *Registry) Invoke(ctx context.Context, plugin, function string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	input, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("failed to encode arguments for %s-%s: %w", plugin, function, err)
	}

	logger.Get().Debug().
		Str("plugin", plugin).
		Str("function", function).
		RawJSON("args", input).
		Msg("Invoking plugin function")

	return r.Execute(ctx, plugin+"-"+function, input)
}

// Plugins carries the backends the tools call into
type Plugins struct {
	Clock    *timeplugin.Clock
	Geocoder *geocoding.Client
	Weather  *weather.Provider
}

// GetAllTools returns a registry holding every plugin's tools. The weather
// tools reach the time and geolocation tools through the registry itself.
func GetAllTools(p Plugins) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(TimePluginTools(p.Clock)...); err != nil {
		return nil, err
	}
	if err := r.Register(GeoLocationTools(p.Geocoder)...); err != nil {
		return nil, err
	}
	if err := r.Register(WeatherTools(p.Weather, r)...); err != nil {
		return nil, err
	}
	return r, nil
}

// decodeInput unmarshals tool input, treating an empty payload as {}
func decodeInput(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return fmt.Errorf("failed to parse tool input: %w", err)
	}
	return nil
}
