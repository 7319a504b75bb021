package agent

import (
	"agentplugins/internal/agent/tools"
	"context"
	"encoding/json"
)

// Runner defines the contract for agent implementations
type Runner interface {
	// Run starts the agent's conversation loop
	Run(ctx context.Context) error
}

// ToolExecutor lists and runs the tools offered to the model
type ToolExecutor interface {
	Definitions() []tools.ToolDefinition
	Execute(ctx context.Context, name string, input json.RawMessage) (string, error)
}

var (
	_ Runner       = (*Agent)(nil)
	_ ToolExecutor = (*tools.Registry)(nil)
)
