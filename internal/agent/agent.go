package agent

import (
	"agentplugins/internal/logger"
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// DefaultMaxConsecutiveToolUses bounds tool calls between two user messages
const DefaultMaxConsecutiveToolUses = 15

// Agent is a console chat with Claude that can call the registered plugins
type Agent struct {
	client                 *anthropic.Client
	getUserMessage         func() (string, bool)
	registry               ToolExecutor
	model                  string
	maxTokens              int64
	maxConsecutiveToolUses int
}

// Config holds configuration options for creating a new Agent
type Config struct {
	Client                 *anthropic.Client
	GetUserMessage         func() (string, bool)
	Registry               ToolExecutor
	Model                  string
	MaxTokens              int64
	MaxConsecutiveToolUses int // Optional, DefaultMaxConsecutiveToolUses if zero
}

// New creates a new Agent with the provided configuration
func New(config Config) *Agent {
	maxToolUses := config.MaxConsecutiveToolUses
	if maxToolUses <= 0 {
		maxToolUses = DefaultMaxConsecutiveToolUses
	}

	logger.Get().Debug().
		Str("model", config.Model).
		Int64("maxTokens", config.MaxTokens).
		Int("numTools", len(config.Registry.Definitions())).
		Int("maxConsecutiveToolUses", maxToolUses).
		Msg("Creating new agent")

	return &Agent{
		client:                 config.Client,
		getUserMessage:         config.GetUserMessage,
		registry:               config.Registry,
		model:                  config.Model,
		maxTokens:              config.MaxTokens,
		maxConsecutiveToolUses: maxToolUses,
	}
}

// Run starts the agent's conversation loop
func (a *Agent) Run(ctx context.Context) error {
	conversation := []anthropic.MessageParam{}
	logger.Get().Info().Msg("Starting chat with Claude (use 'ctrl-c' to quit)")

	consecutiveToolUses := 0
	readUserInput := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if readUserInput {
			consecutiveToolUses = 0
			if !a.readUserInputToConversation(&conversation) {
				break
			}
		}

		message, err := a.generateResponse(ctx, conversation)
		if err != nil {
			return err
		}

		conversation = append(conversation, message.ToParam())

		toolResults, used := a.processToolUsages(ctx, message)
		if used == 0 {
			readUserInput = true
			continue
		}

		consecutiveToolUses += used
		if consecutiveToolUses > a.maxConsecutiveToolUses {
			err := &ErrLoopProtection{
				Limit:   "consecutive tool uses",
				Current: consecutiveToolUses,
				Max:     a.maxConsecutiveToolUses,
			}
			logger.Get().Error().Err(err).Msg("Stopping tool use until the next user message")
			// Answer the pending tool calls so the conversation stays valid
			conversation = append(conversation, anthropic.NewUserMessage(toolResults...))
			readUserInput = true
			continue
		}

		conversation = append(conversation, anthropic.NewUserMessage(toolResults...))
		readUserInput = false
	}

	return nil
}

// readUserInputToConversation prompts for and adds user input to the conversation
// Returns false if input reading fails
func (a *Agent) readUserInputToConversation(conversation *[]anthropic.MessageParam) bool {
	fmt.Print("\u001b[94mYou\u001b[0m: ") // Keep this as fmt.Print for better UX
	userInput, ok := a.getUserMessage()
	if !ok {
		return false
	}

	userMessage := anthropic.NewUserMessage(anthropic.NewTextBlock(userInput))
	*conversation = append(*conversation, userMessage)
	return true
}

// processToolUsages prints text blocks and runs every tool use in the message.
// It returns the tool results and how many tools were used.
func (a *Agent) processToolUsages(ctx context.Context, message *anthropic.Message) ([]anthropic.ContentBlockParamUnion, int) {
	toolResults := []anthropic.ContentBlockParamUnion{}

	for _, content := range message.Content {
		switch content.Type {
		case "text":
			fmt.Printf("\u001b[95mClaude\u001b[0m: %s\n", content.Text)
		case "tool_use":
			toolResults = append(toolResults, a.executeTool(ctx, content.ID, content.Name, content.Input))
		}
	}

	return toolResults, len(toolResults)
}

// executeTool runs the specified tool and returns its result
func (a *Agent) executeTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	log := logger.Get()
	log.Info().
		Str("tool", name).
		RawJSON("input", input).
		Msg("Executing tool")

	response, err := a.registry.Execute(ctx, name, input)
	if err != nil {
		err = &ErrToolExecution{ToolName: name, Err: err}
		log.Error().Err(err).Msg("Tool failed")
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}

	return anthropic.NewToolResultBlock(id, response, false)
}

// generateResponse sends the conversation to Claude and gets a response
func (a *Agent) generateResponse(ctx context.Context, conversation []anthropic.MessageParam) (*anthropic.Message, error) {
	return a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		Messages:  conversation,
		Tools:     a.prepareToolDefinitions(),
	})
}

// prepareToolDefinitions converts registered tools to Anthropic format
func (a *Agent) prepareToolDefinitions() []anthropic.ToolUnionParam {
	defs := a.registry.Definitions()
	anthropicTools := make([]anthropic.ToolUnionParam, len(defs))

	for i, tool := range defs {
		anthropicTools[i] = anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.QualifiedName(),
				Description: anthropic.String(tool.Description),
				InputSchema: tool.InputSchema,
			},
		}
	}

	return anthropicTools
}
