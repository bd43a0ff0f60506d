// Package anthropic provides a core.Agent implementation backed by the
// Anthropic Messages API, honoring the generation options the orchestration
// layer passes through (stop sequences, temperature, token limits, function
// contracts).
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/hupe1980/agentchat/core"
)

// Options configure the Anthropic assistant agent (model id, temperature,
// max tokens, system message, API key). Extend via functional options to
// preserve stability.
type Options struct {
	Model         anthropic.Model
	SystemMessage string
	Temperature   float64
	MaxTokens     int64
	APIKey        string
}

// Assistant wraps the Anthropic Messages API behind core.Agent.
type Assistant struct {
	name   string
	client *anthropic.Client
	opts   Options
}

// NewAssistant creates an assistant using the official client.
func NewAssistant(name string, optFns ...func(o *Options)) *Assistant {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := anthropic.NewClient(clientOpts...)

	return &Assistant{name: name, client: &client, opts: opts}
}

// NewAssistantFromClient creates an assistant from an existing client.
func NewAssistantFromClient(name string, client *anthropic.Client, optFns ...func(o *Options)) *Assistant {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Assistant{name: name, client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Name implements core.Agent.
func (a *Assistant) Name() string { return a.name }

// GenerateReply implements core.Agent with a non-streaming Messages call.
// A tool_use block maps to a message carrying a FunctionCall so the
// function-call middleware can dispatch it.
func (a *Assistant) GenerateReply(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions) (core.Message, error) {
	params := a.buildParams(messages, opts)

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return core.Message{}, fmt.Errorf("anthropic api error: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			text += block.AsText().Text
		case "tool_use":
			toolBlock := block.AsToolUse()
			args := ""
			if toolBlock.Input != nil {
				if raw, err := json.Marshal(toolBlock.Input); err == nil {
					args = string(raw)
				}
			}
			return core.NewFunctionCallMessage(a.name, core.FunctionCall{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: args,
			}), nil
		}
	}
	return core.NewMessage(core.RoleAssistant, text, a.name), nil
}

// buildParams assembles the Messages request from history plus options.
// System-role history entries join the agent's own system message; Anthropic
// carries them outside the message list.
func (a *Assistant) buildParams(messages []core.Message, opts *core.GenerateReplyOptions) anthropic.MessageNewParams {
	var systemBlocks []anthropic.TextBlockParam
	if a.opts.SystemMessage != "" {
		systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: a.opts.SystemMessage})
	}

	var chatMessages []anthropic.MessageParam
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: m.Content})
		case core.RoleAssistant:
			if m.FunctionCall != nil {
				var input any
				if m.FunctionCall.Arguments != "" {
					if err := json.Unmarshal([]byte(m.FunctionCall.Arguments), &input); err != nil {
						input = m.FunctionCall.Arguments
					}
				}
				chatMessages = append(chatMessages, anthropic.NewAssistantMessage(
					anthropic.NewToolUseBlock(m.FunctionCall.ID, input, m.FunctionCall.Name),
				))
				continue
			}
			if m.Content != "" {
				chatMessages = append(chatMessages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
			}
		case core.RoleFunction:
			if m.FunctionResponse != nil && m.FunctionResponse.ID != "" {
				chatMessages = append(chatMessages, anthropic.NewUserMessage(
					anthropic.NewToolResultBlock(m.FunctionResponse.ID, m.FunctionResponse.Result, false),
				))
				continue
			}
			chatMessages = append(chatMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		default:
			if m.Content != "" {
				chatMessages = append(chatMessages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
			}
		}
	}

	temperature := a.opts.Temperature
	maxTokens := a.opts.MaxTokens
	params := anthropic.MessageNewParams{
		Model:    a.opts.Model,
		Messages: chatMessages,
	}
	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}

	if opts != nil {
		if opts.Temperature != nil {
			temperature = *opts.Temperature
		}
		if opts.MaxTokens > 0 {
			maxTokens = opts.MaxTokens
		}
		if len(opts.StopSequence) > 0 {
			params.StopSequences = opts.StopSequence
		}
		if len(opts.Functions) > 0 {
			params.Tools = buildTools(opts.Functions)
		}
	}

	params.Temperature = anthropic.Float(temperature)
	params.MaxTokens = maxTokens
	return params
}

// buildTools converts function contracts to the Anthropic tool format.
func buildTools(contracts []core.FunctionContract) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, len(contracts))
	for i, contract := range contracts {
		inputSchema := anthropic.ToolInputSchemaParam{Type: constant.Object("object")}
		if contract.Parameters != nil {
			if properties, ok := contract.Parameters["properties"]; ok {
				inputSchema.Properties = properties
			}
			switch required := contract.Parameters["required"].(type) {
			case []string:
				inputSchema.Required = required
			case []any:
				for _, r := range required {
					if s, ok := r.(string); ok {
						inputSchema.Required = append(inputSchema.Required, s)
					}
				}
			}
		}
		tools[i] = anthropic.ToolUnionParamOfTool(inputSchema, contract.Name)
	}
	return tools
}
