// Package openai provides a core.Agent implementation backed by the OpenAI
// Chat Completions API. It adapts AgentChat's flat message history into the
// SDK's message format and back, honoring the generation options the
// orchestration layer passes through (stop sequences, temperature, token
// limits, function contracts).
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/agentchat/core"
)

// Options configure the OpenAI assistant agent. Fields mirror a subset of
// Chat Completion parameters intentionally kept minimal; extend via
// functional options without breaking callers.
type Options struct {
	Model               string
	SystemMessage       string
	Temperature         float64
	MaxCompletionTokens int64
}

// Assistant wraps the OpenAI Chat Completions API behind core.Agent.
type Assistant struct {
	name   string
	client *openai.Client
	opts   Options
}

// NewAssistant creates an assistant using a default client configured from
// the environment.
func NewAssistant(name string, optFns ...func(o *Options)) *Assistant {
	client := openai.NewClient()
	return NewAssistantFromClient(name, &client, optFns...)
}

// NewAssistantFromClient creates an assistant from an existing client.
func NewAssistantFromClient(name string, client *openai.Client, optFns ...func(o *Options)) *Assistant {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Assistant{name: name, client: client, opts: opts}
}

// Name implements core.Agent.
func (a *Assistant) Name() string { return a.name }

// GenerateReply implements core.Agent with a non-streaming completion call.
// A tool-call choice maps to a message carrying a FunctionCall so the
// function-call middleware can dispatch it.
func (a *Assistant) GenerateReply(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions) (core.Message, error) {
	params := a.buildParams(messages, opts)

	resp, err := a.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return core.Message{}, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.Message{}, fmt.Errorf("openai api returned no choices")
	}

	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) > 0 {
		tc := choice.Message.ToolCalls[0]
		return core.NewFunctionCallMessage(a.name, core.FunctionCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		}), nil
	}
	return core.NewMessage(core.RoleAssistant, choice.Message.Content, a.name), nil
}

// buildParams assembles the completion request from history plus options.
func (a *Assistant) buildParams(messages []core.Message, opts *core.GenerateReplyOptions) openai.ChatCompletionNewParams {
	var chatMessages []openai.ChatCompletionMessageParamUnion
	if a.opts.SystemMessage != "" {
		chatMessages = append(chatMessages, openai.SystemMessage(a.opts.SystemMessage))
	}
	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			chatMessages = append(chatMessages, openai.SystemMessage(m.Content))
		case core.RoleAssistant:
			if m.FunctionCall != nil {
				chatMessages = append(chatMessages, openai.ChatCompletionMessageParamUnion{
					OfAssistant: &openai.ChatCompletionAssistantMessageParam{
						ToolCalls: []openai.ChatCompletionMessageToolCallParam{{
							ID:   m.FunctionCall.ID,
							Type: "function",
							Function: openai.ChatCompletionMessageToolCallFunctionParam{
								Name:      m.FunctionCall.Name,
								Arguments: m.FunctionCall.Arguments,
							},
						}},
					},
				})
				continue
			}
			chatMessages = append(chatMessages, openai.AssistantMessage(m.Content))
		case core.RoleFunction:
			if m.FunctionResponse != nil && m.FunctionResponse.ID != "" {
				chatMessages = append(chatMessages, openai.ToolMessage(m.FunctionResponse.Result, m.FunctionResponse.ID))
				continue
			}
			chatMessages = append(chatMessages, openai.UserMessage(m.Content))
		default:
			chatMessages = append(chatMessages, openai.UserMessage(m.Content))
		}
	}

	temperature := a.opts.Temperature
	maxTokens := a.opts.MaxCompletionTokens
	params := openai.ChatCompletionNewParams{
		Messages: chatMessages,
		Model:    a.opts.Model,
	}

	if opts != nil {
		if opts.Temperature != nil {
			temperature = *opts.Temperature
		}
		if opts.MaxTokens > 0 {
			maxTokens = opts.MaxTokens
		}
		if len(opts.StopSequence) > 0 {
			params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: opts.StopSequence}
		}
		if len(opts.Functions) > 0 {
			tools := make([]openai.ChatCompletionToolParam, len(opts.Functions))
			for i, contract := range opts.Functions {
				tools[i] = openai.ChatCompletionToolParam{
					Type: "function",
					Function: openai.FunctionDefinitionParam{
						Name:        contract.Name,
						Description: openai.String(contract.Description),
						Parameters:  contract.Parameters,
					},
				}
			}
			params.Tools = tools
		}
	}

	params.Temperature = openai.Float(temperature)
	params.MaxCompletionTokens = openai.Int(maxTokens)
	return params
}
