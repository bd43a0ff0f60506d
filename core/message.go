package core

import (
	"github.com/google/uuid"
)

// Role identifies the conversational role of a message author.
type Role string

const (
	// RoleSystem marks instructions injected by the host or orchestration layer.
	RoleSystem Role = "system"
	// RoleUser marks content originating from a human or external caller.
	RoleUser Role = "user"
	// RoleAssistant marks content produced by an agent.
	RoleAssistant Role = "assistant"
	// RoleFunction marks the result of a dispatched function call.
	RoleFunction Role = "function"
)

// FunctionCall describes a tool/function invocation request carried by a message.
type FunctionCall struct {
	ID        string `json:"id,omitempty"`        // Optional stable id correlating call and result
	Name      string `json:"name"`                // Function name
	Arguments string `json:"arguments,omitempty"` // Serialized argument payload (JSON)
}

// FunctionResponse describes the outcome of a dispatched function call.
type FunctionResponse struct {
	ID     string `json:"id,omitempty"` // Matches originating FunctionCall ID
	Name   string `json:"name"`         // Function name
	Result string `json:"result"`       // Serialized result payload
}

// Message is the immutable unit of conversation exchanged between agents.
// After emission it should be treated as read-only; orchestration code copies
// histories rather than mutating them. Content may be empty for pure
// function-call messages. From carries the originating agent name and may be
// empty for system messages.
type Message struct {
	ID               string            `json:"id"`
	Role             Role              `json:"role"`
	Content          string            `json:"content,omitempty"`
	From             string            `json:"from,omitempty"`
	FunctionCall     *FunctionCall     `json:"function_call,omitempty"`
	FunctionResponse *FunctionResponse `json:"function_response,omitempty"`
}

// NewID generates a unique identifier for messages and function calls.
func NewID() string { return uuid.NewString() }

// NewMessage constructs a plain content message with a generated ID.
func NewMessage(role Role, content, from string) Message {
	return Message{ID: NewID(), Role: role, Content: content, From: from}
}

// NewSystemMessage constructs a system message without attribution.
func NewSystemMessage(content string) Message {
	return Message{ID: NewID(), Role: RoleSystem, Content: content}
}

// NewFunctionCallMessage constructs an assistant message requesting a
// function invocation. The call receives a generated ID when none is set.
func NewFunctionCallMessage(from string, call FunctionCall) Message {
	if call.ID == "" {
		call.ID = NewID()
	}
	return Message{ID: NewID(), Role: RoleAssistant, From: from, FunctionCall: &call}
}

// NewFunctionResultMessage constructs a function-role message carrying the
// result of a dispatched call. Content mirrors the result so downstream
// agents can consume it as ordinary text.
func NewFunctionResultMessage(from string, resp FunctionResponse) Message {
	return Message{
		ID:               NewID(),
		Role:             RoleFunction,
		Content:          resp.Result,
		From:             from,
		FunctionResponse: &resp,
	}
}

// IsFunctionCall reports whether the message requests a function invocation.
func (m Message) IsFunctionCall() bool { return m.FunctionCall != nil }

// CloneHistory returns a shallow copy of a message history. Messages are
// value types, so the copy is safe to append to without affecting the source.
func CloneHistory(messages []Message) []Message {
	if messages == nil {
		return nil
	}
	cloned := make([]Message, len(messages))
	copy(cloned, messages)
	return cloned
}

// LastMessage returns the final message of a history, or false when empty.
func LastMessage(messages []Message) (Message, bool) {
	if len(messages) == 0 {
		return Message{}, false
	}
	return messages[len(messages)-1], true
}
