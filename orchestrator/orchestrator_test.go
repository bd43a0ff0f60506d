package orchestrator

import (
	"context"

	"github.com/hupe1980/agentchat/core"
)

// mockAgent is a scripted core.Agent recording every GenerateReply call so
// tests can assert on the prompt and options an orchestrator hands out.
type mockAgent struct {
	name    string
	reply   string
	err     error
	calls   int
	gotMsgs []core.Message
	gotOpts *core.GenerateReplyOptions
}

func newMockAgent(name string) *mockAgent {
	return &mockAgent{name: name}
}

func (m *mockAgent) Name() string { return m.name }

func (m *mockAgent) GenerateReply(_ context.Context, messages []core.Message, opts *core.GenerateReplyOptions) (core.Message, error) {
	m.calls++
	m.gotMsgs = messages
	m.gotOpts = opts
	if m.err != nil {
		return core.Message{}, m.err
	}
	return core.NewMessage(core.RoleAssistant, m.reply, m.name), nil
}

func candidates(agents ...core.Agent) *core.OrchestrationContext {
	return &core.OrchestrationContext{Candidates: agents}
}
