package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentchat/core"
)

// stubAgent replies with a fixed content and records invocations.
type stubAgent struct {
	name    string
	reply   string
	err     error
	calls   int
	gotOpts *core.GenerateReplyOptions
}

func (s *stubAgent) Name() string { return s.name }

func (s *stubAgent) GenerateReply(_ context.Context, _ []core.Message, opts *core.GenerateReplyOptions) (core.Message, error) {
	s.calls++
	s.gotOpts = opts
	if s.err != nil {
		return core.Message{}, s.err
	}
	return core.NewMessage(core.RoleAssistant, s.reply, s.name), nil
}

// tagMiddleware prepends its tag to whatever the rest of the chain produces.
func tagMiddleware(tag string) Middleware {
	return MiddlewareFunc{
		MiddlewareName: tag,
		Fn: func(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error) {
			reply, err := next(ctx, messages, opts)
			if err != nil {
				return core.Message{}, err
			}
			reply.Content = "[" + tag + "] " + reply.Content
			return reply, nil
		},
	}
}

func TestAgent_NoMiddlewareDelegates(t *testing.T) {
	base := &stubAgent{name: "coder", reply: "original"}
	agent := NewAgent(base)

	reply, err := agent.GenerateReply(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "original", reply.Content)
	assert.Equal(t, "coder", agent.Name())
	assert.Equal(t, 1, base.calls)
}

func TestAgent_LastRegisteredRunsFirst(t *testing.T) {
	base := &stubAgent{name: "coder", reply: "original"}
	agent := NewAgent(base)
	agent.Use(tagMiddleware("A"))
	agent.Use(tagMiddleware("B"))

	reply, err := agent.GenerateReply(context.Background(), nil, nil)

	require.NoError(t, err)
	// B registered last, so B is outermost and its tag lands first.
	assert.Equal(t, "[B] [A] original", reply.Content)
}

func TestAgent_ShortCircuit(t *testing.T) {
	base := &stubAgent{name: "coder", reply: "original"}
	inner := tagMiddleware("inner")
	cached := MiddlewareFunc{
		MiddlewareName: "cache",
		Fn: func(_ context.Context, _ []core.Message, _ *core.GenerateReplyOptions, _ NextFunc) (core.Message, error) {
			return core.NewMessage(core.RoleAssistant, "cached", ""), nil
		},
	}

	agent := NewAgent(base)
	agent.Use(inner)
	agent.Use(cached)

	reply, err := agent.GenerateReply(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "cached", reply.Content)
	assert.Zero(t, base.calls, "short-circuit registered last skips the whole chain")
}

func TestAgent_StampsFromWhenEmpty(t *testing.T) {
	base := &stubAgent{name: "coder", reply: "original"}
	shortCircuit := MiddlewareFunc{
		Fn: func(_ context.Context, _ []core.Message, _ *core.GenerateReplyOptions, _ NextFunc) (core.Message, error) {
			return core.NewMessage(core.RoleUser, "human says", ""), nil
		},
	}

	agent := NewAgent(base, func(o *AgentOptions) {
		o.Name = "wrapped-coder"
		o.Middlewares = []Middleware{shortCircuit}
	})

	reply, err := agent.GenerateReply(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "wrapped-coder", reply.From, "pipeline results are attributed to the wrapper")
}

func TestAgent_KeepsExistingFrom(t *testing.T) {
	base := &stubAgent{name: "coder", reply: "original"}
	agent := NewAgent(base, func(o *AgentOptions) {
		o.Name = "wrapped-coder"
	})

	reply, err := agent.GenerateReply(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "coder", reply.From, "the base agent's attribution is preserved")
}

func TestAgent_ErrorDiscardsMessage(t *testing.T) {
	base := &stubAgent{name: "coder", err: errors.New("boom")}
	agent := NewAgent(base)
	agent.Use(tagMiddleware("A"))

	reply, err := agent.GenerateReply(context.Background(), nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, base.err)
	assert.Zero(t, reply)
}

func TestAgent_WithMiddlewareLeavesReceiverUnchanged(t *testing.T) {
	base := &stubAgent{name: "coder", reply: "original"}
	agent := NewAgent(base)
	agent.Use(tagMiddleware("A"))

	extended := agent.WithMiddleware(tagMiddleware("B"))

	reply, err := agent.GenerateReply(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[A] original", reply.Content)

	reply, err = extended.GenerateReply(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[B] [A] original", reply.Content)

	// Registrations on the original after the fork must not leak into the copy.
	agent.Use(tagMiddleware("C"))
	reply, err = extended.GenerateReply(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "[B] [A] original", reply.Content)
}

func TestAgent_Base(t *testing.T) {
	base := &stubAgent{name: "coder"}
	agent := NewAgent(base)

	assert.Same(t, base, agent.Base())
}

func TestMiddlewareFunc_Name(t *testing.T) {
	assert.Equal(t, "func", MiddlewareFunc{}.Name())
	assert.Equal(t, "tagged", MiddlewareFunc{MiddlewareName: "tagged"}.Name())
}
