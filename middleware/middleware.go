package middleware

import (
	"context"

	"github.com/hupe1980/agentchat/core"
)

// NextFunc represents the remainder of a middleware chain, down to the base
// agent. Calling it continues the pipeline; not calling it short-circuits.
type NextFunc func(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions) (core.Message, error)

// Middleware intercepts a reply-generation call. Implementations either call
// next to continue the chain (possibly with transformed messages or options)
// or return a message directly to short-circuit. Cancellation must be
// propagated unchanged to anything the middleware calls.
type Middleware interface {
	// Name identifies the middleware in logs.
	Name() string

	// Invoke processes the call.
	Invoke(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error)
}

// MiddlewareFunc adapts a plain function into a named Middleware.
type MiddlewareFunc struct {
	MiddlewareName string
	Fn             func(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error)
}

// Name returns the middleware's identifier.
func (m MiddlewareFunc) Name() string {
	if m.MiddlewareName == "" {
		return "func"
	}
	return m.MiddlewareName
}

// Invoke runs the wrapped function.
func (m MiddlewareFunc) Invoke(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error) {
	return m.Fn(ctx, messages, opts, next)
}

// Agent wraps a base core.Agent with an ordered middleware chain and exposes
// the same Agent capability. Two registration styles cover both host
// preferences: Use mutates the receiver for single-owner incremental
// construction, WithMiddleware copies-on-write into a new wrapper leaving
// the receiver observably unchanged.
type Agent struct {
	base        core.Agent
	name        string
	middlewares []Middleware
}

// AgentOptions configures a middleware Agent.
type AgentOptions struct {
	// Name overrides the wrapper's name. Defaults to the base agent's name.
	Name string
	// Middlewares seeds the chain in registration order.
	Middlewares []Middleware
}

// NewAgent wraps base with an initially configured middleware chain.
func NewAgent(base core.Agent, optFns ...func(o *AgentOptions)) *Agent {
	opts := AgentOptions{Name: base.Name()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Agent{
		base:        base,
		name:        opts.Name,
		middlewares: append([]Middleware(nil), opts.Middlewares...),
	}
}

// Name returns the wrapper's (possibly overridden) agent name.
func (a *Agent) Name() string { return a.name }

// Base returns the wrapped agent, unmodified by any registration.
func (a *Agent) Base() core.Agent { return a.base }

// Use appends a middleware to the chain in place. The newly registered link
// becomes the outermost wrapper on the next invocation.
func (a *Agent) Use(mw Middleware) {
	a.middlewares = append(a.middlewares, mw)
}

// WithMiddleware returns a new wrapper whose chain is the receiver's chain
// plus the given links. The receiver keeps its own registration list; the
// two wrappers share nothing mutable.
func (a *Agent) WithMiddleware(mws ...Middleware) *Agent {
	chain := make([]Middleware, 0, len(a.middlewares)+len(mws))
	chain = append(chain, a.middlewares...)
	chain = append(chain, mws...)
	return &Agent{base: a.base, name: a.name, middlewares: chain}
}

// GenerateReply executes the middleware chain and ultimately the base agent.
// The chain is composed right-to-left at invocation time so the most
// recently registered middleware runs first; a link returning without
// calling its delegate makes its message the pipeline result immediately.
func (a *Agent) GenerateReply(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions) (core.Message, error) {
	next := NextFunc(func(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions) (core.Message, error) {
		return a.base.GenerateReply(ctx, messages, opts)
	})
	for _, mw := range a.middlewares {
		next = link(mw, next)
	}
	reply, err := next(ctx, messages, opts)
	if err != nil {
		return core.Message{}, err
	}
	if reply.From == "" {
		reply.From = a.name
	}
	return reply, nil
}

// link binds one middleware around the chain built so far.
func link(mw Middleware, inner NextFunc) NextFunc {
	return func(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions) (core.Message, error) {
		return mw.Invoke(ctx, messages, opts, inner)
	}
}
