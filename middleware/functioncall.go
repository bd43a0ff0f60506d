package middleware

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
)

// Function is an async callable dispatched by FunctionCallMiddleware. It
// receives the call's raw JSON argument payload and returns the serialized
// result.
type Function func(ctx context.Context, argumentsJSON string) (string, error)

// FunctionCallMiddleware dispatches tool-call messages to registered
// callables. Incoming tool-call messages are dispatched without consulting
// the base agent; otherwise the call is delegated, and a tool-call reply
// from the agent itself is dispatched before being returned to the caller.
//
// An unknown function name is a reported failure, not a thrown one: the
// caller receives an error-content message and the conversation continues.
type FunctionCallMiddleware struct {
	functions map[string]Function
	order     []string // registration order, drives the "available functions" listing
	contracts []core.FunctionContract
	logger    logging.Logger
}

// FunctionCallOptions configures a FunctionCallMiddleware.
type FunctionCallOptions struct {
	// Contracts declares the callable contracts injected into generation
	// options before delegation, so the base agent can emit matching calls.
	Contracts []core.FunctionContract
	Logger    logging.Logger
}

// NewFunctionCallMiddleware creates the middleware from a name -> callable
// map. Contract-named functions are seeded first so the advertised listing
// matches the declared contracts; remaining map entries follow in sorted
// name order to keep the listing deterministic. Use Register to control
// ordering explicitly.
func NewFunctionCallMiddleware(functions map[string]Function, optFns ...func(o *FunctionCallOptions)) *FunctionCallMiddleware {
	opts := FunctionCallOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	m := &FunctionCallMiddleware{
		functions: map[string]Function{},
		contracts: append([]core.FunctionContract(nil), opts.Contracts...),
		logger:    opts.Logger,
	}
	for _, c := range m.contracts {
		if fn, ok := functions[c.Name]; ok {
			m.Register(c.Name, fn)
		}
	}
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m.Register(name, functions[name])
	}
	return m
}

// Register adds (or replaces) a callable. First registration of a name fixes
// its position in the advertised function listing.
func (m *FunctionCallMiddleware) Register(name string, fn Function) {
	if _, exists := m.functions[name]; !exists {
		m.order = append(m.order, name)
	}
	m.functions[name] = fn
}

// Name returns the middleware's identifier.
func (m *FunctionCallMiddleware) Name() string { return "function_call" }

// Invoke implements Middleware.
func (m *FunctionCallMiddleware) Invoke(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error) {
	// A tool-call input message is dispatched directly; the base agent never runs.
	if last, ok := core.LastMessage(messages); ok && last.IsFunctionCall() {
		return m.dispatch(ctx, *last.FunctionCall)
	}

	if len(m.contracts) > 0 {
		opts = opts.Clone()
		opts.Functions = append(opts.Functions, m.contracts...)
	}

	reply, err := next(ctx, messages, opts)
	if err != nil {
		return core.Message{}, err
	}

	// The agent's own reply may request a call; resolve it before returning.
	if reply.IsFunctionCall() {
		return m.dispatch(ctx, *reply.FunctionCall)
	}
	return reply, nil
}

// dispatch resolves and invokes a single function call.
func (m *FunctionCallMiddleware) dispatch(ctx context.Context, call core.FunctionCall) (core.Message, error) {
	fn, ok := m.functions[call.Name]
	if !ok {
		m.logger.Warn("middleware.function.unavailable", "function", call.Name)
		content := fmt.Sprintf("Function %s is not available. Available functions are: %s",
			call.Name, strings.Join(m.order, ","))
		return core.Message{ID: core.NewID(), Role: core.RoleFunction, Content: content}, nil
	}

	start := time.Now()
	result, err := fn(ctx, call.Arguments)
	dur := time.Since(start)
	if err != nil {
		m.logger.Error("middleware.function.error", "function", call.Name, "duration_ms", dur.Milliseconds(), "error", err.Error())
		return core.Message{}, err
	}
	m.logger.Info("middleware.function.executed", "function", call.Name, "duration_ms", dur.Milliseconds())

	return core.NewFunctionResultMessage("", core.FunctionResponse{
		ID:     call.ID,
		Name:   call.Name,
		Result: result,
	}), nil
}
