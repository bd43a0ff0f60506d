package middleware

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hupe1980/agentchat/core"
)

// HumanInputMode controls when HumanInputMiddleware asks for human input.
type HumanInputMode int

const (
	// HumanInputModeNever always delegates to the chain; the middleware is inert.
	HumanInputModeNever HumanInputMode = iota
	// HumanInputModeAuto asks for input and delegates when the human stays silent.
	HumanInputModeAuto
	// HumanInputModeAlways requires input; an empty line yields an empty user message.
	HumanInputModeAlways
)

// InputFunc collects one line of human input for the given prompt.
type InputFunc func(ctx context.Context, prompt string) (string, error)

// HumanInputMiddleware gates reply generation behind a human. Non-empty
// input short-circuits the chain with a user-role message carrying the
// human's text; in Auto mode an empty input hands the turn back to the
// wrapped agent.
type HumanInputMiddleware struct {
	mode   HumanInputMode
	prompt string
	input  InputFunc
}

// HumanInputOptions configures a HumanInputMiddleware.
type HumanInputOptions struct {
	Prompt string
	// Input overrides how input is collected. Defaults to reading a line
	// from stdin.
	Input InputFunc
}

// NewHumanInputMiddleware creates the gating middleware for the given mode.
func NewHumanInputMiddleware(mode HumanInputMode, optFns ...func(o *HumanInputOptions)) *HumanInputMiddleware {
	opts := HumanInputOptions{
		Prompt: "Provide feedback (press enter to let the agent reply): ",
		Input:  stdinInput(os.Stdin, os.Stdout),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &HumanInputMiddleware{mode: mode, prompt: opts.Prompt, input: opts.Input}
}

// Name returns the middleware's identifier.
func (m *HumanInputMiddleware) Name() string { return "human_input" }

// Invoke implements Middleware.
func (m *HumanInputMiddleware) Invoke(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error) {
	if m.mode == HumanInputModeNever {
		return next(ctx, messages, opts)
	}

	line, err := m.input(ctx, m.prompt)
	if err != nil {
		return core.Message{}, err
	}
	line = strings.TrimSpace(line)

	if line == "" && m.mode == HumanInputModeAuto {
		return next(ctx, messages, opts)
	}
	return core.NewMessage(core.RoleUser, line, ""), nil
}

// stdinInput builds the default line reader over the given streams.
func stdinInput(in io.Reader, out io.Writer) InputFunc {
	reader := bufio.NewReader(in)
	return func(ctx context.Context, prompt string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return line, nil
	}
}
