package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentchat/core"
)

// Echo is a deterministic agent that replies without any external calls. By
// default it echoes the last message's content; a custom reply function can
// produce anything derived from the history.
type Echo struct {
	name  string
	reply func(messages []core.Message) string
}

// EchoOptions configures an Echo agent.
type EchoOptions struct {
	// Reply overrides the default echo behavior.
	Reply func(messages []core.Message) string
}

// NewEcho creates an echo agent with the given name.
func NewEcho(name string, optFns ...func(o *EchoOptions)) *Echo {
	opts := EchoOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Echo{name: name, reply: opts.Reply}
}

// Name implements core.Agent.
func (e *Echo) Name() string { return e.name }

// GenerateReply implements core.Agent.
func (e *Echo) GenerateReply(ctx context.Context, messages []core.Message, _ *core.GenerateReplyOptions) (core.Message, error) {
	if err := ctx.Err(); err != nil {
		return core.Message{}, err
	}

	var content string
	switch {
	case e.reply != nil:
		content = e.reply(messages)
	case len(messages) > 0:
		content = messages[len(messages)-1].Content
	default:
		content = fmt.Sprintf("Hello, I am %s.", e.name)
	}
	return core.NewMessage(core.RoleAssistant, content, e.name), nil
}
