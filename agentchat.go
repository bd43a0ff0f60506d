// Package agentchat provides a single-process, in-memory coordination core
// for multi-agent conversations: pluggable next-speaker orchestration
// strategies, a conditional transition graph constraining who may speak, and
// a middleware pipeline composing cross-cutting behavior around an agent's
// reply generation. Most applications interact with this package by:
//  1. Implementing or choosing agents (see the agent subpackages)
//  2. Picking an orchestration strategy (orchestrator.RoundRobin,
//     orchestrator.Workflow or orchestrator.RolePlay)
//  3. Driving the conversation through a GroupChat
//
// The GroupChat façade owns the host loop; the orchestration core itself
// performs no persistence and opens no network connections. All defaults are
// safe for local development and testing.
package agentchat

import (
	"context"
	"time"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
	"github.com/hupe1980/agentchat/orchestrator"
)

// GroupChatOptions configures a GroupChat.
type GroupChatOptions struct {
	// MaxRounds bounds the number of replies generated per Run call.
	MaxRounds int
	// ReplyOptions is handed unchanged to every speaker.
	ReplyOptions *core.GenerateReplyOptions
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// GroupChat repeatedly asks an orchestrator for the next speaker, invokes
// that speaker's (possibly middleware-wrapped) reply generation and appends
// the reply to the shared history. The conversation ends when the
// orchestrator reports no next speaker, MaxRounds is reached, or the context
// is cancelled.
type GroupChat struct {
	members      []core.Agent
	orchestrator orchestrator.Orchestrator
	maxRounds    int
	replyOptions *core.GenerateReplyOptions
	logger       logging.Logger
}

// NewGroupChat creates a group chat over the given members.
func NewGroupChat(orch orchestrator.Orchestrator, members []core.Agent, optFns ...func(o *GroupChatOptions)) *GroupChat {
	opts := GroupChatOptions{
		MaxRounds: 10,
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &GroupChat{
		members:      append([]core.Agent(nil), members...),
		orchestrator: orch,
		maxRounds:    opts.MaxRounds,
		replyOptions: opts.ReplyOptions,
		logger:       opts.Logger,
	}
}

// Run drives the conversation starting from the seed history and returns the
// full history including the seed. The seed slice is never mutated. Errors
// from orchestration or from a speaking agent abort the run and return the
// history accumulated so far alongside the error.
func (g *GroupChat) Run(ctx context.Context, seed []core.Message) ([]core.Message, error) {
	history := core.CloneHistory(seed)

	for round := 0; round < g.maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		octx := &core.OrchestrationContext{
			Candidates:  g.members,
			ChatHistory: core.CloneHistory(history),
		}

		start := time.Now()
		speaker, err := g.orchestrator.NextSpeaker(ctx, octx)
		if err != nil {
			return history, err
		}
		if speaker == nil {
			g.logger.Info("groupchat.complete", "rounds", round)
			return history, nil
		}
		g.logger.Debug("groupchat.next_speaker",
			"speaker", speaker.Name(),
			"round", round,
			"selection_ms", time.Since(start).Milliseconds(),
		)

		reply, err := speaker.GenerateReply(ctx, history, g.replyOptions)
		if err != nil {
			return history, err
		}
		if reply.From == "" {
			reply.From = speaker.Name()
		}
		history = append(history, reply)
	}

	g.logger.Info("groupchat.max_rounds_reached", "rounds", g.maxRounds)
	return history, nil
}
