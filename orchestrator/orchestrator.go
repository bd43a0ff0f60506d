package orchestrator

import (
	"context"

	"github.com/hupe1980/agentchat/core"
)

// Orchestrator selects the next agent to speak given the shared conversation
// context. Implementations must not mutate the supplied context and must not
// retain it between calls.
//
// A (nil, nil) return signals that no next speaker exists; the hosting loop
// is expected to stop the conversation. Errors are reserved for
// configuration mistakes (ambiguous graph topology) and contract violations
// (an arbiter naming an unknown speaker); collaborator failures propagate
// unchanged.
type Orchestrator interface {
	NextSpeaker(ctx context.Context, octx *core.OrchestrationContext) (core.Agent, error)
}
