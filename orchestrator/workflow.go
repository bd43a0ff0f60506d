package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/graph"
	"github.com/hupe1980/agentchat/logging"
)

// ErrAmbiguousNextSpeaker signals that the transition graph leaves more than
// one candidate reachable from the last speaker. This is a topology design
// mistake by the caller; the orchestrator refuses to pick arbitrarily.
var ErrAmbiguousNextSpeaker = errors.New("ambiguous next speaker")

// Workflow selects the next speaker purely from a transition graph. The
// graph's reachable set is intersected with the candidate list; exactly one
// survivor wins, zero ends the conversation, and more than one is an error.
type Workflow struct {
	graph  *graph.Graph
	logger logging.Logger
}

// WorkflowOptions configures a Workflow orchestrator.
type WorkflowOptions struct {
	Logger logging.Logger
}

// NewWorkflow creates a graph-driven orchestrator.
func NewWorkflow(g *graph.Graph, optFns ...func(o *WorkflowOptions)) *Workflow {
	opts := WorkflowOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Workflow{graph: g, logger: opts.Logger}
}

// NextSpeaker queries the graph from the last speaker and intersects the
// reachable agents with the candidate list. With no history there is no last
// speaker and no transitions apply, so the conversation has nowhere to go.
func (w *Workflow) NextSpeaker(ctx context.Context, octx *core.OrchestrationContext) (core.Agent, error) {
	if len(octx.Candidates) == 0 {
		return nil, nil
	}

	last, ok := core.LastMessage(octx.ChatHistory)
	if !ok {
		return nil, nil
	}

	from, _ := octx.FindCandidate(last.From)
	if from == nil {
		w.logger.Debug("orchestrator.workflow.unknown_last_speaker", "from", last.From)
		return nil, nil
	}

	available, err := w.graph.AvailableAgents(ctx, from, octx.ChatHistory)
	if err != nil {
		return nil, err
	}

	eligible := intersectCandidates(available, octx.Candidates)
	switch len(eligible) {
	case 0:
		w.logger.Debug("orchestrator.workflow.no_transition", "from", from.Name())
		return nil, nil
	case 1:
		w.logger.Debug("orchestrator.workflow.selected", "speaker", eligible[0].Name(), "from", from.Name())
		return eligible[0], nil
	default:
		names := make([]string, len(eligible))
		for i, a := range eligible {
			names[i] = a.Name()
		}
		return nil, fmt.Errorf("%w: transitions from %s lead to [%s]; the workflow graph must resolve to a single agent",
			ErrAmbiguousNextSpeaker, from.Name(), strings.Join(names, ", "))
	}
}

// intersectCandidates filters available agents down to those present in the
// candidate list, preserving graph availability order.
func intersectCandidates(available, candidates []core.Agent) []core.Agent {
	allowed := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c.Name()] = struct{}{}
	}
	var eligible []core.Agent
	for _, a := range available {
		if _, ok := allowed[a.Name()]; ok {
			eligible = append(eligible, a)
		}
	}
	return eligible
}
