package orchestrator

import (
	"context"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
)

// RoundRobin cycles through the candidate list keyed off who spoke last, not
// off internal counters, so it stays stateless across calls and tolerates
// candidate lists that change between rounds.
type RoundRobin struct {
	logger logging.Logger
}

// RoundRobinOptions configures a RoundRobin orchestrator.
type RoundRobinOptions struct {
	Logger logging.Logger
}

// NewRoundRobin creates a round-robin orchestrator.
func NewRoundRobin(optFns ...func(o *RoundRobinOptions)) *RoundRobin {
	opts := RoundRobinOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RoundRobin{logger: opts.Logger}
}

// NextSpeaker returns the candidate following the last message's author in
// declaration order, wrapping around at the end of the list.
//
// Edge cases: empty candidates -> nil; non-empty candidates with empty
// history -> first candidate; last speaker absent from candidates -> nil.
func (r *RoundRobin) NextSpeaker(_ context.Context, octx *core.OrchestrationContext) (core.Agent, error) {
	if len(octx.Candidates) == 0 {
		return nil, nil
	}

	last, ok := core.LastMessage(octx.ChatHistory)
	if !ok {
		r.logger.Debug("orchestrator.roundrobin.seed", "speaker", octx.Candidates[0].Name())
		return octx.Candidates[0], nil
	}

	_, i := octx.FindCandidate(last.From)
	if i < 0 {
		r.logger.Debug("orchestrator.roundrobin.unknown_last_speaker", "from", last.From)
		return nil, nil
	}

	next := octx.Candidates[(i+1)%len(octx.Candidates)]
	r.logger.Debug("orchestrator.roundrobin.selected", "speaker", next.Name(), "previous", last.From)
	return next, nil
}
