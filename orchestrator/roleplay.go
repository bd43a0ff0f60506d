package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/graph"
	"github.com/hupe1980/agentchat/logging"
)

// SpeakerSelectionError reports an admin reply that could not be matched to
// any candidate name. The arbiter violated its contract; the fragment is
// surfaced verbatim so the caller can diagnose prompt or model issues.
type SpeakerSelectionError struct {
	// Fragment is the cleaned reply content that failed to match.
	Fragment string
	// Candidates lists the allowed speaker names at the time of the call.
	Candidates []string
}

// Error implements the error interface.
func (e *SpeakerSelectionError) Error() string {
	return fmt.Sprintf("failed to select next speaker: %q is either not in the candidates list or not in the correct format (candidates: %s)",
		e.Fragment, strings.Join(e.Candidates, ","))
}

// RolePlay delegates speaker selection to an admin (arbiter) agent, typically
// LLM-backed. An optional transition graph narrows the pool before the admin
// is consulted; when the graph resolves to a single agent no arbitration
// happens at all.
type RolePlay struct {
	admin  core.Agent
	graph  *graph.Graph
	logger logging.Logger
}

// RolePlayOptions configures a RolePlay orchestrator.
type RolePlayOptions struct {
	// Graph optionally constrains the candidate pool per turn.
	Graph  *graph.Graph
	Logger logging.Logger
}

// NewRolePlay creates an LLM-arbitrated orchestrator around the given admin agent.
func NewRolePlay(admin core.Agent, optFns ...func(o *RolePlayOptions)) *RolePlay {
	opts := RolePlayOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &RolePlay{admin: admin, graph: opts.Graph, logger: opts.Logger}
}

// NextSpeaker resolves the next speaker, consulting the admin agent only when
// neither the candidate list nor the graph already determines the answer.
// Admin errors propagate unchanged; an admin reply naming no candidate is a
// *SpeakerSelectionError.
func (r *RolePlay) NextSpeaker(ctx context.Context, octx *core.OrchestrationContext) (core.Agent, error) {
	if len(octx.Candidates) == 0 {
		return nil, nil
	}
	if len(octx.Candidates) == 1 {
		return octx.Candidates[0], nil
	}

	pool, err := r.candidatePool(ctx, octx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 1 {
		r.logger.Debug("orchestrator.roleplay.graph_resolved", "speaker", pool[0].Name())
		return pool[0], nil
	}

	return r.arbitrate(ctx, pool, octx.ChatHistory)
}

// candidatePool applies the optional graph constraint. An empty intersection
// falls back to the full candidate list: the graph is advisory, not
// exclusive, when it is ambiguous or not yet applicable.
func (r *RolePlay) candidatePool(ctx context.Context, octx *core.OrchestrationContext) ([]core.Agent, error) {
	if r.graph == nil || len(octx.ChatHistory) == 0 {
		return octx.Candidates, nil
	}

	last, _ := core.LastMessage(octx.ChatHistory)
	from, _ := octx.FindCandidate(last.From)
	if from == nil {
		return octx.Candidates, nil
	}

	available, err := r.graph.AvailableAgents(ctx, from, octx.ChatHistory)
	if err != nil {
		return nil, err
	}

	eligible := intersectCandidates(available, octx.Candidates)
	if len(eligible) == 0 {
		return octx.Candidates, nil
	}
	return eligible, nil
}

// arbitrate asks the admin agent to name the next speaker and matches the
// reply against the pool.
func (r *RolePlay) arbitrate(ctx context.Context, pool []core.Agent, history []core.Message) (core.Agent, error) {
	names := make([]string, len(pool))
	for i, a := range pool {
		names[i] = a.Name()
	}

	prompt := buildRolePlayPrompt(names, history)
	temperature := 0.0
	opts := &core.GenerateReplyOptions{
		StopSequence: []string{":"},
		Temperature:  &temperature,
		MaxTokens:    128,
	}

	start := time.Now()
	reply, err := r.admin.GenerateReply(ctx, []core.Message{core.NewSystemMessage(prompt)}, opts)
	dur := time.Since(start)
	if err != nil {
		r.logger.Error("orchestrator.roleplay.arbiter_error", "admin", r.admin.Name(), "duration_ms", dur.Milliseconds(), "error", err.Error())
		return nil, err
	}
	r.logger.Debug("orchestrator.roleplay.arbiter_reply", "admin", r.admin.Name(), "duration_ms", dur.Milliseconds(), "content", reply.Content)

	return matchSpeaker(reply.Content, pool, names)
}

// buildRolePlayPrompt synthesizes the single system message handed to the
// admin: the role-play framing, the allowed speaker names and the attributed
// conversation history.
func buildRolePlayPrompt(names []string, history []core.Message) string {
	var b strings.Builder
	b.WriteString("You are in a role play game. Carefully read the conversation history and carry on the conversation.\n")
	b.WriteString("The available roles are: ")
	b.WriteString(strings.Join(names, ","))
	b.WriteString(".\n")
	b.WriteString("Each message MUST start with 'From name:', e.g:\nFrom admin:\n//your message//.\n")
	for _, m := range history {
		from := m.From
		if from == "" {
			from = string(m.Role)
		}
		fmt.Fprintf(&b, "From %s: %s\n", from, m.Content)
	}
	return b.String()
}

// matchSpeaker maps the admin's reply onto a pool member. The reply is
// matched as a suffix so echoed prefix text ("The next speaker is Coder")
// still resolves; ties between names that are suffixes of each other resolve
// to the first match in declared order.
func matchSpeaker(content string, pool []core.Agent, names []string) (core.Agent, error) {
	fragment := strings.TrimSpace(content)
	fragment = strings.TrimSuffix(fragment, ":")
	fragment = strings.TrimSpace(fragment)

	for i, name := range names {
		if strings.HasSuffix(fragment, name) {
			return pool[i], nil
		}
	}
	return nil, &SpeakerSelectionError{Fragment: fragment, Candidates: names}
}
