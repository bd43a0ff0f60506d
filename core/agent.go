package core

import "context"

// Agent is the contract every conversational participant must satisfy.
//
// Agents are referenced (not owned) by orchestrators and transition graphs;
// the hosting application controls their lifetime. Implementations must be
// side-effect-free with respect to orchestration state: generating a reply
// must not mutate the supplied history or options.
//
// GenerateReply may perform arbitrary I/O (typically an LLM provider call)
// and must honor context cancellation.
type Agent interface {
	// Name returns the stable identifier used to match the agent against
	// message attribution and transition graph nodes. Names are expected to
	// be unique within a candidate set.
	Name() string

	// GenerateReply produces the agent's next message given the ordered
	// conversation history and generation options. Options may be nil.
	GenerateReply(ctx context.Context, messages []Message, opts *GenerateReplyOptions) (Message, error)
}

// GenerateReplyOptions is the configuration bag recognized by agents and LLM
// arbiters. Orchestration logic passes it through unchanged except where a
// strategy synthesizes its own (the RolePlay arbitration call).
type GenerateReplyOptions struct {
	// StopSequence lists strings at which generation should halt.
	StopSequence []string
	// Temperature overrides the sampling temperature when non-nil.
	Temperature *float64
	// MaxTokens bounds the reply length. Zero means provider default.
	MaxTokens int64
	// Functions declares the callable contracts exposed to the agent.
	Functions []FunctionContract
}

// Clone returns a deep copy so middleware can adjust options without
// affecting the caller's value. A nil receiver yields a fresh empty bag.
func (o *GenerateReplyOptions) Clone() *GenerateReplyOptions {
	if o == nil {
		return &GenerateReplyOptions{}
	}
	cloned := &GenerateReplyOptions{MaxTokens: o.MaxTokens}
	if o.Temperature != nil {
		t := *o.Temperature
		cloned.Temperature = &t
	}
	cloned.StopSequence = append([]string(nil), o.StopSequence...)
	cloned.Functions = append([]FunctionContract(nil), o.Functions...)
	return cloned
}

// OrchestrationContext carries the per-call view handed to a next-speaker
// selection. It is created per selection call and not retained between calls;
// callers own and mutate it. The orchestration core never mutates ChatHistory.
type OrchestrationContext struct {
	// Candidates is the ordered set of agents eligible to speak.
	Candidates []Agent
	// ChatHistory is the ordered, append-only conversation so far.
	ChatHistory []Message
}

// FindCandidate returns the candidate with the given name and its index in
// declaration order, or (nil, -1) when absent.
func (c *OrchestrationContext) FindCandidate(name string) (Agent, int) {
	for i, candidate := range c.Candidates {
		if candidate.Name() == name {
			return candidate, i
		}
	}
	return nil, -1
}
