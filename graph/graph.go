package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/agentchat/core"
)

// Condition is an asynchronous predicate deciding whether a transition is
// satisfied given the conversation so far. Implementations may perform I/O
// and must honor context cancellation. A nil Condition on a Transition means
// the edge is always satisfied.
type Condition func(ctx context.Context, from, to core.Agent, messages []core.Message) (bool, error)

// Transition is a directed edge between two agents. Multiple transitions may
// share the same From agent; together they form a multigraph.
type Transition struct {
	From      core.Agent
	To        core.Agent
	Condition Condition
}

// NewTransition constructs an unconditional transition. Both endpoints are required.
func NewTransition(from, to core.Agent) (Transition, error) {
	return NewConditionalTransition(from, to, nil)
}

// NewConditionalTransition constructs a transition guarded by a predicate.
func NewConditionalTransition(from, to core.Agent, cond Condition) (Transition, error) {
	if from == nil || to == nil {
		return Transition{}, errors.New("transition requires both a from and a to agent")
	}
	return Transition{From: from, To: to, Condition: cond}, nil
}

// Graph holds a set of transitions plus an adjacency index from agent name to
// outgoing edges. The zero value is not usable; construct with NewGraph.
type Graph struct {
	transitions []Transition
	outgoing    map[string][]int // agent name -> indices into transitions, insertion order
}

// NewGraph creates an empty graph, optionally seeded with transitions.
func NewGraph(transitions ...Transition) *Graph {
	g := &Graph{outgoing: map[string][]int{}}
	for _, t := range transitions {
		g.AddTransition(t)
	}
	return g
}

// AddTransition appends an edge. Duplicate edges are kept; evaluation order
// follows insertion order.
func (g *Graph) AddTransition(t Transition) {
	g.transitions = append(g.transitions, t)
	idx := len(g.transitions) - 1
	name := t.From.Name()
	g.outgoing[name] = append(g.outgoing[name], idx)
}

// Transitions returns a copy of all edges in insertion order.
func (g *Graph) Transitions() []Transition {
	return append([]Transition(nil), g.transitions...)
}

// AvailableAgents evaluates the outgoing transitions of from against the
// supplied messages and returns the target agents of all satisfied edges, in
// edge-insertion order. An agent with no outgoing edges yields an empty
// result. Predicate errors abort the query and propagate to the caller.
func (g *Graph) AvailableAgents(ctx context.Context, from core.Agent, messages []core.Message) ([]core.Agent, error) {
	if from == nil {
		return nil, errors.New("graph query requires a from agent")
	}

	var available []core.Agent
	for _, idx := range g.outgoing[from.Name()] {
		t := g.transitions[idx]
		if t.Condition == nil {
			available = append(available, t.To)
			continue
		}
		ok, err := t.Condition(ctx, t.From, t.To, messages)
		if err != nil {
			return nil, fmt.Errorf("transition condition %s -> %s: %w", t.From.Name(), t.To.Name(), err)
		}
		if ok {
			available = append(available, t.To)
		}
	}
	return available, nil
}
