package graph

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentchat/core"
)

// Topology is the declarative YAML form of a transition graph. It references
// agents by name so graph layout can live in configuration while agent
// construction stays in code:
//
//	name: review-loop
//	transitions:
//	  - from: coder
//	    to: reviewer
//	  - from: reviewer
//	    to: coder
type Topology struct {
	Name        string         `yaml:"name,omitempty"`
	Transitions []TopologyEdge `yaml:"transitions"`
}

// TopologyEdge names the endpoints of a single declarative transition.
type TopologyEdge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadTopology parses a YAML topology document.
func LoadTopology(data []byte) (*Topology, error) {
	var topo Topology
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("failed to parse topology: %w", err)
	}
	for i, edge := range topo.Transitions {
		if edge.From == "" || edge.To == "" {
			return nil, fmt.Errorf("topology transition %d requires both from and to", i)
		}
	}
	return &topo, nil
}

// Build resolves the topology's agent names against the supplied agents and
// returns the corresponding graph. Every name referenced by a transition must
// match exactly one agent. Declarative edges are unconditional; attach
// predicates programmatically via AddTransition when needed.
func (t *Topology) Build(agents ...core.Agent) (*Graph, error) {
	byName := make(map[string]core.Agent, len(agents))
	for _, a := range agents {
		byName[a.Name()] = a
	}

	g := NewGraph()
	for _, edge := range t.Transitions {
		from, ok := byName[edge.From]
		if !ok {
			return nil, fmt.Errorf("topology references unknown agent %q", edge.From)
		}
		to, ok := byName[edge.To]
		if !ok {
			return nil, fmt.Errorf("topology references unknown agent %q", edge.To)
		}
		transition, err := NewTransition(from, to)
		if err != nil {
			return nil, err
		}
		g.AddTransition(transition)
	}
	return g, nil
}
