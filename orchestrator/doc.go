// Package orchestrator implements the next-speaker selection strategies that
// coordinate turn-taking in a group conversation. Three interchangeable
// strategies satisfy the Orchestrator contract:
//
//   - RoundRobin cycles through candidates keyed off who spoke last.
//   - Workflow follows a transition graph and refuses to guess when the
//     graph leaves more than one candidate reachable.
//   - RolePlay asks an admin (arbiter) agent to pick the next speaker,
//     optionally constrained by a transition graph.
//
// Strategies hold no mutable state across calls. A nil agent with a nil
// error means no next speaker, which is an expected steady-state outcome
// (empty candidates, unrecognized last speaker, exhausted graph) rather than
// a failure.
package orchestrator
