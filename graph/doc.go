// Package graph implements the directed transition multigraph used to
// constrain or drive next-speaker selection. Each edge connects two agents
// and may carry an asynchronous predicate over recent messages; querying the
// graph evaluates the predicates of the current speaker's outgoing edges and
// returns the reachable agents in edge-insertion order.
//
// Adding transitions is a configuration-time operation. The graph performs no
// internal synchronization; callers needing concurrent mutation must add
// external locking. Queries never cache or memoize predicate results.
package graph
