// Package core provides the foundational domain types and contracts used by
// AgentChat. It defines the core abstractions for:
//
//   - Agents (named units able to produce a reply from a conversation history)
//   - Messages (immutable role/content/attribution records, including
//     function-call and function-result payloads)
//   - GenerateReplyOptions (the generation configuration bag passed through
//     orchestration unchanged)
//   - OrchestrationContext (the per-selection-call view of candidates and
//     chat history handed to next-speaker strategies)
//
// The package intentionally keeps implementation concerns (orchestration
// strategies, middleware pipelines, concrete LLM-backed agents) out of scope,
// exposing small interfaces so hosting applications can supply their own
// agent implementations. All exported identifiers include concise
// documentation to aid discoverability and external consumption.
package core
