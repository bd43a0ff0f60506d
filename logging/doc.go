// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug any
// structured logger. It also offers a richer ChatLogger with contextual
// helpers (conversation, component) and domain specific logging helpers for
// speaker selection, middleware invocation and arbiter calls.
//
// All AgentChat components accept a Logger through functional options and
// default to NoOpLogger, so logging never becomes a hard dependency of the
// orchestration core.
package logging
