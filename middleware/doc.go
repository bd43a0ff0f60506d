// Package middleware implements the interceptor pipeline that composes
// cross-cutting behavior around a base agent's reply generation without
// modifying the agent itself. An Agent wraps any core.Agent plus an ordered
// list of middleware links; invocation order is LIFO relative to
// registration, so the most recently registered link is the outermost
// wrapper and runs first. A link that does not call its next delegate
// short-circuits the remainder of the chain.
//
// Shipped links cover function/tool dispatch (FunctionCallMiddleware), human
// input gating (HumanInputMiddleware), structured logging (LogMiddleware)
// and Prometheus metrics with token accounting (MetricsMiddleware).
package middleware
