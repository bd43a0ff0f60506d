// Package agent provides ready-made core.Agent implementations. The Echo
// agent answers deterministically and is intended for examples and tests;
// the openai and anthropic subpackages wrap the official provider SDKs for
// production use, including backing the RolePlay orchestrator's admin role.
package agent
