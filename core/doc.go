// Package core defines the shared domain types of the handoff framework:
// the append-only MemoryLog exchanged between agents, the immutable
// ActionContext threaded through a delegation chain, the Agent capability
// interface and the sentinel errors used across packages.
//
// All other packages depend on core; core depends on nothing but the
// standard library.
package core
