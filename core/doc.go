// Package core contains app-wide contracts and state orchestration.
//
// Allowed here:
// - model routing, message contracts, command and key registries
// - shared state machines used across screens (form state, submission lifecycle)
// - tab-addressed message delivery and result projection rules
//
// Not allowed here:
// - concrete screen/modal rendering implementations
// - low-level widget rendering primitives
// - HTTP or backend details (those live behind the tab client interfaces)
package core
