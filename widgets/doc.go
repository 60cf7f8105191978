// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (pane chrome, stacks, popup overlay compositor)
// - result fragments and their styled/plain renderings, chat bubbles, the spending chart
//
// Not allowed here:
// - key handling, app state transitions, scope logic, or tab policy
package widgets
