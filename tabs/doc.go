// Package tabs contains tab-level policy and pane composition.
//
// Allowed here:
// - the chat, listing, budget and contract tabs and their state reducers
// - per-screen request building and result projection
// - tab-specific layout trees and field focus policy
//
// Not allowed here:
// - shared app routing logic (core) or low-level drawing primitives (widgets)
// - HTTP details; tabs talk to the agent through small client interfaces
package tabs
