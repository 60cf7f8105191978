package core

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is where a screen's submission stands.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Policy decides which settlement wins when submissions overlap.
type Policy int

const (
	// PolicyLatest applies only the settlement of the newest submission.
	PolicyLatest Policy = iota
	// PolicyLastSettled applies every settlement in arrival order.
	PolicyLastSettled
)

func (p Policy) String() string {
	if p == PolicyLastSettled {
		return "last-settled"
	}
	return "latest"
}

// ParsePolicy maps a config value to a Policy. Unknown values fall back to PolicyLatest.
func ParsePolicy(s string) Policy {
	if strings.EqualFold(strings.TrimSpace(s), "last-settled") {
		return PolicyLastSettled
	}
	return PolicyLatest
}

// Outcome is what a request produced. Err is a transport or decode failure;
// errors reported inside the payload belong to T.
type Outcome[T any] struct {
	Token   uint64
	Payload T
	Err     error
}

// SettledMsg carries an Outcome back to the tab that issued it.
type SettledMsg[T any] struct {
	Tab     string
	Outcome Outcome[T]
}

func (m SettledMsg[T]) TargetTab() string { return m.Tab }

// Lifecycle tracks one screen's submissions. The zero value is idle and uses
// PolicyLatest; values are copied on every transition.
type Lifecycle[T any] struct {
	Phase Phase
	// Token is the most recently issued request token.
	Token uint64
	// Payload is valid when HasPayload is set.
	Payload    T
	HasPayload bool
	// Failure is the user-facing text of the last applied failed settlement.
	Failure string

	failureText string
	policy      Policy
}

func NewLifecycle[T any](failureText string, policy Policy) Lifecycle[T] {
	return Lifecycle[T]{failureText: failureText, policy: policy}
}

func (l Lifecycle[T]) Policy() Policy { return l.policy }

func (l Lifecycle[T]) Pending() bool { return l.Phase == PhasePending }

// Settled reports whether there is a result or failure to show.
func (l Lifecycle[T]) Settled() bool { return l.HasPayload || l.Failure != "" }

// Begin issues a new token and moves to pending. The previous result stays
// until something settles.
func (l Lifecycle[T]) Begin() (Lifecycle[T], uint64) {
	l.Token++
	l.Phase = PhasePending
	return l, l.Token
}

// Settle applies o, reporting false when the outcome was discarded. Tokens
// that were never issued are always discarded.
func (l Lifecycle[T]) Settle(o Outcome[T]) (Lifecycle[T], bool) {
	if o.Token == 0 || o.Token > l.Token {
		return l, false
	}
	if l.policy == PolicyLatest && o.Token != l.Token {
		return l, false
	}
	var zero T
	if o.Err != nil {
		l.Phase = PhaseFailed
		l.Payload = zero
		l.HasPayload = false
		l.Failure = l.failureText
		return l, true
	}
	l.Phase = PhaseSucceeded
	l.Payload = o.Payload
	l.HasPayload = true
	l.Failure = ""
	return l, true
}

// Clear drops the shown result without touching in-flight tokens.
func (l Lifecycle[T]) Clear() Lifecycle[T] {
	var zero T
	l.Payload = zero
	l.HasPayload = false
	l.Failure = ""
	if l.Phase != PhasePending {
		l.Phase = PhaseIdle
	}
	return l
}

// Submit runs call off the update loop and reports back as a SettledMsg for tab.
func Submit[T any](ctx context.Context, tab string, token uint64, call func(context.Context) (T, error)) tea.Cmd {
	return func() tea.Msg {
		v, err := call(ctx)
		return SettledMsg[T]{Tab: tab, Outcome: Outcome[T]{Token: token, Payload: v, Err: err}}
	}
}
