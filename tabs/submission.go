package tabs

import (
	"context"
	"maps"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/widgets"
)

// Submission pairs a form with the lifecycle of the request it feeds. Every
// method returns a new value.
type Submission[T any] struct {
	Form      core.FormState
	Lifecycle core.Lifecycle[T]
	// inFlight is the form as it was sent by the newest pending request.
	inFlight map[string]string
}

func NewSubmission[T any](failure string, policy core.Policy, fields ...string) Submission[T] {
	return Submission[T]{
		Form:      core.NewFormState(fields...),
		Lifecycle: core.NewLifecycle[T](failure, policy),
	}
}

func (s Submission[T]) Set(name, value string) Submission[T] {
	s.Form = s.Form.Set(name, value)
	return s
}

// Begin issues a request for the current form. While a request is pending,
// sending the same input again is refused; edited input supersedes the
// pending request according to the lifecycle's policy.
func (s Submission[T]) Begin() (Submission[T], uint64, bool) {
	snap := s.Form.Snapshot()
	if s.Lifecycle.Pending() && maps.Equal(snap, s.inFlight) {
		return s, 0, false
	}
	var token uint64
	s.Lifecycle, token = s.Lifecycle.Begin()
	s.inFlight = snap
	return s, token, true
}

func (s Submission[T]) Settle(o core.Outcome[T]) (Submission[T], bool) {
	next, applied := s.Lifecycle.Settle(o)
	if !applied {
		return s, false
	}
	s.Lifecycle = next
	if o.Token == s.Lifecycle.Token {
		s.inFlight = nil
	}
	return s, true
}

// Stale reports whether token belongs to a superseded request.
func (s Submission[T]) Stale(token uint64) bool {
	return token != s.Lifecycle.Token
}

func (s Submission[T]) Reset() Submission[T] {
	s.Form = s.Form.Reset()
	return s
}

func (s Submission[T]) ClearResult() Submission[T] {
	s.Lifecycle = s.Lifecycle.Clear()
	return s
}

// Definition describes one form screen: its fields, labels, request and
// result projection.
type Definition[T any] struct {
	ID      string
	Title   string
	Scope   string
	Fields  []FieldSpec
	Idle    string
	Busy    string
	Failure string
	Empty   string
	View    core.ResultView[T]
	Call    func(ctx context.Context, form core.FormState) (T, error)
}

func (d Definition[T]) NewState(policy core.Policy) Submission[T] {
	keys := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		keys = append(keys, f.Key)
	}
	return NewSubmission[T](d.Failure, policy, keys...)
}

// Fragments renders the state's last settlement.
func (d Definition[T]) Fragments(s Submission[T]) []widgets.Fragment {
	return core.RenderResult(s.Lifecycle, d.View)
}
