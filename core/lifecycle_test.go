package core

import (
	"context"
	"errors"
	"testing"
)

func TestLifecycleSucceeds(t *testing.T) {
	l := NewLifecycle[string]("boom", PolicyLatest)
	if l.Phase != PhaseIdle || l.Settled() {
		t.Fatalf("new lifecycle should be idle with nothing to show")
	}
	l, tok := l.Begin()
	if l.Phase != PhasePending || tok != 1 {
		t.Fatalf("begin: phase=%s token=%d", l.Phase, tok)
	}
	l, applied := l.Settle(Outcome[string]{Token: tok, Payload: "done"})
	if !applied || l.Phase != PhaseSucceeded || l.Payload != "done" {
		t.Fatalf("settle: applied=%v phase=%s payload=%q", applied, l.Phase, l.Payload)
	}
}

func TestLifecycleFailureUsesFixedText(t *testing.T) {
	l, tok := NewLifecycle[string]("Error fetching budget advice.", PolicyLatest).Begin()
	l, _ = l.Settle(Outcome[string]{Token: tok, Err: errors.New("dial tcp: connection refused")})
	if l.Phase != PhaseFailed {
		t.Fatalf("phase = %s, want failed", l.Phase)
	}
	if l.Failure != "Error fetching budget advice." {
		t.Fatalf("failure text = %q", l.Failure)
	}
	if l.HasPayload {
		t.Fatalf("failure should drop the previous payload")
	}
}

func TestLifecycleKeepsResultWhilePending(t *testing.T) {
	l, tok := NewLifecycle[string]("x", PolicyLatest).Begin()
	l, _ = l.Settle(Outcome[string]{Token: tok, Payload: "first"})
	l, _ = l.Begin()
	if !l.Pending() || l.Payload != "first" {
		t.Fatalf("previous result should stay visible while pending")
	}
}

// Two submits where the second settles first.
func TestLifecycleOverlapPolicies(t *testing.T) {
	cases := []struct {
		name   string
		policy Policy
		want   string
	}{
		{name: "latest", policy: PolicyLatest, want: "second"},
		{name: "last settled", policy: PolicyLastSettled, want: "first"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLifecycle[string]("x", tc.policy)
			l, t1 := l.Begin()
			l, t2 := l.Begin()
			l, _ = l.Settle(Outcome[string]{Token: t2, Payload: "second"})
			l, _ = l.Settle(Outcome[string]{Token: t1, Payload: "first"})
			if l.Payload != tc.want {
				t.Fatalf("payload = %q, want %q", l.Payload, tc.want)
			}
			if l.Phase != PhaseSucceeded {
				t.Fatalf("phase = %s", l.Phase)
			}
		})
	}
}

func TestLifecycleRejectsUnissuedTokens(t *testing.T) {
	l := NewLifecycle[string]("x", PolicyLastSettled)
	if _, applied := l.Settle(Outcome[string]{Token: 0, Payload: "zero"}); applied {
		t.Fatalf("token 0 is never issued")
	}
	l, _ = l.Begin()
	if _, applied := l.Settle(Outcome[string]{Token: 7, Payload: "future"}); applied {
		t.Fatalf("future token should be discarded")
	}
}

func TestLifecycleClear(t *testing.T) {
	l, tok := NewLifecycle[string]("x", PolicyLatest).Begin()
	l, _ = l.Settle(Outcome[string]{Token: tok, Payload: "shown"})
	l = l.Clear()
	if l.Settled() || l.Phase != PhaseIdle {
		t.Fatalf("clear should return to idle with nothing shown")
	}
	l, tok = l.Begin()
	l = l.Clear()
	if !l.Pending() || l.Token != tok {
		t.Fatalf("clear must not forget an in-flight request")
	}
}

func TestSubmitTagsOutcome(t *testing.T) {
	cmd := Submit(context.Background(), "listing", 3, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	msg, ok := cmd().(SettledMsg[int])
	if !ok {
		t.Fatalf("unexpected message type %T", cmd())
	}
	if msg.TargetTab() != "listing" || msg.Outcome.Token != 3 || msg.Outcome.Payload != 42 {
		t.Fatalf("unexpected settlement: %+v", msg)
	}
}

func TestParsePolicy(t *testing.T) {
	if ParsePolicy("Last-Settled") != PolicyLastSettled {
		t.Fatalf("expected last-settled")
	}
	if ParsePolicy("") != PolicyLatest || ParsePolicy("latest") != PolicyLatest {
		t.Fatalf("expected latest default")
	}
	if PolicyLastSettled.String() != "last-settled" {
		t.Fatalf("String() = %q", PolicyLastSettled.String())
	}
}
