package core

import (
	"errors"
	"testing"

	"github.com/jask/agentdesk/widgets"
)

type review struct {
	Flags       []string
	Explanation string
	Err         string
}

var reviewView = ResultView[review]{
	PayloadError: func(r review) string { return r.Err },
	Fields: func(r review) []widgets.Fragment {
		return []widgets.Fragment{widgets.List("Flags", r.Flags), widgets.Field("Explanation", r.Explanation)}
	},
}

func settled(o Outcome[review]) Lifecycle[review] {
	l, tok := NewLifecycle[review]("Error fetching contract review.", PolicyLatest).Begin()
	o.Token = tok
	l, _ = l.Settle(o)
	return l
}

func TestRenderResultFields(t *testing.T) {
	got := RenderResult(settled(Outcome[review]{Payload: review{Flags: []string{"a", "b"}, Explanation: "ok"}}), reviewView)
	if len(got) != 2 || got[0].Kind != widgets.FragmentList || got[1].Text != "ok" {
		t.Fatalf("unexpected fragments: %+v", got)
	}
}

func TestRenderResultPayloadErrorOnly(t *testing.T) {
	got := RenderResult(settled(Outcome[review]{Payload: review{Flags: []string{"a"}, Err: "quota exceeded"}}), reviewView)
	if len(got) != 1 || got[0].Kind != widgets.FragmentError || got[0].Text != "quota exceeded" {
		t.Fatalf("expected only the payload error, got %+v", got)
	}
}

func TestRenderResultFailure(t *testing.T) {
	got := RenderResult(settled(Outcome[review]{Err: errors.New("connection refused")}), reviewView)
	if len(got) != 1 || got[0].Text != "Error fetching contract review." {
		t.Fatalf("expected fixed failure text, got %+v", got)
	}
}

func TestRenderResultIdle(t *testing.T) {
	if got := RenderResult(NewLifecycle[review]("x", PolicyLatest), reviewView); got != nil {
		t.Fatalf("idle should render nothing, got %+v", got)
	}
}

func TestTriggerLabel(t *testing.T) {
	l := NewLifecycle[review]("x", PolicyLatest)
	if label, busy := TriggerLabel(l, "Review Contract", "Reviewing..."); label != "Review Contract" || busy {
		t.Fatalf("idle trigger = %q busy=%v", label, busy)
	}
	l, _ = l.Begin()
	if label, busy := TriggerLabel(l, "Review Contract", "Reviewing..."); label != "Reviewing..." || !busy {
		t.Fatalf("pending trigger = %q busy=%v", label, busy)
	}
}
