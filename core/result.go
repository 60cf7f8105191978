package core

import "github.com/jask/agentdesk/widgets"

// ResultView describes how one screen projects its payload.
type ResultView[T any] struct {
	// PayloadError returns the error the backend reported inside a
	// successful reply, or "".
	PayloadError func(T) string
	// Fields lists the payload's declared fields in display order.
	Fields func(T) []widgets.Fragment
}

// RenderResult projects the last applied settlement into fragments. It reads
// the lifecycle and never changes it.
func RenderResult[T any](l Lifecycle[T], v ResultView[T]) []widgets.Fragment {
	if l.Failure != "" {
		return []widgets.Fragment{widgets.ErrorLine(l.Failure)}
	}
	if !l.HasPayload {
		return nil
	}
	if v.PayloadError != nil {
		if msg := v.PayloadError(l.Payload); msg != "" {
			return []widgets.Fragment{widgets.ErrorLine(msg)}
		}
	}
	if v.Fields == nil {
		return nil
	}
	return v.Fields(l.Payload)
}

// TriggerLabel is the submit control's label and whether it is disabled.
func TriggerLabel[T any](l Lifecycle[T], idle, busy string) (string, bool) {
	if l.Pending() {
		return busy, true
	}
	return idle, false
}
