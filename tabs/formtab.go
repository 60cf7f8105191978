package tabs

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/widgets"
)

// Options carries the settings every tab shares.
type Options struct {
	Policy core.Policy
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// formTab drives one Definition: it owns the inputs, the busy spinner and the
// Submission state.
type formTab[T any] struct {
	def     Definition[T]
	state   Submission[T]
	form    *Form
	spin    spinner.Model
	ticking bool
	logger  *slog.Logger
}

func newFormTab[T any](def Definition[T], opts Options) *formTab[T] {
	return &formTab[T]{
		def:    def,
		state:  def.NewState(opts.Policy),
		form:   NewForm(def.Fields...),
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		logger: opts.logger().With("tab", def.ID),
	}
}

func (t *formTab[T]) ID() string    { return t.def.ID }
func (t *formTab[T]) Title() string { return t.def.Title }
func (t *formTab[T]) Scope() string { return t.def.Scope }

// State returns the tab's current submission state.
func (t *formTab[T]) State() Submission[T] { return t.state }

func (t *formTab[T]) FocusTab() tea.Cmd {
	return t.form.Focus()
}

func (t *formTab[T]) InFlight() bool { return t.state.Lifecycle.Pending() }

func (t *formTab[T]) CanSubmit() (bool, string) {
	if _, _, ok := t.state.Begin(); !ok {
		return false, "request in progress"
	}
	return true, ""
}

func (t *formTab[T]) HasResult() bool { return t.state.Lifecycle.Settled() }

func (t *formTab[T]) Submit(m *core.Model) tea.Cmd {
	next, token, ok := t.state.Begin()
	if !ok {
		m.SetStatus("request in progress")
		return nil
	}
	superseded := t.state.Lifecycle.Pending()
	t.state = next
	form := t.state.Form
	call := t.def.Call
	t.logger.Debug("submit", "token", token, "superseded", superseded)
	if superseded && t.state.Lifecycle.Policy() == core.PolicyLatest {
		m.SetStatus(t.def.Title + ": resubmitted, the earlier reply will be ignored")
	} else {
		m.SetStatus(t.def.Title + ": " + t.def.Busy)
	}
	return tea.Batch(
		core.Submit(context.Background(), t.def.ID, token, func(ctx context.Context) (T, error) {
			return call(ctx, form)
		}),
		t.startSpinner(),
	)
}

func (t *formTab[T]) ResetInput(m *core.Model) tea.Cmd {
	t.state = t.state.Reset()
	t.form.Load(t.state.Form)
	m.SetStatus(t.def.Title + ": form cleared")
	return nil
}

func (t *formTab[T]) ClearResult(m *core.Model) {
	t.state = t.state.ClearResult()
	m.SetStatus(t.def.Title + ": result cleared")
}

func (t *formTab[T]) startSpinner() tea.Cmd {
	if t.ticking {
		return nil
	}
	t.ticking = true
	return core.ForTab(t.def.ID, t.spin.Tick)
}

func (t *formTab[T]) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.SettledMsg[T]:
		t.settle(m, msg.Outcome)
		return nil
	case core.TabMsg:
		if tick, ok := msg.Msg.(spinner.TickMsg); ok {
			if !t.state.Lifecycle.Pending() {
				t.ticking = false
				return nil
			}
			var cmd tea.Cmd
			t.spin, cmd = t.spin.Update(tick)
			return core.ForTab(t.def.ID, cmd)
		}
		return nil
	case tea.KeyMsg:
		keys, scope := m.Keys(), t.def.Scope
		switch {
		case keys.IsAction(msg, "submit", scope):
			return t.Submit(m)
		case keys.IsAction(msg, "submit-line", scope) && !t.form.FocusedMultiline():
			return t.Submit(m)
		case keys.IsAction(msg, "next-field", scope):
			return t.form.Next()
		case keys.IsAction(msg, "prev-field", scope):
			return t.form.Prev()
		case keys.IsAction(msg, "reset-form", scope):
			return t.ResetInput(m)
		}
	}
	key, value, cmd := t.form.Update(msg)
	if key != "" && value != t.state.Form.Get(key) {
		t.state = t.state.Set(key, value)
	}
	return cmd
}

func (t *formTab[T]) settle(m *core.Model, o core.Outcome[T]) {
	stale := t.state.Stale(o.Token)
	next, applied := t.state.Settle(o)
	if !applied {
		t.logger.Debug("discarded stale reply", "token", o.Token, "latest", t.state.Lifecycle.Token)
		return
	}
	t.state = next
	switch {
	case o.Err != nil:
		t.logger.Warn("request failed", "token", o.Token, "error", o.Err)
		m.SetError(failureStatus(t.def.Title))
	case stale:
		m.SetStatus(t.def.Title + ": earlier reply arrived and replaced the result")
	default:
		m.SetStatus(t.def.Title + ": done")
	}
}

func (t *formTab[T]) trigger(m *core.Model) widgets.Trigger {
	label, busy := core.TriggerLabel(t.state.Lifecycle, t.def.Idle, t.def.Busy)
	tr := widgets.Trigger{Label: label, Busy: busy}
	if busy {
		tr.Spinner = t.spin.View()
	}
	if k := m.Keys().KeyFor("submit", t.def.Scope); k != "" {
		tr.Hint = k
	}
	return tr
}

func (t *formTab[T]) formPane(m *core.Model) widgets.Widget {
	return widgets.Pane{Title: t.def.Title, Focused: true, Body: formBody{form: t.form, trigger: t.trigger(m)}}
}

func (t *formTab[T]) resultPane() widgets.Widget {
	return widgets.Pane{Title: "Result", Body: widgets.Result{Fragments: t.def.Fragments(t.state), Empty: t.def.Empty}}
}

func (t *formTab[T]) Build(m *core.Model) widgets.Widget {
	return widgets.HStack{
		Widgets: []widgets.Widget{t.formPane(m), t.resultPane()},
		Ratios:  []float64{0.45, 0.55},
		Gap:     1,
	}
}

// formBody stacks the inputs above the trigger.
type formBody struct {
	form    *Form
	trigger widgets.Trigger
}

func (b formBody) Render(width, height int) string {
	inputs := b.form.View(width, max(1, height-2))
	return widgets.VStack{
		Widgets: []widgets.Widget{widgets.Text(inputs), b.trigger},
		Heights: []int{max(1, height-2), 0},
		Spacing: 1,
	}.Render(width, height)
}
