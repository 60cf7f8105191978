package tabs

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/agent"
	"github.com/jask/agentdesk/widgets"
)

const (
	ChatFailure   = "Sorry, there was an error processing your request."
	ChatGreeting  = "Hello! How can I assist you today?"
	chatSendLabel = "Send"
)

type Origin int

const (
	OriginAgent Origin = iota
	OriginUser
)

// Entry is one line of the conversation. Entries are never changed once appended.
type Entry struct {
	Origin  Origin
	Text    string
	IsError bool
}

type ChatClient interface {
	Query(ctx context.Context, req agent.QueryRequest) (agent.Answer, error)
}

// ChatState is the conversation and its request lifecycle. Sends may
// overlap; every reply is appended in the order it arrives.
type ChatState struct {
	Input     string
	Log       []Entry
	Lifecycle core.Lifecycle[agent.Answer]
	waiting   int
}

func NewChatState(greeting string) ChatState {
	if greeting == "" {
		greeting = ChatGreeting
	}
	return ChatState{
		Log:       []Entry{{Origin: OriginAgent, Text: greeting}},
		Lifecycle: core.NewLifecycle[agent.Answer](ChatFailure, core.PolicyLastSettled),
	}
}

func (s ChatState) SetInput(v string) ChatState {
	s.Input = v
	return s
}

func (s ChatState) appendEntry(e Entry) ChatState {
	s.Log = append(slices.Clip(s.Log), e)
	return s
}

// Submit appends the user's entry and clears the input. Whitespace-only input
// is ignored. The returned query is the input exactly as typed.
func (s ChatState) Submit() (ChatState, string, uint64, bool) {
	if strings.TrimSpace(s.Input) == "" {
		return s, "", 0, false
	}
	query := s.Input
	s = s.appendEntry(Entry{Origin: OriginUser, Text: query})
	s.Input = ""
	var token uint64
	s.Lifecycle, token = s.Lifecycle.Begin()
	s.waiting++
	return s, query, token, true
}

// Settle appends the agent's reply, the reported error, or the failure text.
func (s ChatState) Settle(o core.Outcome[agent.Answer]) ChatState {
	next, applied := s.Lifecycle.Settle(o)
	if !applied {
		return s
	}
	s.Lifecycle = next
	s.waiting = max(0, s.waiting-1)
	switch {
	case s.Lifecycle.Failure != "":
		return s.appendEntry(Entry{Origin: OriginAgent, Text: s.Lifecycle.Failure, IsError: true})
	case o.Payload.Error != "":
		return s.appendEntry(Entry{Origin: OriginAgent, Text: o.Payload.Error, IsError: true})
	default:
		return s.appendEntry(Entry{Origin: OriginAgent, Text: o.Payload.Text})
	}
}

// Waiting is the number of sends without a reply yet.
func (s ChatState) Waiting() int { return s.waiting }

// ChatTab is the support chat screen.
type ChatTab struct {
	client   ChatClient
	greeting string
	state    ChatState
	input    textinput.Model
	log      viewport.Model
	shown    int
	spin     spinner.Model
	ticking  bool
	logger   *slog.Logger
}

func NewChatTab(client ChatClient, greeting string, opts Options) *ChatTab {
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = "Type your message..."
	in.Focus()
	return &ChatTab{
		client:   client,
		greeting: greeting,
		state:    NewChatState(greeting),
		input:    in,
		log:      viewport.New(80, 20),
		spin:     spinner.New(spinner.WithSpinner(spinner.Ellipsis)),
		logger:   opts.logger().With("tab", "chat"),
	}
}

func (t *ChatTab) ID() string    { return "chat" }
func (t *ChatTab) Title() string { return "Chat" }
func (t *ChatTab) Scope() string { return core.ScopeChat }

func (t *ChatTab) State() ChatState { return t.state }

func (t *ChatTab) InitTab(m *core.Model) tea.Cmd {
	return textinput.Blink
}

func (t *ChatTab) FocusTab() tea.Cmd { return t.input.Focus() }

func (t *ChatTab) InFlight() bool { return t.state.Waiting() > 0 }

func (t *ChatTab) CanSubmit() (bool, string) {
	if strings.TrimSpace(t.state.Input) == "" {
		return false, "type a message first"
	}
	return true, ""
}

// HasResult reports whether the log holds more than the greeting.
func (t *ChatTab) HasResult() bool { return len(t.state.Log) > 1 }

func (t *ChatTab) ClearResult(m *core.Model) {
	waiting := t.state.waiting
	lc := t.state.Lifecycle
	t.state = NewChatState(t.greeting)
	t.state.Lifecycle = lc
	t.state.waiting = waiting
	m.SetStatus("Chat: conversation cleared")
}

func (t *ChatTab) ResetInput(m *core.Model) tea.Cmd {
	t.state = t.state.SetInput("")
	t.input.SetValue("")
	return nil
}

func (t *ChatTab) Submit(m *core.Model) tea.Cmd {
	next, query, token, ok := t.state.Submit()
	if !ok {
		return nil
	}
	t.state = next
	t.input.SetValue("")
	m.SetStatus("Chat: sending")
	client := t.client
	return tea.Batch(
		core.Submit(context.Background(), t.ID(), token, func(ctx context.Context) (agent.Answer, error) {
			return client.Query(ctx, agent.QueryRequest{Query: query})
		}),
		t.startSpinner(),
	)
}

func (t *ChatTab) startSpinner() tea.Cmd {
	if t.ticking {
		return nil
	}
	t.ticking = true
	return core.ForTab(t.ID(), t.spin.Tick)
}

func (t *ChatTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.SettledMsg[agent.Answer]:
		t.state = t.state.Settle(msg.Outcome)
		if msg.Outcome.Err != nil {
			t.logger.Warn("query failed", "token", msg.Outcome.Token, "error", msg.Outcome.Err)
			m.SetError(failureStatus("Chat"))
		} else {
			m.SetStatus("Chat: reply received")
		}
		return nil
	case core.TabMsg:
		if tick, ok := msg.Msg.(spinner.TickMsg); ok {
			if t.state.Waiting() == 0 {
				t.ticking = false
				return nil
			}
			var cmd tea.Cmd
			t.spin, cmd = t.spin.Update(tick)
			return core.ForTab(t.ID(), cmd)
		}
		return nil
	case tea.KeyMsg:
		keys, scope := m.Keys(), t.Scope()
		switch {
		case keys.IsAction(msg, "submit", scope), keys.IsAction(msg, "submit-line", scope):
			return t.Submit(m)
		case keys.IsAction(msg, "reset-form", scope):
			return t.ResetInput(m)
		case keys.IsAction(msg, "scroll-up", scope):
			t.log.HalfViewUp()
			return nil
		case keys.IsAction(msg, "scroll-down", scope):
			t.log.HalfViewDown()
			return nil
		}
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	if v := t.input.Value(); v != t.state.Input {
		t.state = t.state.SetInput(v)
	}
	return cmd
}

func (t *ChatTab) Build(m *core.Model) widgets.Widget {
	label := chatSendLabel
	if k := m.Keys().KeyFor("submit-line", t.Scope()); k != "" {
		label += " (" + k + ")"
	}
	return widgets.VStack{
		Widgets: []widgets.Widget{
			widgets.Pane{Title: "Customer Support", Body: chatLog{tab: t}},
			widgets.Pane{Title: label, Focused: true, Body: chatInput{tab: t}},
		},
		Heights: []int{0, 3},
	}
}

type chatLog struct{ tab *ChatTab }

// Render follows the newest entry unless the user has scrolled up.
func (c chatLog) Render(width, height int) string {
	t := c.tab
	bubbles := make([]widgets.Bubble, 0, len(t.state.Log)+1)
	for _, e := range t.state.Log {
		bubbles = append(bubbles, widgets.Bubble{Text: e.Text, FromMe: e.Origin == OriginUser, IsError: e.IsError})
	}
	if t.state.Waiting() > 0 {
		bubbles = append(bubbles, widgets.Bubble{Text: "typing" + t.spin.View()})
	}
	follow := t.log.AtBottom() || len(bubbles) != t.shown
	t.shown = len(bubbles)
	t.log.Width = width
	t.log.Height = height
	t.log.SetContent(widgets.RenderConversation(bubbles, width))
	if follow {
		t.log.GotoBottom()
	}
	return t.log.View()
}

type chatInput struct{ tab *ChatTab }

func (c chatInput) Render(width, height int) string {
	c.tab.input.Width = max(1, width-3)
	return c.tab.input.View()
}

func failureStatus(title string) error {
	return errors.New(title + ": request failed, see log for details")
}
