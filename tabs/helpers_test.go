package tabs

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/agent"
)

// collect runs cmd and any batched commands, skipping nil messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func newModel(tabs ...core.Tab) core.Model {
	return core.NewModel(tabs, core.NewKeyRegistry(core.DefaultKeyBindings()), core.NewCommandRegistry(nil))
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	ctrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	tabK  = tea.KeyMsg{Type: tea.KeyTab}
)

// deliver feeds every message to tab, the way core.Model routes them.
func deliver(m *core.Model, tab core.Tab, msgs []tea.Msg) {
	for _, msg := range msgs {
		tab.Update(m, msg)
	}
}

// settlements picks the settlement messages out of msgs.
func settlements[T any](msgs []tea.Msg) []core.SettledMsg[T] {
	var out []core.SettledMsg[T]
	for _, msg := range msgs {
		if s, ok := msg.(core.SettledMsg[T]); ok {
			out = append(out, s)
		}
	}
	return out
}

type fakeAgent struct {
	mu       sync.Mutex
	queries  []agent.QueryRequest
	listings []agent.ListingRequest
	budgets  []agent.BudgetRequest
	reviews  []agent.ContractRequest

	answer agent.Answer
	advice agent.Advice
	review agent.Review
	err    error
}

func (f *fakeAgent) Query(ctx context.Context, req agent.QueryRequest) (agent.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, req)
	return f.answer, f.err
}

// ProductListing echoes the product name as the title so overlapping replies
// can be told apart.
func (f *fakeAgent) ProductListing(ctx context.Context, req agent.ListingRequest) (agent.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listings = append(f.listings, req)
	return agent.Listing{Title: req.ProductName, BulletPoints: req.KeyFeatures}, f.err
}

func (f *fakeAgent) Budget(ctx context.Context, req agent.BudgetRequest) (agent.Advice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.budgets = append(f.budgets, req)
	return f.advice, f.err
}

func (f *fakeAgent) ContractReview(ctx context.Context, req agent.ContractRequest) (agent.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reviews = append(f.reviews, req)
	return f.review, f.err
}
