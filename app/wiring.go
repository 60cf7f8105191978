// Package app assembles the tabs, keys and commands into a runnable model.
package app

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/config"
	"github.com/jask/agentdesk/screens"
	"github.com/jask/agentdesk/tabs"
)

// Client is everything the four tabs need from the agent backend.
type Client interface {
	tabs.ChatClient
	tabs.ListingClient
	tabs.BudgetClient
	tabs.ContractClient
}

func Tabs(client Client, cfg config.Config, logger *slog.Logger) []core.Tab {
	opts := tabs.Options{Policy: core.ParsePolicy(cfg.Submit.Policy), Logger: logger}
	return []core.Tab{
		tabs.NewChatTab(client, cfg.UI.Greeting, opts),
		tabs.NewListingTab(client, opts),
		tabs.NewBudgetTab(client, cfg.UI.CurrencySymbol, opts),
		tabs.NewContractTab(client, opts),
	}
}

// NewModel builds the full TUI model from config.
func NewModel(client Client, cfg config.Config, logger *slog.Logger) core.Model {
	keys := core.NewKeyRegistry(core.ApplyActionKeybindings(core.DefaultKeyBindings(), cfg.Keys))
	m := core.NewModel(
		Tabs(client, cfg, logger),
		keys,
		core.NewCommandRegistry(nil),
	)
	ConfigureModel(&m)
	return m
}

func ConfigureModel(m *core.Model) {
	if m == nil {
		return
	}
	m.OpenCommandModal = func(model *core.Model, scope string) core.Screen {
		return screens.NewPalette(model, scope)
	}
	RegisterCommands(m.CommandRegistry(), m.Tabs())
}

func RegisterCommands(reg *core.CommandRegistry, all []core.Tab) {
	reg.Register(core.Command{
		ID:          "submit",
		Name:        "Submit",
		Description: "Send the current form to the agent",
		Scopes:      []string{"tab:*"},
		Execute: func(m *core.Model) tea.Cmd {
			if s, ok := m.ActiveTab().(core.Submitter); ok {
				return s.Submit(m)
			}
			return nil
		},
		Disabled: func(m *core.Model) (bool, string) {
			s, ok := m.ActiveTab().(core.Submitter)
			if !ok {
				return true, "nothing to submit here"
			}
			can, reason := s.CanSubmit()
			return !can, reason
		},
	})
	reg.Register(core.Command{
		ID:          "reset-form",
		Name:        "Reset form",
		Description: "Clear every input on this tab",
		Scopes:      []string{"tab:*"},
		Execute: func(m *core.Model) tea.Cmd {
			if r, ok := m.ActiveTab().(core.Resetter); ok {
				return r.ResetInput(m)
			}
			return nil
		},
		Disabled: func(m *core.Model) (bool, string) {
			if _, ok := m.ActiveTab().(core.Resetter); !ok {
				return true, "no form here"
			}
			return false, ""
		},
	})
	reg.Register(core.Command{
		ID:          "clear-result",
		Name:        "Clear result",
		Description: "Remove the shown reply",
		Scopes:      []string{"tab:*"},
		Execute: func(m *core.Model) tea.Cmd {
			if c, ok := m.ActiveTab().(core.ResultClearer); ok {
				c.ClearResult(m)
			}
			return nil
		},
		Disabled: func(m *core.Model) (bool, string) {
			c, ok := m.ActiveTab().(core.ResultClearer)
			if !ok || !c.HasResult() {
				return true, "no result to clear"
			}
			return false, ""
		},
	})
	for i, t := range all {
		index, title := i, t.Title()
		reg.Register(core.Command{
			ID:          "switch-" + t.ID(),
			Name:        "Switch to " + title,
			Description: fmt.Sprintf("Activate the %s tab", title),
			Scopes:      []string{"*"},
			Execute: func(m *core.Model) tea.Cmd {
				cmd := m.SwitchTab(index)
				return tea.Batch(cmd, core.StatusCmd(title))
			},
		})
	}
}
