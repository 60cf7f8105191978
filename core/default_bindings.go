package core

import "strings"

// Tab scopes. Form tabs share "tab:" as a prefix so bindings can target all of them.
const (
	ScopeChat     = "tab:chat"
	ScopeListing  = "tab:listing"
	ScopeBudget   = "tab:budget"
	ScopeContract = "tab:contract"
	ScopeCommand  = "screen:command"
)

func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"ctrl+q"}, Action: "quit", Description: "quit", Scopes: []string{"*"}},
		{Keys: []string{"ctrl+k"}, Action: "open-command-palette", Description: "commands", Scopes: []string{"tab:*"}},
		{Keys: []string{"ctrl+s"}, Action: "submit", Description: "submit", Scopes: []string{"tab:*"}},
		{Keys: []string{"enter"}, Action: "submit-line", Description: "send", Scopes: []string{"tab:*"}, Hidden: true},
		{Keys: []string{"tab"}, Action: "next-field", Description: "next field", Scopes: []string{ScopeListing, ScopeBudget, ScopeContract}},
		{Keys: []string{"shift+tab"}, Action: "prev-field", Description: "prev field", Scopes: []string{ScopeListing, ScopeBudget, ScopeContract}, Hidden: true},
		{Keys: []string{"ctrl+r"}, Action: "reset-form", Description: "reset", Scopes: []string{"tab:*"}},
		{Keys: []string{"pgup"}, Action: "scroll-up", Description: "scroll", Scopes: []string{ScopeChat}},
		{Keys: []string{"pgdown"}, Action: "scroll-down", Description: "scroll", Scopes: []string{ScopeChat}, Hidden: true},
		{Keys: []string{"f1", "alt+1"}, Action: "switch-tab-1", Description: "chat", Scopes: []string{"*"}},
		{Keys: []string{"f2", "alt+2"}, Action: "switch-tab-2", Description: "listing", Scopes: []string{"*"}},
		{Keys: []string{"f3", "alt+3"}, Action: "switch-tab-3", Description: "budget", Scopes: []string{"*"}},
		{Keys: []string{"f4", "alt+4"}, Action: "switch-tab-4", Description: "contract", Scopes: []string{"*"}},
		{Keys: []string{"ctrl+n"}, Action: "next-tab", Description: "next tab", Scopes: []string{"tab:*"}, Hidden: true},
		{Keys: []string{"esc"}, Action: "close", Description: "close", Scopes: []string{ScopeCommand}},
		{Keys: []string{"enter"}, Action: "select", Description: "run", Scopes: []string{ScopeCommand}},
	}
}

func DefaultKeybindingsByAction(bindings []KeyBinding) map[string][]string {
	out := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		if strings.TrimSpace(b.Action) == "" || len(b.Keys) == 0 {
			continue
		}
		if _, exists := out[b.Action]; exists {
			continue
		}
		out[b.Action] = append([]string(nil), b.Keys...)
	}
	return out
}

// ApplyActionKeybindings replaces the keys of every binding whose action has
// an override. Empty overrides are ignored.
func ApplyActionKeybindings(bindings []KeyBinding, actionKeys map[string][]string) []KeyBinding {
	overrides := make(map[string][]string, len(actionKeys))
	for action, keys := range actionKeys {
		overrides[NormalizeAction(action)] = keys
	}
	out := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		next := KeyBinding{
			Keys:        append([]string(nil), b.Keys...),
			Action:      b.Action,
			Description: b.Description,
			Scopes:      append([]string(nil), b.Scopes...),
			Hidden:      b.Hidden,
		}
		if keys, ok := overrides[b.Action]; ok && len(keys) > 0 {
			next.Keys = append([]string(nil), keys...)
		}
		out = append(out, next)
	}
	return out
}

// NormalizeAction maps a configured action name to its binding name. Viper
// lowercases keys and config files tend to use underscores.
func NormalizeAction(action string) string {
	return strings.ReplaceAll(strings.ToLower(action), "_", "-")
}
