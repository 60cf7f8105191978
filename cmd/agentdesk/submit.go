package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/agent"
	"github.com/jask/agentdesk/internal/logging"
	"github.com/jask/agentdesk/tabs"
	"github.com/jask/agentdesk/widgets"
)

const chatQueryField = "query"

func submitCmd(g *globalFlags) *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:       "submit <chat|listing|budget|contract>",
		Short:     "Send one request and print the rendered result",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"chat", "listing", "budget", "contract"},
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFields(fields)
			if err != nil {
				return err
			}
			cfg, err := g.load()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
			client := newClient(cfg, logger)
			policy := core.ParsePolicy(cfg.Submit.Policy)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			out := cmd.OutOrStdout()
			switch args[0] {
			case "chat":
				return runChat(ctx, out, client, values)
			case "listing":
				return runForm(ctx, out, tabs.ListingDefinition(client), policy, values)
			case "budget":
				return runForm(ctx, out, tabs.BudgetDefinition(client, cfg.UI.CurrencySymbol), policy, values)
			case "contract":
				return runForm(ctx, out, tabs.ContractDefinition(client), policy, values)
			default:
				return fmt.Errorf("unknown screen %q", args[0])
			}
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "form value as name=value (repeatable)")
	return cmd
}

func parseFields(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--field %q: want name=value", kv)
		}
		out[name] = value
	}
	return out, nil
}

// runForm sends one request through the same form and lifecycle the tab uses.
func runForm[T any](ctx context.Context, w io.Writer, def tabs.Definition[T], policy core.Policy, values map[string]string) error {
	known := make([]string, 0, len(def.Fields))
	for _, f := range def.Fields {
		known = append(known, f.Key)
	}
	s := def.NewState(policy)
	for name, value := range values {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%s has no field %q (fields: %s)", def.ID, name, strings.Join(known, ", "))
		}
		s = s.Set(name, value)
	}
	s, token, _ := s.Begin()
	v, err := def.Call(ctx, s.Form)
	s, _ = s.Settle(core.Outcome[T]{Token: token, Payload: v, Err: err})
	return printFragments(w, def.Fragments(s))
}

func runChat(ctx context.Context, w io.Writer, client tabs.ChatClient, values map[string]string) error {
	for name := range values {
		if name != chatQueryField {
			return fmt.Errorf("chat has no field %q (fields: %s)", name, chatQueryField)
		}
	}
	s := tabs.NewChatState("").SetInput(values[chatQueryField])
	s, query, token, ok := s.Submit()
	if !ok {
		return fmt.Errorf("chat: --field %s=... must not be blank", chatQueryField)
	}
	ans, err := client.Query(ctx, agent.QueryRequest{Query: query})
	s = s.Settle(core.Outcome[agent.Answer]{Token: token, Payload: ans, Err: err})

	last := s.Log[len(s.Log)-1]
	frag := widgets.Field("Agent", last.Text)
	if last.IsError {
		frag = widgets.ErrorLine(last.Text)
	}
	return printFragments(w, []widgets.Fragment{frag})
}

func printFragments(w io.Writer, frags []widgets.Fragment) error {
	_, err := fmt.Fprint(w, widgets.PlainFragments(frags))
	return err
}
