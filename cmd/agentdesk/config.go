package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jask/agentdesk/core"
	"github.com/jask/agentdesk/internal/config"
)

func configCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Write the effective settings to the config file",
		Long: `Write the effective settings to the config file.

Values come from the existing file, AGENTDESK_* env vars and the --base-url
and --policy flags. Key bindings not yet in the file are written with their
defaults so they can be edited in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadWith(config.LoadOrDefaults)
			if err != nil {
				return err
			}
			cfg.Keys = withDefaultKeys(cfg.Keys)
			path, err := config.Save(cfg, g.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	})
	return cmd
}

// withDefaultKeys fills in every action missing from keys with its default binding.
func withDefaultKeys(keys map[string][]string) map[string][]string {
	out := core.DefaultKeybindingsByAction(core.DefaultKeyBindings())
	for action, k := range keys {
		if len(k) > 0 {
			out[core.NormalizeAction(action)] = k
		}
	}
	return out
}
