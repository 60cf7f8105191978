package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/agentdesk/app"
	"github.com/jask/agentdesk/internal/agent"
	"github.com/jask/agentdesk/internal/config"
	"github.com/jask/agentdesk/internal/logging"
	"github.com/jask/agentdesk/internal/stub"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	baseURL    string
	policy     string
}

func (g *globalFlags) load() (config.Config, error) {
	return g.loadWith(config.LoadFile)
}

// loadWith reads config through loader, then applies the flag overrides.
func (g *globalFlags) loadWith(loader func(path string) (config.Config, error)) (config.Config, error) {
	cfg, err := loader(g.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if g.baseURL != "" {
		cfg.Agent.BaseURL = g.baseURL
	}
	if g.policy != "" {
		cfg.Submit.Policy = strings.ToLower(strings.TrimSpace(g.policy))
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRoot() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "agentdesk",
		Short:         "Terminal front end for the business agent backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(g)
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default ~/.config/agentdesk/config.toml)")
	root.PersistentFlags().StringVar(&g.baseURL, "base-url", "", "agent backend base URL")
	root.PersistentFlags().StringVar(&g.policy, "policy", "", "overlapping submit policy: latest or last-settled")

	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Run the four-tab TUI (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runTUI(g)
			},
		},
		submitCmd(g),
		stubCmd(g),
		configCmd(g),
	)
	return root
}

func newClient(cfg config.Config, logger *slog.Logger) *agent.Client {
	return agent.New(cfg.Agent.BaseURL, agent.WithTimeout(cfg.Agent.Timeout), agent.WithLogger(logger))
}

func runTUI(g *globalFlags) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, closer, err := logging.OpenFile(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting", "base_url", cfg.Agent.BaseURL, "policy", cfg.Submit.Policy)
	m := app.NewModel(newClient(cfg, logger), cfg, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func stubCmd(g *globalFlags) *cobra.Command {
	var (
		addr    string
		latency time.Duration
	)
	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve the placeholder agent backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Stub.Addr = addr
			}
			if cmd.Flags().Changed("latency") {
				cfg.Stub.Latency = latency
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)

			srv, err := stub.New(stub.Options{Latency: cfg.Stub.Latency, Logger: logger})
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, &http.Server{Addr: cfg.Stub.Addr, Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}, logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides stub.addr)")
	cmd.Flags().DurationVar(&latency, "latency", 0, "delay every reply (overrides stub.latency)")
	return cmd
}

func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("stub listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("stub: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("stub shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
