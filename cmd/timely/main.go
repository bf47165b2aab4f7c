package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chris/timely/config"
	"github.com/chris/timely/internal/agent"
	"github.com/chris/timely/internal/assistant"
	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/llm"
	"github.com/chris/timely/internal/prompt"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "timely",
		Short:         "AI productivity coach: what to do next, day plans and morning check-ins",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "show log output")

	root.AddCommand(
		newServeCmd(),
		newAskCmd("next [message]", "Suggest the one task to do next", prompt.IntentNextTask),
		newAskCmd("plan [message]", "Plan the rest of the day", prompt.IntentDayPlan),
		newAskCmd("morning", "Morning check-in greeting", prompt.IntentMorningCheckin),
		newTaskCmd(),
		newPrefsCmd(),
		newHistoryCmd(),
		newServiceCmd(),
	)
	return root
}

type app struct {
	cfg   *config.Config
	db    *db.DB
	agent *agent.Agent
}

// openApp wires config, store, provider and assistant. Without provider
// credentials the assistant runs on rule-based suggestions only.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg := config.Load()

	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose && !cfg.Debug && cmd.Name() != "serve" {
		log.SetOutput(io.Discard)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(cfg.Provider())
	if err != nil {
		log.Printf("llm: %v; using rule-based suggestions", err)
		client = nil
	}

	asst := assistant.New(client, assistant.WithDebug(cfg.Debug))
	return &app{cfg: cfg, db: database, agent: agent.New(database, asst)}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
