package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/chris/timely/internal/api"
	"github.com/chris/timely/internal/discord"
	"github.com/chris/timely/internal/prompt"
	"github.com/chris/timely/internal/scheduler"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, plus the Discord bot and check-in scheduler when configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return serve(cmd.Context(), a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg := a.cfg
	log.Printf("starting Timely %s (provider %s, llm ready: %v)", version, cfg.LLMProvider, a.agent.Ready())

	var dmSend func(userID, content string) error
	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(cfg.DiscordToken, a.agent, a.db)
		if err != nil {
			return fmt.Errorf("starting Discord bot: %w", err)
		}
		defer bot.Close()
		dmSend = bot.SendDM
	}

	if cfg.CheckInCron != "" && (dmSend != nil || cfg.DiscordWebhook != "") {
		sched := scheduler.New(a.db, a.agent, cfg.DiscordWebhook, dmSend)
		if err := sched.Schedule(prompt.IntentMorningCheckin, cfg.CheckInCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewRouter(api.Deps{
			Agent:   a.agent,
			DB:      a.db,
			Config:  cfg,
			Version: version,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	// Start server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for signal or server error.
	select {
	case <-ctx.Done():
		log.Println("shutting down.")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
