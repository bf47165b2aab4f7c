package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/chris/timely/config"
	"github.com/chris/timely/internal/agent"
	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/prompt"
)

const (
	appName     = "Timely"
	maxBodySize = 1 << 20 // 1MB
)

type Deps struct {
	Agent   *agent.Agent
	DB      *db.DB
	Config  *config.Config
	Version string
	Now     func() time.Time // defaults to time.Now
}

// withTimeout bounds the provider call so a slow provider ends in a
// fallback answer rather than a gateway timeout.
func (d Deps) withTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	if d.Config.RequestTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), d.Config.RequestTimeout)
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// NewRouter mounts the service endpoints behind CORS and the usual chi
// middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", handleRoot(deps))
	r.Get("/health", handleHealth(deps))
	r.Get("/config", handleConfig(deps))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/next-task", handleChat(deps, prompt.IntentNextTask))
			r.Post("/plan-day", handleChat(deps, prompt.IntentDayPlan))
			r.Post("/morning-checkin", handleChat(deps, prompt.IntentMorningCheckin))
			r.Get("/test", handleChatTest(deps))
			r.Post("/quick-task", handleQuickTask(deps))
		})
		r.Get("/tasks", handleListTasks(deps))
		r.Post("/tasks/{id}/complete", handleCompleteTask(deps))
		r.Get("/check-ins", handleListCheckIns(deps))
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   deps.Config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func handleRoot(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "🚀 Timely AI Coach API",
			"version": deps.Version,
			"status":  "running",
			"health":  "/health",
		})
	}
}

func handleHealth(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":         "healthy",
			"timestamp":      deps.now().UTC().Format(time.RFC3339Nano),
			"app":            appName,
			"version":        deps.Version,
			"llm_configured": deps.Agent.Ready(),
			"llm_provider":   deps.Config.LLMProvider,
			"database":       db.Driver,
		}
		n, err := deps.DB.CountOpenTasks()
		if err != nil {
			body["status"] = "degraded"
			body["database_error"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		body["open_tasks"] = n
		writeJSON(w, http.StatusOK, body)
	}
}

// handleConfig reports which settings are present without exposing secrets.
func handleConfig(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := deps.Config
		writeJSON(w, http.StatusOK, map[string]any{
			"app_name":          appName,
			"debug_mode":        cfg.Debug,
			"llm_provider":      cfg.LLMProvider,
			"llm_model":         cfg.LLMModel,
			"has_openai_key":    cfg.OpenAIKey != "",
			"has_anthropic_key": cfg.AnthropicKey != "" || cfg.AnthropicToken != "",
			"cors_origins":      cfg.CORSOrigins,
			"check_in_cron":     cfg.CheckInCron,
			"discord_enabled":   cfg.DiscordToken != "",
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, format string, args ...any) {
	writeJSON(w, code, map[string]string{"detail": fmt.Sprintf(format, args...)})
}
