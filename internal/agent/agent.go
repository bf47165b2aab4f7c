// Package agent connects the assistant to the task store. It builds a user
// context from stored tasks and preferences, runs one assistant intent and
// records the result in the check-in history.
package agent

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/chris/timely/internal/assistant"
	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/domain"
	"github.com/chris/timely/internal/prompt"
)

type Agent struct {
	db        *db.DB
	assistant *assistant.Assistant
	now       func() time.Time
}

func New(database *db.DB, asst *assistant.Assistant) *Agent {
	return &Agent{db: database, assistant: asst, now: time.Now}
}

// Ready reports whether the assistant will call a provider.
func (a *Agent) Ready() bool { return a.assistant.Ready() }

// Run answers message for intent using the stored tasks and preferences.
func (a *Agent) Run(ctx context.Context, intent prompt.Intent, message string) (domain.Result, error) {
	uc, err := a.Context(message)
	if err != nil {
		return domain.Result{}, err
	}
	return a.Dispatch(ctx, intent, uc), nil
}

// Dispatch runs intent against uc and records the result. Recording
// failures are logged; the result is returned either way.
func (a *Agent) Dispatch(ctx context.Context, intent prompt.Intent, uc domain.UserContext) domain.Result {
	var res domain.Result
	switch intent {
	case prompt.IntentDayPlan:
		res = a.assistant.PlanDay(ctx, uc)
	case prompt.IntentMorningCheckin:
		res = a.assistant.MorningCheckin(ctx, uc)
	default:
		intent = prompt.IntentNextTask
		res = a.assistant.NextTask(ctx, uc)
	}

	if _, err := a.db.RecordCheckIn(string(intent), res); err != nil {
		log.Printf("agent: recording %s: %v", intent, err)
	}
	log.Printf("agent: %s → %s (fallback=%v)", intent, truncate(oneLine(res.Response), 80), res.Fallback)
	return res
}

// ParseIntent maps free text from chat or the command line to an intent.
// "plan ..." plans the day with the remaining text as the request,
// "morning" or "good morning" is a check-in, anything else asks for the
// next task.
func ParseIntent(text string) (prompt.Intent, string) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch {
	case lower == "plan" || strings.HasPrefix(lower, "plan "):
		return prompt.IntentDayPlan, strings.TrimSpace(text[len("plan"):])
	case lower == "morning" || lower == "good morning" || lower == "checkin" || lower == "check-in":
		return prompt.IntentMorningCheckin, ""
	default:
		return prompt.IntentNextTask, text
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
