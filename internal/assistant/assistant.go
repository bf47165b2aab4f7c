// Package assistant turns a user context into a suggestion. It makes at most
// one provider call per request and answers from the rule-based generators
// in internal/fallback whenever that call cannot be made or fails.
package assistant

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/chris/timely/internal/domain"
	"github.com/chris/timely/internal/fallback"
	"github.com/chris/timely/internal/llm"
	"github.com/chris/timely/internal/prompt"
)

var errNotReady = errors.New("no provider configured")

type params struct {
	maxTokens   int
	temperature float64
}

func paramsFor(intent prompt.Intent) params {
	switch intent {
	case prompt.IntentNextTask:
		return params{maxTokens: 400, temperature: 0.7}
	case prompt.IntentDayPlan:
		return params{maxTokens: 600, temperature: 0.6}
	case prompt.IntentMorningCheckin:
		return params{maxTokens: 200, temperature: 0.8}
	default:
		return params{maxTokens: 400, temperature: 0.7}
	}
}

// Assistant is safe for concurrent use; it holds nothing that changes after New.
type Assistant struct {
	client llm.Client
	ready  bool
	now    func() time.Time
	debug  bool
}

type Option func(*Assistant)

// WithClock overrides the clock used for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// WithDebug logs estimated prompt sizes before each provider call.
func WithDebug(debug bool) Option {
	return func(a *Assistant) { a.debug = debug }
}

// New builds an Assistant. A nil client puts it in fallback-only mode.
func New(client llm.Client, opts ...Option) *Assistant {
	a := &Assistant{client: client, ready: client != nil, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ready reports whether a provider call will be attempted.
func (a *Assistant) Ready() bool { return a.ready }

func (a *Assistant) NextTask(ctx context.Context, uc domain.UserContext) domain.Result {
	req := llm.Request{
		System: prompt.System(prompt.IntentNextTask, uc.PersonalityMode),
		Prompt: prompt.NextTask(uc),
	}
	c, err := a.complete(ctx, prompt.IntentNextTask, req)
	if err != nil {
		log.Printf("assistant: next-task fallback: %v", err)
		return fallback.NextTask(uc.Tasks, uc.EnergyLevel, uc.PersonalityMode, a.now())
	}
	res := a.result(c)
	res.ContextUsed = &domain.ContextUsed{
		EnergyLevel:     uc.EnergyLevel,
		PersonalityMode: uc.PersonalityMode,
		TasksCount:      len(uc.Tasks),
	}
	return res
}

func (a *Assistant) PlanDay(ctx context.Context, uc domain.UserContext) domain.Result {
	req := llm.Request{
		System: prompt.System(prompt.IntentDayPlan, uc.PersonalityMode),
		Prompt: prompt.DayPlan(uc),
	}
	c, err := a.complete(ctx, prompt.IntentDayPlan, req)
	if err != nil {
		log.Printf("assistant: plan-day fallback: %v", err)
		return fallback.DayPlan(uc.Tasks, uc.PersonalityMode, a.now())
	}
	return a.result(c)
}

// MorningCheckin greets the user. Only the energy level and time feed the prompt.
func (a *Assistant) MorningCheckin(ctx context.Context, uc domain.UserContext) domain.Result {
	req := llm.Request{Prompt: prompt.MorningCheckin(uc.EnergyLevel, uc.CurrentTime)}
	c, err := a.complete(ctx, prompt.IntentMorningCheckin, req)
	if err != nil {
		log.Printf("assistant: morning-checkin fallback: %v", err)
		return fallback.MorningCheckin(uc.EnergyLevel, a.now())
	}
	return a.result(c)
}

func (a *Assistant) complete(ctx context.Context, intent prompt.Intent, req llm.Request) (*llm.Completion, error) {
	if !a.ready {
		return nil, errNotReady
	}
	p := paramsFor(intent)
	req.MaxTokens = p.maxTokens
	req.Temperature = p.temperature
	if a.debug {
		log.Printf("assistant: %s prompt ~%d tokens", intent, llm.EstimateRequestTokens(req))
	}

	c, err := a.client.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if c == nil || strings.TrimSpace(c.Text) == "" {
		return nil, llm.ErrEmptyResponse
	}
	return c, nil
}

func (a *Assistant) result(c *llm.Completion) domain.Result {
	tokens := c.TokensUsed
	return domain.Result{
		Response:   c.Text,
		TokensUsed: &tokens,
		Timestamp:  domain.Timestamp(a.now()),
	}
}
