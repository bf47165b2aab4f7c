package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/chris/timely/internal/domain"
	"github.com/chris/timely/internal/prompt"
)

func handleChat(deps Deps, intent prompt.Intent) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var req domain.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}

		ctx, cancel := deps.withTimeout(r)
		defer cancel()

		uc := domain.Assemble(req, deps.now())
		writeJSON(w, http.StatusOK, deps.Agent.Dispatch(ctx, intent, uc))
	}
}

func intPtr(v int) *int { return &v }

var sampleTasks = []domain.TaskInput{
	{Title: "Review emails", Priority: domain.PriorityMedium, EstimatedDuration: intPtr(15)},
	{Title: "Write project proposal", Priority: domain.PriorityHigh, EstimatedDuration: intPtr(60)},
	{Title: "Team meeting", Priority: domain.PriorityHigh, EstimatedDuration: intPtr(30)},
}

// handleChatTest runs a next-task request over a fixed task list.
func handleChatTest(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uc := domain.Assemble(domain.Request{
			Message:         "What should I focus on right now?",
			EnergyLevel:     domain.EnergyMedium,
			PersonalityMode: domain.PersonalityCoach,
			Tasks:           sampleTasks,
		}, deps.now())

		ctx, cancel := deps.withTimeout(r)
		defer cancel()

		res := deps.Agent.Dispatch(ctx, prompt.IntentNextTask, uc)
		writeJSON(w, http.StatusOK, map[string]any{
			"message":     "✅ AI integration working!",
			"test_result": res,
			"timestamp":   domain.Timestamp(deps.now()),
		})
	}
}

func handleQuickTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		defer r.Body.Close()

		var in domain.TaskInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		if strings.TrimSpace(in.Title) == "" {
			httpError(w, http.StatusUnprocessableEntity, "title is required")
			return
		}

		task, err := deps.DB.CreateTask(domain.NormalizeTask(in))
		if err != nil {
			log.Printf("api: quick-task: %v", err)
			httpError(w, http.StatusInternalServerError, "saving task failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   fmt.Sprintf("Task '%s' noted!", task.Title),
			"task":      task,
			"timestamp": domain.Timestamp(deps.now()),
		})
	}
}
