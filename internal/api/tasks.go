package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chris/timely/internal/db"
)

const maxCheckIns = 100

func handleListTasks(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := deps.DB.ListOpenTasks()
		if err != nil {
			log.Printf("api: listing tasks: %v", err)
			httpError(w, http.StatusInternalServerError, "listing tasks failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks, "count": len(tasks)})
	}
}

func handleCompleteTask(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task, err := deps.DB.CompleteTask(chi.URLParam(r, "id"))
		if errors.Is(err, db.ErrNotFound) {
			httpError(w, http.StatusNotFound, "task not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusConflict, "%v", err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

func handleListCheckIns(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				httpError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(n, maxCheckIns)
		}

		checkIns, err := deps.DB.ListCheckIns(limit)
		if err != nil {
			log.Printf("api: listing check-ins: %v", err)
			httpError(w, http.StatusInternalServerError, "listing check-ins failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"check_ins": checkIns})
	}
}
