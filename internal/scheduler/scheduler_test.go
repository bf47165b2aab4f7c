package scheduler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/chris/timely/internal/agent"
	"github.com/chris/timely/internal/assistant"
	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/prompt"
)

func newTestScheduler(t *testing.T, webhookURL string, dmSend func(string, string) error) (*Scheduler, *db.DB) {
	t.Helper()
	d, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	ag := agent.New(d, assistant.New(nil))
	return New(d, ag, webhookURL, dmSend), d
}

type webhookRecorder struct {
	mu       sync.Mutex
	contents []string
}

func (w *webhookRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decoding webhook body: %v", err)
		}
		w.mu.Lock()
		w.contents = append(w.contents, payload["content"])
		w.mu.Unlock()
		rw.WriteHeader(http.StatusNoContent)
	}
}

func TestRunDeliversViaWebhook(t *testing.T) {
	rec := &webhookRecorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	s, d := newTestScheduler(t, srv.URL, nil)
	d.SetPreference(db.PrefEnergy, "high")

	s.Run(prompt.IntentMorningCheckin)

	if len(rec.contents) != 1 {
		t.Fatalf("expected 1 webhook post, got %d", len(rec.contents))
	}
	if !strings.Contains(rec.contents[0], "You seem energized") {
		t.Errorf("unexpected content %q", rec.contents[0])
	}
	checkIns, _ := d.ListCheckIns(1)
	if len(checkIns) != 1 || checkIns[0].Intent != "morning-checkin" {
		t.Errorf("check-in not recorded: %+v", checkIns)
	}
}

func TestRunPrefersDM(t *testing.T) {
	rec := &webhookRecorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	var gotUser, gotContent string
	dm := func(userID, content string) error {
		gotUser, gotContent = userID, content
		return nil
	}
	s, d := newTestScheduler(t, srv.URL, dm)
	d.SetPreference(db.PrefDiscordUserID, "1234")

	s.Run(prompt.IntentMorningCheckin)

	if gotUser != "1234" || gotContent == "" {
		t.Errorf("DM not sent: user=%q content=%q", gotUser, gotContent)
	}
	if len(rec.contents) != 0 {
		t.Errorf("webhook should not be used when DM succeeds")
	}
}

func TestRunFallsBackToWebhookWhenDMFails(t *testing.T) {
	rec := &webhookRecorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	dm := func(string, string) error { return errors.New("dm closed") }
	s, d := newTestScheduler(t, srv.URL, dm)
	d.SetPreference(db.PrefDiscordUserID, "1234")

	s.Run(prompt.IntentDayPlan)

	if len(rec.contents) != 1 || !strings.Contains(rec.contents[0], "Your Day Plan") {
		t.Errorf("expected day plan via webhook, got %v", rec.contents)
	}
}

func TestScheduleReplacesEntry(t *testing.T) {
	s, _ := newTestScheduler(t, "", nil)

	if err := s.Schedule(prompt.IntentMorningCheckin, "0 9 * * *"); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if err := s.Schedule(prompt.IntentMorningCheckin, "30 7 * * *"); err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Errorf("expected 1 cron entry, got %d", n)
	}
	if err := s.Schedule(prompt.IntentMorningCheckin, "not a cron"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Errorf("invalid cron should keep the old entry, got %d entries", n)
	}
}

func TestNextUnscheduled(t *testing.T) {
	s, _ := newTestScheduler(t, "", nil)
	if !s.Next(prompt.IntentDayPlan).IsZero() {
		t.Error("expected zero time for unscheduled intent")
	}
}

func TestPostWebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	if err := postWebhook(srv.Client(), srv.URL, "hi"); err == nil {
		t.Error("expected error for 400 response")
	}
}
