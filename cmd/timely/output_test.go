package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/domain"
)

var now = time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

func TestPrintTasks(t *testing.T) {
	var buf bytes.Buffer
	printTasks(&buf, []db.Task{
		{ID: "0123456789abcdef", Title: "Write proposal", Priority: "high", EstimatedDuration: 60, CreatedAt: "2024-03-11 09:00:00"},
		{ID: "fedcba9876543210", Title: "Inbox", Priority: "low", EstimatedDuration: 15, CreatedAt: "2024-03-11 11:59:00"},
	}, now)

	out := buf.String()
	for _, want := range []string{
		"🟠 01234567  Write proposal  (~60min, high)  added 3 hours ago",
		"🔵 fedcba98  Inbox  (~15min, low)  added 1 minute ago",
		"2 tasks, about 1h15 of work",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTasksEmpty(t *testing.T) {
	var buf bytes.Buffer
	printTasks(&buf, nil, now)
	if got := buf.String(); got != "No open tasks.\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrintHistory(t *testing.T) {
	tokens := 1500
	var buf bytes.Buffer
	printHistory(&buf, []db.CheckIn{
		{ID: 2, Intent: "plan-day", Response: "🗓️ **Your Day Plan:**\n• Now → X", Fallback: true, CreatedAt: "2024-03-11 11:00:00"},
		{ID: 1, Intent: "next-task", Response: "**Next Task:** Y", TokensUsed: &tokens, CreatedAt: "2024-03-10 12:00:00"},
	}, now)

	out := buf.String()
	for _, want := range []string{
		"#2 plan-day  1 hour ago  (fallback)\n    🗓️ **Your Day Plan:**\n",
		"#1 next-task  1 day ago  (llm, 1,500 tokens)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, domain.Result{Response: "Good morning!", Fallback: true})
	if !strings.Contains(buf.String(), "(offline suggestion)") {
		t.Errorf("fallback marker missing: %q", buf.String())
	}

	buf.Reset()
	tokens := 12
	printResult(&buf, domain.Result{Response: "Hi", TokensUsed: &tokens})
	if !strings.Contains(buf.String(), "(12 tokens)") {
		t.Errorf("token count missing: %q", buf.String())
	}
}

func TestMinutes(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0 min"},
		{45, "45 min"},
		{60, "1h00"},
		{135, "2h15"},
	}
	for _, tt := range tests {
		if got := minutes(tt.in); got != tt.want {
			t.Errorf("minutes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
