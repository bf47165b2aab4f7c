package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command. Call setupEnv first so it runs against a
// throwaway database with no provider credentials.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DATABASE_PATH", filepath.Join(home, "data", "timely.db"))
}

func TestTaskLifecycle(t *testing.T) {
	setupEnv(t)

	out, err := runCmd(t, "task", "add", "Write", "proposal", "-p", "high", "-d", "60")
	if err != nil {
		t.Fatalf("task add: %v", err)
	}
	if !strings.HasPrefix(out, "Task 'Write proposal' noted! (") {
		t.Fatalf("unexpected add output %q", out)
	}
	id := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(out), "Task 'Write proposal' noted! ("), ")")

	out, err = runCmd(t, "task", "list")
	if err != nil {
		t.Fatalf("task list: %v", err)
	}
	if !strings.Contains(out, "🟠 "+id+"  Write proposal  (~60min, high)") {
		t.Errorf("unexpected list output %q", out)
	}

	out, err = runCmd(t, "next", "what", "now?")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !strings.Contains(out, "**Next Task:** Write proposal") || !strings.Contains(out, "(offline suggestion)") {
		t.Errorf("unexpected next output %q", out)
	}

	if _, err := runCmd(t, "task", "done", id); err != nil {
		t.Fatalf("task done: %v", err)
	}
	out, _ = runCmd(t, "task", "list")
	if !strings.Contains(out, "No open tasks.") {
		t.Errorf("expected no open tasks, got %q", out)
	}

	out, _ = runCmd(t, "history", "-n", "5")
	if !strings.Contains(out, "next-task") {
		t.Errorf("history missing next-task entry: %q", out)
	}
}

func TestPrefsAndMorning(t *testing.T) {
	setupEnv(t)

	if _, err := runCmd(t, "prefs", "set", "energy_level", "LOW"); err != nil {
		t.Fatalf("prefs set: %v", err)
	}
	out, err := runCmd(t, "prefs", "get", "energy_level")
	if err != nil {
		t.Fatalf("prefs get: %v", err)
	}
	if out != "energy_level = low\n" {
		t.Errorf("prefs get = %q", out)
	}

	out, _ = runCmd(t, "morning")
	if !strings.Contains(out, "Take it gentle today") {
		t.Errorf("morning should use the stored energy level, got %q", out)
	}

	out, _ = runCmd(t, "morning", "--energy", "high")
	if !strings.Contains(out, "You seem energized") {
		t.Errorf("--energy should override the stored level, got %q", out)
	}

	if _, err := runCmd(t, "prefs", "set", "theme", "dark"); err == nil {
		t.Error("expected error for unknown preference")
	}
}

func TestPlanWithoutTasks(t *testing.T) {
	setupEnv(t)
	out, err := runCmd(t, "plan", "--mode", "strict")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if !strings.Contains(out, "Set 3 main priorities for today") || !strings.Contains(out, "Execute immediately.") {
		t.Errorf("unexpected plan output %q", out)
	}
}
