package domain

import (
	"strings"
	"time"
)

// Request holds the raw fields of an assistant request before defaults.
type Request struct {
	Message         string            `json:"message"`
	EnergyLevel     string            `json:"energy_level,omitempty"`
	PersonalityMode string            `json:"personality_mode,omitempty"`
	Tasks           []TaskInput       `json:"tasks,omitempty"`
	RecentTasks     []string          `json:"recent_tasks,omitempty"`
	CalendarEvents  []CalendarEvent   `json:"calendar_events,omitempty"`
	HabitPatterns   map[string]string `json:"habit_patterns,omitempty"`
}

// Assemble normalizes a request into a UserContext. It never fails:
// absent fields get defaults and unknown enum values are kept so that
// downstream lookups can fall back on their own.
func Assemble(req Request, now time.Time) UserContext {
	uc := UserContext{
		Message:         req.Message,
		CurrentTime:     now,
		EnergyLevel:     normalize(req.EnergyLevel, EnergyMedium),
		PersonalityMode: normalize(req.PersonalityMode, PersonalityCoach),
		Tasks:           NormalizeTasks(req.Tasks),
		RecentTasks:     req.RecentTasks,
		CalendarEvents:  req.CalendarEvents,
		HabitPatterns:   req.HabitPatterns,
	}
	if uc.RecentTasks == nil {
		uc.RecentTasks = []string{}
	}
	if uc.CalendarEvents == nil {
		uc.CalendarEvents = []CalendarEvent{}
	}
	if uc.HabitPatterns == nil {
		uc.HabitPatterns = map[string]string{}
	}
	return uc
}

// NormalizeTasks applies per-field defaults, preserving order.
func NormalizeTasks(in []TaskInput) []TaskItem {
	out := make([]TaskItem, 0, len(in))
	for _, t := range in {
		out = append(out, NormalizeTask(t))
	}
	return out
}

func NormalizeTask(t TaskInput) TaskItem {
	item := TaskItem{
		Title:             strings.TrimSpace(t.Title),
		Priority:          normalize(t.Priority, PriorityMedium),
		EstimatedDuration: DefaultDuration,
		Category:          strings.TrimSpace(t.Category),
	}
	if item.Title == "" {
		item.Title = UntitledTask
	}
	if t.EstimatedDuration != nil && *t.EstimatedDuration > 0 {
		item.EstimatedDuration = *t.EstimatedDuration
	}
	if item.Category == "" {
		item.Category = DefaultCategory
	}
	return item
}

func normalize(v, fallback string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return fallback
	}
	return v
}
