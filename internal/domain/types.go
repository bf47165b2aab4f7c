package domain

import "time"

// Priority levels a task can carry. Values outside this set are kept as-is
// and rendered with the default marker.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Energy levels.
const (
	EnergyLow    = "low"
	EnergyMedium = "medium"
	EnergyHigh   = "high"
)

// Personality modes.
const (
	PersonalityCoach  = "coach"
	PersonalityFriend = "friend"
	PersonalityStrict = "strict"
	PersonalityZen    = "zen"
)

const (
	DefaultDuration = 30
	DefaultCategory = "general"
	UntitledTask    = "Untitled Task"
)

// TaskInput is a task as it arrives from a caller. Every field is optional.
type TaskInput struct {
	Title             string `json:"title"`
	Priority          string `json:"priority,omitempty"`
	EstimatedDuration *int   `json:"estimated_duration,omitempty"`
	Category          string `json:"category,omitempty"`
}

// TaskItem is a task with all defaults applied.
type TaskItem struct {
	Title             string `json:"title"`
	Priority          string `json:"priority"`
	EstimatedDuration int    `json:"estimated_duration"`
	Category          string `json:"category"`
}

// IsHighPriority reports whether the task is high or urgent.
func (t TaskItem) IsHighPriority() bool {
	return t.Priority == PriorityHigh || t.Priority == PriorityUrgent
}

type CalendarEvent struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

// UserContext is everything the prompt renderers and fallback generators
// need for one request.
type UserContext struct {
	Message         string
	CurrentTime     time.Time
	EnergyLevel     string
	PersonalityMode string
	Tasks           []TaskItem
	RecentTasks     []string
	CalendarEvents  []CalendarEvent
	// HabitPatterns is carried through but not rendered anywhere yet.
	HabitPatterns map[string]string
}

// ContextUsed echoes the inputs of a successful next-task call.
type ContextUsed struct {
	EnergyLevel     string `json:"energy_level"`
	PersonalityMode string `json:"personality_mode"`
	TasksCount      int    `json:"tasks_count"`
}

// Result is the response shape shared by the LLM and fallback paths.
type Result struct {
	Response    string       `json:"response"`
	TokensUsed  *int         `json:"tokens_used,omitempty"`
	Timestamp   string       `json:"timestamp"`
	ContextUsed *ContextUsed `json:"context_used,omitempty"`
	Fallback    bool         `json:"fallback"`
}

// Timestamp formats t the way every Result carries it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
