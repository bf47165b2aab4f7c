package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/chris/timely/internal/domain"
)

const (
	maxNextTaskTasks = 8
	maxDayPlanTasks  = 10

	timeLayout = "Monday, January 02 at 03:04 PM"

	defaultMarker = "⚪"
	defaultCloser = "Let's get started! ✨"
)

// Intent names one of the three assistant operations.
type Intent string

const (
	IntentNextTask       Intent = "next-task"
	IntentDayPlan        Intent = "plan-day"
	IntentMorningCheckin Intent = "morning-checkin"
)

// Marker returns the listing symbol for a task priority.
func Marker(priority string) string {
	switch priority {
	case domain.PriorityLow:
		return "🔵"
	case domain.PriorityMedium:
		return "🟡"
	case domain.PriorityHigh:
		return "🟠"
	case domain.PriorityUrgent:
		return "🔴"
	default:
		return defaultMarker
	}
}

// Closer returns the sign-off line for a personality mode.
func Closer(personality string) string {
	if !domain.KnownPersonality(personality) {
		return defaultCloser
	}
	return domain.ProfileFor(personality).Closer
}

// StyleLine is the one-sentence style instruction for a personality.
func StyleLine(personality string) string {
	p := domain.ProfileFor(personality)
	return fmt.Sprintf("Be %s, %s.", p.Tone, p.Style)
}

// FormatTime renders t as "Monday, January 02 at 03:04 PM".
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// System returns the system instruction sent alongside an intent's prompt.
// The morning check-in sends none.
func System(intent Intent, personality string) string {
	switch intent {
	case IntentNextTask:
		return "You are Timely, an AI productivity coach focused on helping users decide what to do next with minimal decision fatigue. " +
			"Use " + domain.ProfileFor(personality).Language + " language."
	case IntentDayPlan:
		return "You are Timely, an AI productivity coach helping users plan their day effectively."
	default:
		return ""
	}
}

// NextTask renders the "what should I do next" prompt.
func NextTask(uc domain.UserContext) string {
	var b strings.Builder

	b.WriteString(StyleLine(uc.PersonalityMode))
	fmt.Fprintf(&b, "\n\nUSER REQUEST: %q\n\n", uc.Message)

	b.WriteString("CURRENT CONTEXT:\n")
	fmt.Fprintf(&b, "- Time: %s\n", FormatTime(uc.CurrentTime))
	fmt.Fprintf(&b, "- Energy Level: %s\n", uc.EnergyLevel)
	fmt.Fprintf(&b, "- Available Tasks: %d\n", len(uc.Tasks))
	if len(uc.RecentTasks) > 0 {
		fmt.Fprintf(&b, "- Recent Activity: %s\n", recentActivity(uc.RecentTasks))
	}
	if len(uc.CalendarEvents) > 0 {
		ev := uc.CalendarEvents[0]
		fmt.Fprintf(&b, "- Calendar: Next: %s at %s\n", ev.Title, ev.Time)
	}

	b.WriteString("\nTASKS:\n")
	b.WriteString(taskListing(uc.Tasks))

	b.WriteString("\n\nSuggest ONE specific task they should do next. Consider their energy level and time of day.\n\n")
	b.WriteString("FORMAT:\n")
	b.WriteString("**Next Task:** [Clear task name]\n")
	b.WriteString("**Why Now:** [Brief reasoning]\n")
	b.WriteString("**Duration:** [Estimated time]\n\n")
	b.WriteString(Closer(uc.PersonalityMode))

	return b.String()
}

// DayPlan renders the "plan my day" prompt.
func DayPlan(uc domain.UserContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Help plan the user's day. It's %s.\n\n", FormatTime(uc.CurrentTime))
	if uc.Message != "" {
		fmt.Fprintf(&b, "USER REQUEST: %q\n\n", uc.Message)
	}

	b.WriteString("AVAILABLE TASKS:\n")
	b.WriteString(planningListing(uc.Tasks))

	b.WriteString("\n\nCreate a realistic schedule with 4-6 time blocks, considering:\n")
	b.WriteString("- Current time and remaining day\n")
	b.WriteString("- Energy levels throughout the day\n")
	b.WriteString("- Task complexity and duration\n")
	b.WriteString("- Natural breaks\n\n")
	b.WriteString("FORMAT:\n")
	b.WriteString("🗓️ **Your Day Plan:**\n")
	b.WriteString("• [Time] → [Task] ([Duration])\n")
	b.WriteString("• [Continue pattern]\n\n")
	b.WriteString("**Strategy:** [Brief explanation]\n")
	b.WriteString("Ready to make this day productive! ✨")

	return b.String()
}

// MorningCheckin renders the short greeting prompt.
func MorningCheckin(energy string, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Give a warm, energizing morning greeting for someone with %s energy level.\n", energy)
	fmt.Fprintf(&b, "It's %s morning, %s.\n\n", now.Format("Monday"), now.Format("January 02 at 03:04 PM"))
	b.WriteString("Be encouraging, ask what they'd like to focus on today, and keep it brief but inspiring.\n")
	b.WriteString("Match their energy level appropriately.")
	return b.String()
}

func taskListing(tasks []domain.TaskItem) string {
	if len(tasks) == 0 {
		return "No pending tasks available."
	}
	if len(tasks) > maxNextTaskTasks {
		tasks = tasks[:maxNextTaskTasks]
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%s %s (%s priority, ~%dmin)", Marker(t.Priority), t.Title, t.Priority, t.EstimatedDuration)
	}
	return strings.Join(lines, "\n")
}

func planningListing(tasks []domain.TaskItem) string {
	if len(tasks) == 0 {
		return "No tasks to schedule."
	}
	if len(tasks) > maxDayPlanTasks {
		tasks = tasks[:maxDayPlanTasks]
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("• %s (~%dmin, %s priority)", t.Title, t.EstimatedDuration, t.Priority)
	}
	return strings.Join(lines, "\n")
}

// recentActivity lists the last three completed tasks.
func recentActivity(recent []string) string {
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	return "Recently completed: " + strings.Join(recent, ", ")
}
