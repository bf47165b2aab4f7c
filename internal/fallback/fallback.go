// Package fallback produces rule-based assistant responses used when no
// LLM provider is configured or a provider call fails. Every generator is a
// pure function of its arguments.
package fallback

import (
	"fmt"
	"strings"
	"time"

	"github.com/chris/timely/internal/domain"
	"github.com/chris/timely/internal/prompt"
)

const dayPlanHeader = "🗓️ **Your Day Plan:**\n"

// NextTask picks the first high or urgent task, or the first task when none
// qualifies. With no tasks it suggests something based on energy alone.
func NextTask(tasks []domain.TaskItem, energy, personality string, now time.Time) domain.Result {
	closer := prompt.Closer(personality)

	if len(tasks) == 0 {
		return result(energySuggestion(energy)+"\n\n"+closer, now)
	}

	task := tasks[0]
	why := "Good starting point for your current energy level"
	if high, ok := firstHighPriority(tasks); ok {
		task = high
		why = fmt.Sprintf("This is marked as %s priority", task.Priority)
	}

	text := fmt.Sprintf("**Next Task:** %s\n**Why Now:** %s\n**Duration:** ~%d minutes\n\n%s",
		task.Title, why, task.EstimatedDuration, closer)
	return result(text, now)
}

// DayPlan schedules the first high/urgent task now and the first medium
// task mid-morning, followed by two generic blocks.
func DayPlan(tasks []domain.TaskItem, personality string, now time.Time) domain.Result {
	closer := prompt.Closer(personality)

	if len(tasks) == 0 {
		var b strings.Builder
		b.WriteString(dayPlanHeader)
		b.WriteString("• Now → Set 3 main priorities for today\n")
		b.WriteString("• Mid-morning → Focus work block (90 minutes)\n")
		b.WriteString("• Late morning → Break and quick tasks\n")
		b.WriteString("• After lunch → Secondary projects\n")
		b.WriteString("• Afternoon → Wrap up and plan tomorrow\n")
		b.WriteString("\n**Strategy:** Structure creates momentum even without a task list.\n")
		b.WriteString(closer)
		return result(b.String(), now)
	}

	var b strings.Builder
	b.WriteString(dayPlanHeader)
	if high, ok := firstHighPriority(tasks); ok {
		fmt.Fprintf(&b, "• Now → %s (High priority first)\n", high.Title)
	}
	if medium, ok := firstWithPriority(tasks, domain.PriorityMedium); ok {
		fmt.Fprintf(&b, "• Mid-morning → %s (Good follow-up)\n", medium.Title)
	}
	b.WriteString("• After lunch → Quick tasks and admin\n")
	b.WriteString("• Afternoon → Deep work or project time\n")
	b.WriteString("\n**Strategy:** Tackle high-priority items when your energy is fresh.\n")
	b.WriteString(closer)
	return result(b.String(), now)
}

// MorningCheckin returns a canned greeting for the energy level.
func MorningCheckin(energy string, now time.Time) domain.Result {
	var greeting string
	switch energy {
	case domain.EnergyLow:
		greeting = "Good morning! 🌅 Take it gentle today - even small steps count. What would you like to focus on?"
	case domain.EnergyMedium:
		greeting = "Good morning! ✨ Ready to make today productive? What's your main priority today?"
	case domain.EnergyHigh:
		greeting = "Good morning! 🚀 You seem energized - let's channel that into something great! What exciting project can we tackle?"
	default:
		greeting = "Good morning! 🌅 How can I help you make today great?"
	}
	return result(greeting, now)
}

func energySuggestion(energy string) string {
	switch energy {
	case domain.EnergyLow:
		return "**Next Task:** Take a 5-10 minute break\n**Why Now:** Recharge before tackling new work\n**Duration:** 10 minutes"
	case domain.EnergyHigh:
		return "**Next Task:** Start your most important project\n**Why Now:** Channel that energy into meaningful work\n**Duration:** 30 minutes"
	default:
		return "**Next Task:** Review your priorities for today\n**Why Now:** Planning helps focus your energy\n**Duration:** 5 minutes"
	}
}

func firstHighPriority(tasks []domain.TaskItem) (domain.TaskItem, bool) {
	for _, t := range tasks {
		if t.IsHighPriority() {
			return t, true
		}
	}
	return domain.TaskItem{}, false
}

func firstWithPriority(tasks []domain.TaskItem, priority string) (domain.TaskItem, bool) {
	for _, t := range tasks {
		if t.Priority == priority {
			return t, true
		}
	}
	return domain.TaskItem{}, false
}

func result(text string, now time.Time) domain.Result {
	return domain.Result{
		Response:  text,
		Timestamp: domain.Timestamp(now),
		Fallback:  true,
	}
}
