package agent

import (
	"fmt"
	"log"

	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/domain"
)

const recentTaskCount = 3

// Context assembles a user context from the store: open tasks, the last few
// completed titles and the saved energy and personality preferences.
func (a *Agent) Context(message string) (domain.UserContext, error) {
	tasks, err := a.db.ListOpenTasks()
	if err != nil {
		return domain.UserContext{}, fmt.Errorf("building context: %w", err)
	}

	energy, personality, err := a.db.Preferences()
	if err != nil {
		return domain.UserContext{}, fmt.Errorf("building context: %w", err)
	}

	recent, err := a.db.RecentlyCompleted(recentTaskCount)
	if err != nil {
		log.Printf("warning: getting recent tasks: %v", err)
	}

	uc := domain.Assemble(domain.Request{
		Message:         message,
		EnergyLevel:     energy,
		PersonalityMode: personality,
		RecentTasks:     recent,
	}, a.now())
	uc.Tasks = db.Items(tasks)
	return uc, nil
}
