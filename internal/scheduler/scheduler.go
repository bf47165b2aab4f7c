package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chris/timely/internal/agent"
	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/prompt"
)

const runTimeout = 2 * time.Minute

type Scheduler struct {
	cron       *cron.Cron
	webhookURL string
	db         *db.DB
	agent      *agent.Agent
	dmSend     func(userID, content string) error
	httpClient *http.Client
	mu         sync.Mutex
	entryIDs   map[prompt.Intent]cron.EntryID
}

// New builds a scheduler. dmSend may be nil when no Discord bot is running.
func New(database *db.DB, ag *agent.Agent, webhookURL string, dmSend func(userID, content string) error) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		webhookURL: webhookURL,
		db:         database,
		agent:      ag,
		dmSend:     dmSend,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		entryIDs:   make(map[prompt.Intent]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("scheduler started")
}

// Stop halts the cron and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Schedule runs intent on cronExpr, replacing any earlier entry for it.
func (s *Scheduler) Schedule(intent prompt.Intent, cronExpr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, err := s.cron.AddFunc(cronExpr, func() { s.Run(intent) })
	if err != nil {
		return fmt.Errorf("invalid cron %q for %s: %w", cronExpr, intent, err)
	}
	if old, ok := s.entryIDs[intent]; ok {
		s.cron.Remove(old)
	}
	s.entryIDs[intent] = entryID
	log.Printf("scheduler: %s scheduled with cron %q", intent, cronExpr)
	return nil
}

// Next returns when intent fires next, or the zero time if it is not scheduled.
func (s *Scheduler) Next(intent prompt.Intent) time.Time {
	s.mu.Lock()
	id, ok := s.entryIDs[intent]
	s.mu.Unlock()
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// Run executes one scheduled check-in and delivers the reply.
func (s *Scheduler) Run(intent prompt.Intent) {
	label := fmt.Sprintf("scheduler[%s]", intent)

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	res, err := s.agent.Run(ctx, intent, "")
	if err != nil {
		log.Printf("%s: %v", label, err)
		return
	}
	s.deliver(label, res.Response)
	log.Printf("%s: completed", label)
}

func (s *Scheduler) deliver(label, content string) {
	// Try DM first
	if s.dmSend != nil {
		userID, err := s.db.GetPreference(db.PrefDiscordUserID)
		if err == nil && userID != "" {
			if err := s.dmSend(userID, content); err != nil {
				log.Printf("%s: DM send failed: %v", label, err)
			} else {
				return
			}
		}
	}
	// Fall back to webhook
	if s.webhookURL != "" {
		if err := postWebhook(s.httpClient, s.webhookURL, content); err != nil {
			log.Printf("%s: webhook failed: %v", label, err)
		}
		return
	}
	log.Printf("%s: no delivery method available (no DM user and no webhook)", label)
}

func postWebhook(client *http.Client, url, content string) error {
	payload := map[string]string{"content": content}
	body, _ := json.Marshal(payload)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
