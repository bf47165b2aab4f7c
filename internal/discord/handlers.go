package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/chris/timely/internal/agent"
	"github.com/chris/timely/internal/db"
	"github.com/chris/timely/internal/domain"
	"github.com/chris/timely/internal/prompt"
)

const (
	maxMessageLen = 2000
	replyTimeout  = time.Minute
)

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore own messages
	if m.Author.ID == s.State.User.ID {
		return
	}

	// Only respond to DMs or when mentioned
	isDM := m.GuildID == ""
	isMentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			isMentioned = true
			break
		}
	}

	if !isDM && !isMentioned {
		return
	}

	if isDM {
		if err := b.db.SetPreference(db.PrefDiscordUserID, m.Author.ID); err != nil {
			log.Printf("discord: saving user id: %v", err)
		}
	}

	content := strings.TrimSpace(stripMention(m.Content, s.State.User.ID))
	if content == "" {
		return
	}

	// Show typing indicator
	s.ChannelTyping(m.ChannelID)

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	reply := b.respond(ctx, content)

	// Discord has a 2000 char limit; split if needed
	for _, chunk := range splitMessage(reply, maxMessageLen) {
		s.ChannelMessageSend(m.ChannelID, chunk)
	}
}

// respond handles the bot's housekeeping commands and sends everything else
// to the assistant.
func (b *Bot) respond(ctx context.Context, content string) string {
	cmd, arg := splitCommand(content)
	switch cmd {
	case "energy":
		return b.setPreference(db.PrefEnergy, arg, domain.EnergyLow, domain.EnergyMedium, domain.EnergyHigh)
	case "mode":
		return b.setPreference(db.PrefPersonality, arg,
			domain.PersonalityCoach, domain.PersonalityFriend, domain.PersonalityStrict, domain.PersonalityZen)
	case "add":
		if arg == "" {
			return "Usage: `add <task title>`"
		}
		t, err := b.db.CreateTask(domain.NormalizeTask(domain.TaskInput{Title: arg}))
		if err != nil {
			log.Printf("discord: adding task: %v", err)
			return "Something went wrong. Try again?"
		}
		return fmt.Sprintf("Task '%s' noted! (`%s`)", t.Title, shortID(t.ID))
	case "done":
		t, err := b.db.CompleteTask(arg)
		if errors.Is(err, db.ErrNotFound) {
			return fmt.Sprintf("No open task matches `%s`.", arg)
		}
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("Nice work! '%s' is done. ✅", t.Title)
	case "tasks":
		return b.listTasks()
	}

	intent, message := agent.ParseIntent(content)
	res, err := b.agent.Run(ctx, intent, message)
	if err != nil {
		log.Printf("discord: %s: %v", intent, err)
		return "Something went wrong. Try again?"
	}
	return res.Response
}

func (b *Bot) setPreference(key, value string, allowed ...string) string {
	value = strings.ToLower(value)
	for _, a := range allowed {
		if value == a {
			if err := b.db.SetPreference(key, value); err != nil {
				log.Printf("discord: saving %s: %v", key, err)
				return "Something went wrong. Try again?"
			}
			return fmt.Sprintf("Got it, %s is now %s.", strings.ReplaceAll(key, "_", " "), value)
		}
	}
	return fmt.Sprintf("Pick one of: %s", strings.Join(allowed, ", "))
}

func (b *Bot) listTasks() string {
	tasks, err := b.db.ListOpenTasks()
	if err != nil {
		log.Printf("discord: listing tasks: %v", err)
		return "Something went wrong. Try again?"
	}
	if len(tasks) == 0 {
		return "No open tasks. Add one with `add <title>`."
	}
	var sb strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&sb, "%s `%s` %s (~%dmin)\n", prompt.Marker(t.Priority), shortID(t.ID), t.Title, t.EstimatedDuration)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// splitCommand returns the lower-cased first word and the rest of content.
func splitCommand(content string) (string, string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(content), " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func stripMention(s, userID string) string {
	s = strings.ReplaceAll(s, "<@"+userID+">", "")
	s = strings.ReplaceAll(s, "<@!"+userID+">", "")
	return s
}

// splitMessage splits s into chunks of at most maxLen bytes, preferring to
// break after a newline and never inside a UTF-8 sequence.
func splitMessage(s string, maxLen int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}
	var chunks []string
	for len(s) > maxLen {
		end := maxLen
		for end > 0 && !utf8.RuneStart(s[end]) {
			end--
		}
		// Try to split at a newline
		if idx := strings.LastIndex(s[:end], "\n"); idx > 0 {
			end = idx + 1
		}
		if end == 0 {
			end = maxLen
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	if len(s) > 0 {
		chunks = append(chunks, s)
	}
	return chunks
}
