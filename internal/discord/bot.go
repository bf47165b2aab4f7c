package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/chris/timely/internal/agent"
	"github.com/chris/timely/internal/db"
)

type Bot struct {
	session *discordgo.Session
	agent   *agent.Agent
	db      *db.DB
}

func NewBot(token string, ag *agent.Agent, database *db.DB) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	bot := &Bot{session: s, agent: ag, db: database}
	s.AddHandler(bot.onMessage)
	s.Identify.Intents = discordgo.IntentsDirectMessages | discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("opening Discord connection: %w", err)
	}

	log.Printf("Discord bot connected as %s", s.State.User.Username)
	return bot, nil
}

// SendDM delivers content to a user's DM channel, split to Discord's limit.
func (b *Bot) SendDM(userID, content string) error {
	ch, err := b.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("opening DM channel: %w", err)
	}
	for _, chunk := range splitMessage(content, maxMessageLen) {
		if _, err := b.session.ChannelMessageSend(ch.ID, chunk); err != nil {
			return fmt.Errorf("sending DM: %w", err)
		}
	}
	return nil
}

func (b *Bot) Close() {
	b.session.Close()
}
