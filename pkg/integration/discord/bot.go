package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jj-morpho/granola-digest/pkg/db"
	"github.com/jj-morpho/granola-digest/pkg/digest"
)

// Bot wraps the Discord session and dependencies
type Bot struct {
	Session     *discordgo.Session
	Digest      *digest.Service
	Repo        *db.Repository
	DefaultDays int
}

// NewBot creates a new Discord bot
func NewBot(token string, svc *digest.Service, repo *db.Repository, defaultDays int) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	if defaultDays <= 0 {
		defaultDays = 7
	}

	bot := &Bot{
		Session:     dg,
		Digest:      svc,
		Repo:        repo,
		DefaultDays: defaultDays,
	}

	dg.AddHandler(bot.messageCreate)

	return bot, nil
}

// Start opens the websocket connection
func (b *Bot) Start() error {
	return b.Session.Open()
}

// Stop closes the websocket connection
func (b *Bot) Stop() error {
	return b.Session.Close()
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from self
	if m.Author.ID == s.State.User.ID {
		return
	}

	cmd, days := ParseCommand(m.Content, b.DefaultDays)
	switch cmd {
	case "digest":
		b.handleDigest(s, m.ChannelID, days)
	case "status":
		b.handleStatus(s, m.ChannelID)
	}
}

func (b *Bot) handleDigest(s *discordgo.Session, channelID string, days int) {
	text, weekCount, err := b.buildDigest(days)
	if err != nil {
		s.ChannelMessageSend(channelID, fmt.Sprintf("Error building digest: %v", err))
		return
	}
	if _, err := s.ChannelMessageSend(channelID, text); err != nil {
		return
	}
	b.logDelivery(channelID, days, weekCount)
}

// PostDigest pushes a digest to a channel without an inbound command,
// used by the scheduler for recurring deliveries.
func (b *Bot) PostDigest(channelID string, days int) error {
	text, weekCount, err := b.buildDigest(days)
	if err != nil {
		return err
	}
	if _, err := b.Session.ChannelMessageSend(channelID, text); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	b.logDelivery(channelID, days, weekCount)
	return nil
}

func (b *Bot) buildDigest(days int) (string, int, error) {
	view, err := b.Digest.Build(context.Background(), days, time.Now())
	if err != nil {
		return "", 0, err
	}
	return digest.FormatText(view, days), len(view.Weeks), nil
}

func (b *Bot) logDelivery(channelID string, days, weekCount int) {
	if b.Repo == nil {
		return
	}
	b.Repo.LogDelivery("discord:"+channelID, days, weekCount)
}

func (b *Bot) handleStatus(s *discordgo.Session, channelID string) {
	weeks, err := b.Repo.ListWeeks()
	if err != nil {
		s.ChannelMessageSend(channelID, fmt.Sprintf("Error reading cache: %v", err))
		return
	}
	s.ChannelMessageSend(channelID, fmt.Sprintf("Granola digest is online. %d weeks cached.", len(weeks)))
}

// ParseCommand extracts the command and the lookback window from a
// message. "!digest" uses the default window, "!digest 28" overrides
// it; anything unparseable falls back to the default.
func ParseCommand(content string, defaultDays int) (command string, days int) {
	days = defaultDays
	if content == "!status" {
		return "status", days
	}
	if content == "!digest" {
		return "digest", days
	}
	if arg, ok := strings.CutPrefix(content, "!digest "); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil && n > 0 {
			days = n
		}
		return "digest", days
	}
	return "", days
}
