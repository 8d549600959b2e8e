package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jj-morpho/granola-digest/pkg/db"
	"github.com/jj-morpho/granola-digest/pkg/digest"
)

// Bot wraps the Telegram bot API and dependencies
type Bot struct {
	API         *tgbotapi.BotAPI
	Digest      *digest.Service
	Repo        *db.Repository
	DefaultDays int
	stopCh      chan struct{}
}

// NewBot creates a new Telegram bot
func NewBot(token string, svc *digest.Service, repo *db.Repository, defaultDays int) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram bot: %w", err)
	}
	if defaultDays <= 0 {
		defaultDays = 7
	}

	return &Bot{
		API:         api,
		Digest:      svc,
		Repo:        repo,
		DefaultDays: defaultDays,
		stopCh:      make(chan struct{}),
	}, nil
}

// Start begins polling for updates in a goroutine
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.API.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-b.stopCh:
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil {
					b.handleMessage(update.Message)
				}
			}
		}
	}()

	return nil
}

// Stop stops polling for updates
func (b *Bot) Stop() {
	close(b.stopCh)
	b.API.StopReceivingUpdates()
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	cmd, days := ParseCommand(msg.Text, b.DefaultDays)
	switch cmd {
	case "digest":
		b.handleDigest(msg.Chat.ID, days)
	case "status":
		b.handleStatus(msg.Chat.ID)
	}
}

func (b *Bot) handleDigest(chatID int64, days int) {
	text, weekCount, err := b.buildDigest(days)
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error building digest: %v", err))
		return
	}
	b.reply(chatID, text)
	b.logDelivery(chatID, days, weekCount)
}

// PostDigest pushes a digest to a chat without an inbound command,
// used by the scheduler for recurring deliveries.
func (b *Bot) PostDigest(chatID int64, days int) error {
	text, weekCount, err := b.buildDigest(days)
	if err != nil {
		return err
	}
	reply := tgbotapi.NewMessage(chatID, text)
	if _, err := b.API.Send(reply); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	b.logDelivery(chatID, days, weekCount)
	return nil
}

func (b *Bot) buildDigest(days int) (string, int, error) {
	view, err := b.Digest.Build(context.Background(), days, time.Now())
	if err != nil {
		return "", 0, err
	}
	return digest.FormatText(view, days), len(view.Weeks), nil
}

func (b *Bot) logDelivery(chatID int64, days, weekCount int) {
	if b.Repo == nil {
		return
	}
	b.Repo.LogDelivery(fmt.Sprintf("telegram:%d", chatID), days, weekCount)
}

func (b *Bot) handleStatus(chatID int64) {
	weeks, err := b.Repo.ListWeeks()
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Error reading cache: %v", err))
		return
	}
	b.reply(chatID, fmt.Sprintf("Granola digest is online. %d weeks cached.", len(weeks)))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.API.Send(msg); err != nil {
		log.Printf("Failed to send Telegram reply: %v", err)
	}
}

// ParseCommand extracts the command and the lookback window from a
// message text. "/digest" uses the default window, "/digest 28"
// overrides it; an unparseable argument falls back to the default.
func ParseCommand(text string, defaultDays int) (command string, days int) {
	days = defaultDays
	if text == "/status" {
		return "status", days
	}
	if text == "/digest" {
		return "digest", days
	}
	if arg, ok := strings.CutPrefix(text, "/digest "); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil && n > 0 {
			days = n
		}
		return "digest", days
	}
	return "", days
}
