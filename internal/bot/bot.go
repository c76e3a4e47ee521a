// Package bot is the Telegram transport adapter: it translates Telegram
// updates into the editor core's input alphabet and renders the resulting
// effects back as messages and inline keyboards.
package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ethanbaker/textcraft/pkg/editor"
	"github.com/ethanbaker/textcraft/pkg/session"
	"github.com/ethanbaker/textcraft/pkg/utils"
)

// sender is the outbound slice of the Telegram client, satisfied by
// *tgbotapi.BotAPI and by fakes in tests
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot instance
type Bot struct {
	config     *utils.Config
	api        *tgbotapi.BotAPI
	client     sender
	store      *session.Store
	dispatcher *editor.Dispatcher
}

// NewBot creates a new Telegram bot instance
func NewBot(cfg *utils.Config, store *session.Store, dispatcher *editor.Dispatcher) (*Bot, error) {
	token := cfg.Get("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN not set in config or environment")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	return &Bot{
		config:     cfg,
		api:        api,
		client:     api,
		store:      store,
		dispatcher: dispatcher,
	}, nil
}

// Start begins long polling for updates and blocks until the context is
// cancelled. Each update is handled in its own goroutine so one user's
// pending transformation never stalls another user's input
func (b *Bot) Start(ctx context.Context) error {
	log.Printf("[BOT]: Logged in as: @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// Stop stops polling for updates
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}
