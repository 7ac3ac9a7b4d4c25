// Package bot is the Telegram front end. Every update and every loading
// completion is handled on the goroutine running Run, so sessions need no
// locking.
package bot

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/drillbot/internal/session"
	"github.com/example/drillbot/pkg/models"
)

// sender is the part of *tgbotapi.BotAPI the bot talks to
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// catalog represents the list storage used by the bot, /import and /delete
type catalog interface {
	All(ctx context.Context) ([]models.List, error)
	ByID(ctx context.Context, id int64) (models.List, error)
	ByName(ctx context.Context, name string) (models.List, error)
	Create(ctx context.Context, name string) (int64, error)
	Entries(ctx context.Context, listID int64) ([]models.Entry, error)
	ReplaceEntries(ctx context.Context, listID int64, entries []models.Entry) error
	Delete(ctx context.Context, id int64) error
}

// delayer runs fn once after d
type delayer interface {
	After(d time.Duration, fn func()) error
}

// loadedEvent reports that the loading delay of a chat has elapsed
type loadedEvent struct {
	chatID int64
	token  uint64
}

// Bot represents the Telegram bot application
type Bot struct {
	api    sender
	store  catalog
	delay  delayer
	opts   Options
	logger *slog.Logger

	sessions map[int64]*session.Session
	loaded   chan loadedEvent
	done     chan struct{}
}

// New creates a new bot instance
func New(api sender, store catalog, delay delayer, opts Options, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		api:      api,
		store:    store,
		delay:    delay,
		opts:     opts,
		logger:   logger.With("component", "bot"),
		sessions: make(map[int64]*session.Session),
		loaded:   make(chan loadedEvent, 64),
		done:     make(chan struct{}),
	}
}

// Connect creates the Bot API client
func Connect(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug
	return api, nil
}

// Listen starts long polling. The channel is closed once ctx is done.
func Listen(ctx context.Context, api *tgbotapi.BotAPI, timeout int) tgbotapi.UpdatesChannel {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = timeout

	updates := api.GetUpdatesChan(updateConfig)
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()
	return updates
}

// Run handles updates until ctx is done or updates is closed. It must be
// called once.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	defer close(b.done)

	b.registerCommands()
	b.logger.Info("bot started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("bot stopped", "reason", ctx.Err())
			return nil
		case update, ok := <-updates:
			if !ok {
				b.logger.Info("update channel closed")
				return nil
			}
			b.handleUpdate(ctx, update)
		case ev := <-b.loaded:
			b.finishLoading(ev)
		}
	}
}

func (b *Bot) registerCommands() {
	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "lists", Description: "Choose a list to study"},
		tgbotapi.BotCommand{Command: "stats", Description: "Show your progress"},
		tgbotapi.BotCommand{Command: "hide", Description: "Back to your cards"},
		tgbotapi.BotCommand{Command: "restart", Description: "Pick another list"},
		tgbotapi.BotCommand{Command: "help", Description: "Show help"},
	)
	if _, err := b.api.Request(commands); err != nil {
		b.logger.Warn("failed to register commands", "error", err)
	}
}

// post hands a loading completion to the Run loop. Called from timer goroutines.
func (b *Bot) post(ev loadedEvent) {
	select {
	case b.loaded <- ev:
	case <-b.done:
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Chat != nil:
		if update.Message.IsCommand() {
			b.handleCommand(ctx, update.Message)
			return
		}
		b.handleText(update.Message)
	}
}

// sessionFor returns the chat's session, creating it on first contact
func (b *Bot) sessionFor(chatID int64) *session.Session {
	if s, ok := b.sessions[chatID]; ok {
		return s
	}

	seed := b.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := session.New(session.Config{
		Policy:        b.opts.Policy,
		MasteryTarget: b.opts.MasteryTarget,
	}, rand.New(rand.NewSource(seed)))

	b.sessions[chatID] = s
	b.logger.Debug("session created", "chat_id", chatID, "session_id", s.ID())
	return s
}

func (b *Bot) sendMessage(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send message", "chat_id", msg.ChatID, "error", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}
