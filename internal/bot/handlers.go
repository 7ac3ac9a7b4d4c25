package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/drillbot/internal/database"
	"github.com/example/drillbot/internal/drill"
	"github.com/example/drillbot/internal/excel"
	"github.com/example/drillbot/internal/session"
)

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		b.sendText(chatID, textWelcome)
		b.sendListMenu(ctx, chatID)
	case "lists":
		b.sendListMenu(ctx, chatID)
	case "help":
		b.sendText(chatID, textHelp)
	case "stats":
		b.showStats(chatID)
	case "hide":
		b.hideStats(chatID)
	case "restart":
		b.restart(ctx, chatID)
	case "import":
		b.handleImport(ctx, message)
	case "delete":
		b.handleDelete(ctx, message)
	default:
		b.sendText(chatID, textUnknown)
	}
}

// handleText routes a plain message according to the session stage
func (b *Bot) handleText(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	text := message.Text

	if strings.TrimSpace(text) == statsShortcut {
		b.showStats(chatID)
		return
	}

	s := b.sessionFor(chatID)
	switch s.Stage() {
	case session.Selecting:
		b.sendText(chatID, textPickList)
	case session.Loading:
		b.sendText(chatID, textStillLoading)
	case session.Done:
		b.sendText(chatID, textDone)
	case session.Studying:
		if s.ShowingStats() {
			b.sendText(chatID, textStatsOpen)
			return
		}
		b.submit(chatID, s, text)
	}
}

// handleCallback handles inline keyboard presses
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		b.logger.Warn("callback without message", "data", callback.Data)
		return
	}

	// Always answer the callback query to remove the loading state
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", "error", err)
	}

	chatID := callback.Message.Chat.ID
	switch {
	case callback.Data == callbackHideStats:
		b.hideStats(chatID)
	case callback.Data == callbackRestart:
		b.restart(ctx, chatID)
	case strings.HasPrefix(callback.Data, callbackListPrefix):
		listID, err := strconv.ParseInt(strings.TrimPrefix(callback.Data, callbackListPrefix), 10, 64)
		if err != nil {
			b.logger.Warn("invalid list callback", "data", callback.Data, "error", err)
			b.sendText(chatID, textError)
			return
		}
		b.chooseList(ctx, chatID, listID)
	default:
		b.sendText(chatID, "⚠️ Unknown action")
	}
}

func (b *Bot) sendListMenu(ctx context.Context, chatID int64) {
	lists, err := b.store.All(ctx)
	if err != nil {
		b.logger.Error("failed to load lists", "error", err)
		b.sendText(chatID, textError)
		return
	}
	if len(lists) == 0 {
		b.sendText(chatID, textNoLists)
		return
	}

	msg := tgbotapi.NewMessage(chatID, textPickList)
	msg.ReplyMarkup = createKeyboard(listButtons(lists))
	b.sendMessage(msg)
}

// chooseList starts loading a list and schedules the first prompt
func (b *Bot) chooseList(ctx context.Context, chatID, listID int64) {
	list, err := b.store.ByID(ctx, listID)
	if err != nil {
		b.logger.Error("failed to get list", "list_id", listID, "error", err)
		b.sendText(chatID, textError)
		return
	}
	entries, err := b.store.Entries(ctx, listID)
	if err != nil {
		b.logger.Error("failed to get entries", "list_id", listID, "error", err)
		b.sendText(chatID, textError)
		return
	}

	pairs := make([]drill.Pair, len(entries))
	for i, e := range entries {
		pairs[i] = drill.Pair{Term: e.Term, Definition: e.Definition}
	}

	s := b.sessionFor(chatID)
	token, err := s.Choose(list.Name, pairs)
	if errors.Is(err, drill.ErrEmptyList) {
		b.sendText(chatID, textEmptyList)
		return
	}
	if err != nil {
		b.logger.Error("failed to choose list", "list_id", listID, "error", err)
		b.sendText(chatID, textError)
		return
	}

	b.logger.Info("list chosen", "chat_id", chatID, "session_id", s.ID(), "list", list.Name, "cards", len(pairs))
	b.sendText(chatID, textLoading)

	ev := loadedEvent{chatID: chatID, token: token}
	if err := b.delay.After(b.opts.LoadingDelay, func() { b.post(ev) }); err != nil {
		b.logger.Warn("failed to schedule loading delay, loading now", "error", err)
		b.finishLoading(ev)
	}
}

func (b *Bot) finishLoading(ev loadedEvent) {
	s, ok := b.sessions[ev.chatID]
	if !ok {
		return
	}

	started, err := s.FinishLoading(ev.token)
	if err != nil {
		b.logger.Error("failed to start session", "chat_id", ev.chatID, "error", err)
		b.sendText(ev.chatID, textError)
		return
	}
	if !started {
		b.logger.Debug("stale loading ignored", "chat_id", ev.chatID, "token", ev.token)
		return
	}

	p, err := s.Current()
	if err != nil {
		b.logger.Error("no prompt after loading", "chat_id", ev.chatID, "error", err)
		return
	}
	b.sendText(ev.chatID, sessionPrompt(s, p))
}

func (b *Bot) submit(chatID int64, s *session.Session, answer string) {
	res, err := s.Submit(answer)
	if err != nil {
		b.logger.Error("failed to submit answer", "chat_id", chatID, "error", err)
		b.sendText(chatID, textError)
		return
	}

	b.logger.Debug("answer checked",
		"session_id", s.ID(),
		"verdict", res.Verdict.String(),
		"card", res.Index,
	)

	if s.Stage() == session.Done {
		stats, _ := s.Stats()
		b.sendText(chatID, textDone+"\n\n"+statsText(s.ListName(), stats))
		return
	}
	pos, total, _ := s.Progress()
	b.sendText(chatID, feedbackText(res, pos, total))
}

// sessionPrompt renders p with the session's coverage progress
func sessionPrompt(s *session.Session, p drill.Prompt) string {
	pos, total, _ := s.Progress()
	return promptText(p, pos, total)
}

func (b *Bot) showStats(chatID int64) {
	s := b.sessionFor(chatID)
	switch s.Stage() {
	case session.Studying:
		if err := s.ShowStats(); err != nil {
			b.sendText(chatID, textError)
			return
		}
	case session.Done:
	default:
		b.sendText(chatID, "📊 Start studying a list first.")
		return
	}

	stats, err := s.Stats()
	if err != nil {
		b.sendText(chatID, textError)
		return
	}

	text := statsText(s.ListName(), stats)
	if r, err := s.Retry(); err == nil {
		if extra := retryText(r); extra != "" {
			text += "\n\n" + extra
		}
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if s.Stage() == session.Studying {
		msg.ReplyMarkup = createKeyboard(statsButtons())
	}
	b.sendMessage(msg)
}

func (b *Bot) hideStats(chatID int64) {
	s := b.sessionFor(chatID)
	if !s.ShowingStats() {
		return
	}
	s.HideStats()

	p, err := s.Current()
	if err != nil {
		return
	}
	b.sendText(chatID, sessionPrompt(s, p))
}

func (b *Bot) restart(ctx context.Context, chatID int64) {
	b.sessionFor(chatID).Restart()
	b.sendListMenu(ctx, chatID)
}

// handleImport imports lists from a file on the server (admins only)
func (b *Bot) handleImport(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if message.From == nil || !b.opts.isAdmin(message.From.ID) {
		b.sendText(chatID, textAdminOnly)
		return
	}

	path := strings.TrimSpace(message.CommandArguments())
	if path == "" {
		b.sendText(chatID, textImportUsage)
		return
	}

	cfg := excel.DefaultImportConfig()
	cfg.FilePath = path
	cfg.SheetName = b.opts.ImportSheet

	res, err := excel.ImportLists(ctx, b.store, cfg)
	if err != nil {
		b.logger.Error("import failed", "path", path, "error", err)
		b.sendText(chatID, "❌ Import failed: "+err.Error())
		return
	}

	b.logger.Info("lists imported", "path", path, "created", res.ListsCreated, "updated", res.ListsUpdated, "entries", res.Entries)
	b.sendText(chatID, importText(path, res))
}

// handleDelete removes a list from the catalog (admins only). Sessions already
// studying it keep their cards.
func (b *Bot) handleDelete(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if message.From == nil || !b.opts.isAdmin(message.From.ID) {
		b.sendText(chatID, textAdminOnly)
		return
	}

	name := strings.TrimSpace(message.CommandArguments())
	if name == "" {
		b.sendText(chatID, textDeleteUsage)
		return
	}

	list, err := b.store.ByName(ctx, name)
	if errors.Is(err, database.ErrNotFound) {
		b.sendText(chatID, fmt.Sprintf("⚠️ No list named %q.", name))
		return
	}
	if err != nil {
		b.logger.Error("failed to get list", "list", name, "error", err)
		b.sendText(chatID, textError)
		return
	}

	if err := b.store.Delete(ctx, list.ID); err != nil {
		b.logger.Error("failed to delete list", "list_id", list.ID, "error", err)
		b.sendText(chatID, textError)
		return
	}

	b.logger.Info("list deleted", "list_id", list.ID, "list", list.Name)
	b.sendText(chatID, fmt.Sprintf("🗑 Deleted %q.", list.Name))
}
