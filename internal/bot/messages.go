package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/drillbot/internal/drill"
	"github.com/example/drillbot/internal/excel"
	"github.com/example/drillbot/pkg/models"
)

// Callback data
const (
	callbackListPrefix = "list_"
	callbackHideStats  = "hide_stats"
	callbackRestart    = "restart"
)

// statsShortcut opens the stats overlay like /stats
const statsShortcut = "://list"

const (
	textWelcome = "👋 Welcome to drillbot!\n\n" +
		"Pick a vocabulary list below. I show a term, you type its definition. " +
		"Cards you miss come back more often."
	textHelp = "📚 Commands:\n" +
		"/lists - choose a list to study\n" +
		"/stats - show your progress (or type ://list)\n" +
		"/hide - back to your cards\n" +
		"/restart - stop and pick another list\n" +
		"/help - this message"
	textLoading      = "⏳ Loading your study session..."
	textStillLoading = "⏳ Still loading, one moment..."
	textNoLists      = "There are no lists yet."
	textEmptyList    = "⚠️ This list has no entries yet. Pick another one."
	textPickList     = "Pick a list to start studying:"
	textStatsOpen    = "Send /hide to get back to your cards."
	textDone         = "🎉 You mastered every card in this list!\n\nSend /restart to pick another one."
	textUnknown      = "⚠️ Unknown command. Send /help for the list of commands."
	textAdminOnly    = "⛔ This command is for admins only."
	textImportUsage  = "Usage: /import <path to .xlsx or .csv>"
	textDeleteUsage  = "Usage: /delete <list name>"
	textError        = "❌ Something went wrong. Please try again later."
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// listButtons puts one list per row
func listButtons(lists []models.List) [][]MenuButton {
	rows := make([][]MenuButton, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, []MenuButton{{
			Text:         fmt.Sprintf("%s (%d)", l.Name, l.EntryCount),
			CallbackData: fmt.Sprintf("%s%d", callbackListPrefix, l.ID),
		}})
	}
	return rows
}

func statsButtons() [][]MenuButton {
	return [][]MenuButton{{
		{Text: "⬅️ Back to cards", CallbackData: callbackHideStats},
		{Text: "🔄 Pick another list", CallbackData: callbackRestart},
	}}
}

// promptText shows a term. total is 0 once cards are picked by weight and
// the position counter is dropped.
func promptText(p drill.Prompt, pos, total int) string {
	if total > 0 {
		return fmt.Sprintf("📖 %s\n\n%d / %d\nType the definition.", p.Term, pos, total)
	}
	return fmt.Sprintf("📖 %s\n\nType the definition.", p.Term)
}

// feedbackText describes a verdict; advancing verdicts are followed by the
// next prompt at position pos of total.
func feedbackText(res drill.Result, pos, total int) string {
	var text string
	switch res.Verdict {
	case drill.VerdictCorrect:
		text = "✅ Correct!"
	case drill.VerdictTryAgain:
		return "❌ Not quite. Try again."
	case drill.VerdictRevealed:
		return fmt.Sprintf("❌ The answer is:\n%s\n\nType it to continue.", res.Expected)
	case drill.VerdictRetypeRequired:
		return fmt.Sprintf("Type exactly:\n%s", res.Expected)
	case drill.VerdictRetyped:
		text = "👍 Got it."
	default:
		return textError
	}
	return text + "\n\n" + promptText(res.Next, pos, total)
}

// retryText describes the retry state of the displayed card, if any
func retryText(r drill.RetryState) string {
	switch {
	case r.Stage == drill.Forced:
		return "✍️ Current card: type the shown answer to continue."
	case r.Attempts > 0:
		return "Current card: missed once, one more try before the answer is shown."
	}
	return ""
}

func statsText(listName string, stats []drill.CardStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s\n\n", listName)

	var correct, wrong int
	for _, s := range stats {
		fmt.Fprintf(&sb, "%s: ✅ %d ❌ %d (weight %d)\n", s.Term, s.Correct, s.Wrong, s.Weight)
		correct += s.Correct
		wrong += s.Wrong
	}
	fmt.Fprintf(&sb, "\nTotal: ✅ %d ❌ %d", correct, wrong)
	return sb.String()
}

func importText(path string, res *excel.ImportResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📥 Imported %s\n\n", path)
	fmt.Fprintf(&sb, "Lists created: %d\n", res.ListsCreated)
	fmt.Fprintf(&sb, "Lists updated: %d\n", res.ListsUpdated)
	fmt.Fprintf(&sb, "Entries: %d\n", res.Entries)
	fmt.Fprintf(&sb, "Skipped rows: %d", res.Skipped)

	const maxErrors = 5
	for i, e := range res.Errors {
		if i == maxErrors {
			fmt.Fprintf(&sb, "\n...and %d more", len(res.Errors)-maxErrors)
			break
		}
		sb.WriteString("\n" + e)
	}
	return sb.String()
}
