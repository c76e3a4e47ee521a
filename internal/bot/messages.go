package bot

import (
	"errors"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ethanbaker/textcraft/pkg/editor"
)

// Preview length for the current text when presenting the action menu
const menuPreviewLen = 300

const welcomeMessage = `✏️ *TextCraft AI* — your personal text editor!

Available actions:
• ✏️ Fix — spelling, punctuation, grammar
• ✂️ Shorten — cut the fluff, keep the essence
• 🚀 Improve — make the text clearer and more persuasive
• 🔄 Rephrase — say the same thing in different words
• 🎩 Formal — business register for documents
• 😊 Friendly — informal style for social media
• ➡️ Continue — let the AI extend your text

💡 Commands:
/edit - start editing
/help - help`

const helpMessage = `🆘 *Help*

📝 How to use:
1. Send /edit to begin
2. Send your text
3. Pick an action
4. Get the result!

Limits:
• Maximum text length: ~2000 characters
• Context is kept only within one session`

const (
	promptMessage     = "📝 *Send your text:*"
	processingMessage = "⏳ Processing..."
	cancelledMessage  = "❌ Cancelled"
	doneMessage       = "✅ *Editing finished!*"
	postEditMessage   = "*What next?*"
	restartMessage    = "✏️ *TextCraft AI*\n\nSend /edit to start again"
)

// actionMenuText presents a preview of the current text above the action menu
func actionMenuText(text string) string {
	return fmt.Sprintf("📋 *Current text:*\n\n%s\n\n*Pick an action:*", truncate(text, menuPreviewLen))
}

// resultText formats a completed transformation
func resultText(result *editor.Result) string {
	return fmt.Sprintf("%s *%s*\n\n%s", result.Action.Emoji(), strings.ToUpper(result.Action.Label()), result.Text)
}

// finalText formats the final text message for a completed session
func finalText(text string) string {
	return fmt.Sprintf("📋 *FINAL TEXT*\n\n%s", text)
}

// statsText formats the edit statistics for a completed session
func statsText(count int, actions []string) string {
	return fmt.Sprintf("📊 *Summary:*\n• Edits: %d\n• Actions: %s", count, strings.Join(actions, ", "))
}

// errorText maps core errors to user-facing messages
func errorText(err error) string {
	switch {
	case errors.Is(err, editor.ErrTextTooShort):
		return "⚠️ The text is too short!"
	case errors.Is(err, editor.ErrTextTooLong):
		return "⚠️ The text is too long!"
	case errors.Is(err, editor.ErrSessionExpired):
		return "❌ Session expired. Send /edit to start again"
	case errors.Is(err, editor.ErrTransformation):
		return "⚠️ Transformation failed, your text is unchanged. Pick an action to try again"
	default:
		return "⚠️ Something went wrong, please try again"
	}
}

// truncate shortens a string to at most n runes, appending an ellipsis when
// anything was cut
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// send delivers a message with an optional inline keyboard
func (b *Bot) send(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.client.Send(msg); err != nil {
		log.Printf("[BOT]: failed to send message to chat %d: %v", chatID, err)
	}
}

// edit rewrites an existing message in place, replacing its keyboard
func (b *Bot) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	var msg tgbotapi.EditMessageTextConfig
	if keyboard != nil {
		msg = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
	} else {
		msg = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.client.Send(msg); err != nil {
		log.Printf("[BOT]: failed to edit message %d in chat %d: %v", messageID, chatID, err)
	}
}
