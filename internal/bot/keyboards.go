package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ethanbaker/textcraft/pkg/editor"
)

// Control tokens used as callback data alongside the action tokens
const (
	tokenCancel   = "cancel"
	tokenEditMore = "edit_more"
	tokenDone     = "done"
)

// actionKeyboard builds the action menu: two actions per row, then a
// cancel row
func actionKeyboard() *tgbotapi.InlineKeyboardMarkup {
	actions := editor.Actions()

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(actions); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{actionButton(actions[i])}
		if i+1 < len(actions) {
			row = append(row, actionButton(actions[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", tokenCancel),
	))

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// postEditKeyboard builds the keyboard shown after a completed edit
func postEditKeyboard() *tgbotapi.InlineKeyboardMarkup {
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Keep editing", tokenEditMore),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏁 Done", tokenDone),
		),
	)
	return &markup
}

// actionButton builds one action button with its emoji label
func actionButton(action editor.Action) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(action.Emoji()+" "+action.Label(), string(action))
}

// parseControlToken maps keyboard control tokens to machine commands
func parseControlToken(data string) (editor.Command, bool) {
	switch data {
	case tokenCancel:
		return editor.CommandCancel, true
	case tokenEditMore:
		return editor.CommandEditMore, true
	case tokenDone:
		return editor.CommandDone, true
	}
	return "", false
}

// parseCommand maps slash commands to machine commands
func parseCommand(name string) (editor.Command, bool) {
	switch name {
	case "start":
		return editor.CommandStart, true
	case "help":
		return editor.CommandHelp, true
	case "edit":
		return editor.CommandEdit, true
	case "cancel":
		return editor.CommandCancel, true
	}
	return "", false
}
