package bot

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ethanbaker/textcraft/pkg/editor"
)

// handleTimeout bounds the handling of a single update, including the
// transformation call
const handleTimeout = 2 * time.Minute

// handleUpdate routes one inbound update through the conversation state
// machine and performs the resulting effects
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

// handleMessage processes commands and free-text submissions
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	userID := strconv.FormatInt(msg.From.ID, 10)
	chatID := msg.Chat.ID

	var input editor.Input
	if msg.IsCommand() {
		cmd, ok := parseCommand(msg.Command())
		if !ok {
			b.send(chatID, helpMessage, nil)
			return
		}
		input = editor.CommandInput(cmd)
	} else {
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			return
		}
		input = editor.TextInput(text)
	}

	b.step(ctx, chatID, 0, userID, input)
}

// handleCallback processes inline keyboard presses. Callback data is either
// an action token or a control token; anything else is a stale or malformed
// selection and is answered with a generic error
func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// acknowledge so the client stops showing a spinner
	if _, err := b.client.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Printf("[BOT]: failed to answer callback: %v", err)
	}

	if query.From == nil || query.Message == nil {
		return
	}
	userID := strconv.FormatInt(query.From.ID, 10)
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID

	var input editor.Input
	if cmd, ok := parseControlToken(query.Data); ok {
		input = editor.CommandInput(cmd)
	} else if action, err := editor.ParseAction(query.Data); err == nil {
		input = editor.ActionInput(action)
	} else {
		b.edit(chatID, messageID, errorText(editor.ErrUnknownAction), nil)
		return
	}

	b.step(ctx, chatID, messageID, userID, input)
}

// step runs one state machine transition and performs its effects. A
// non-zero messageID means the triggering event was a keyboard press and
// menu effects should edit that message in place instead of sending new ones
func (b *Bot) step(ctx context.Context, chatID int64, messageID int, userID string, input editor.Input) {
	view := b.viewFor(userID)
	outcome := editor.Transition(editor.StateFor(view), view, input)

	if outcome.EndSession {
		b.store.Delete(userID)
	}

	for _, effect := range outcome.Effects {
		b.runEffect(ctx, chatID, messageID, userID, effect)
	}
}

// viewFor builds the machine's read-only view of the user's session
func (b *Bot) viewFor(userID string) editor.SessionView {
	sess, exists := b.store.Get(userID)
	if !exists {
		return editor.SessionView{}
	}

	labels := make([]string, 0, len(sess.History))
	for _, edit := range sess.History {
		labels = append(labels, editor.Action(edit.Action).Label())
	}
	return editor.SessionView{
		Exists:      true,
		CurrentText: sess.CurrentText,
		EditCount:   sess.EditCount(),
		Actions:     labels,
	}
}

// runEffect performs a single effect
func (b *Bot) runEffect(ctx context.Context, chatID int64, messageID int, userID string, effect editor.Effect) {
	switch effect.Kind {
	case editor.EffectCreateSession:
		b.store.Create(userID, effect.Text)

	case editor.EffectDispatch:
		b.runDispatch(ctx, chatID, messageID, userID, effect.Action)

	case editor.EffectPrompt:
		b.send(chatID, promptMessage, nil)

	case editor.EffectShowActionMenu:
		text := actionMenuText(effect.Text)
		if messageID != 0 {
			b.edit(chatID, messageID, text, actionKeyboard())
		} else {
			b.send(chatID, text, actionKeyboard())
		}

	case editor.EffectShowPostEditMenu:
		text := effect.Text
		if text == "" {
			text = postEditMessage
		}
		if messageID != 0 {
			b.edit(chatID, messageID, text, postEditKeyboard())
		} else {
			b.send(chatID, text, postEditKeyboard())
		}

	case editor.EffectFinalSummary:
		b.sendFinalSummary(chatID, messageID, effect)

	case editor.EffectCancelled:
		if messageID != 0 {
			b.edit(chatID, messageID, cancelledMessage, nil)
		} else {
			b.send(chatID, cancelledMessage, nil)
		}

	case editor.EffectWelcome:
		b.send(chatID, welcomeMessage, nil)

	case editor.EffectHelp:
		b.send(chatID, helpMessage, nil)

	case editor.EffectError:
		b.send(chatID, errorText(effect.Err), nil)
	}
}

// runDispatch performs one transformation and presents the result with the
// post-edit keyboard, or reports the failure while the session stays intact
func (b *Bot) runDispatch(ctx context.Context, chatID int64, messageID int, userID string, action editor.Action) {
	if messageID != 0 {
		b.edit(chatID, messageID, processingMessage, nil)
	}
	if _, err := b.client.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("[BOT]: failed to send typing action: %v", err)
	}

	result, err := b.dispatcher.Apply(ctx, userID, action)
	if err != nil {
		log.Printf("[BOT]: %s dispatch failed for user %s: %v", action, userID, err)
		text := errorText(err)
		if !errors.Is(err, editor.ErrSessionExpired) && !errors.Is(err, editor.ErrUnknownAction) {
			// transformation failures keep the session, so re-offer the menu
			if messageID != 0 {
				b.edit(chatID, messageID, text, actionKeyboard())
			} else {
				b.send(chatID, text, actionKeyboard())
			}
			return
		}
		if messageID != 0 {
			b.edit(chatID, messageID, text, nil)
		} else {
			b.send(chatID, text, nil)
		}
		return
	}

	// fold the result into the "Processing..." message when one exists
	b.runEffect(ctx, chatID, messageID, userID, editor.Effect{
		Kind: editor.EffectShowPostEditMenu,
		Text: resultText(result),
	})
}

// sendFinalSummary emits the final text followed by an edit statistics
// message, mirroring the original flow of separate messages
func (b *Bot) sendFinalSummary(chatID int64, messageID int, effect editor.Effect) {
	if messageID != 0 {
		b.edit(chatID, messageID, doneMessage, nil)
	} else {
		b.send(chatID, doneMessage, nil)
	}

	b.send(chatID, finalText(effect.Text), nil)
	if effect.EditCount > 0 {
		b.send(chatID, statsText(effect.EditCount, effect.Actions), nil)
	}
	b.send(chatID, restartMessage, nil)
}
