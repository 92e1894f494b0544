// Package telegram adapts the Telegram Bot API to the engine's event and
// transport boundaries. It owns all network I/O and wire mapping; the
// engine never sees a tgbotapi type.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"momenta/internal/engine"
)

type Bot struct {
	api         *tgbotapi.BotAPI
	s           sender
	http        *http.Client
	pollTimeout int
}

func New(botToken string, pollTimeoutSeconds int) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:         api,
		s:           botAPISender{api: api},
		http:        http.DefaultClient,
		pollTimeout: pollTimeoutSeconds,
	}, nil
}

// Poll requests one batch of updates starting at offset. The call blocks
// on Telegram long polling until updates arrive or the timeout passes.
func (b *Bot) Poll(ctx context.Context, offset int64, limit int) ([]engine.Event, error) {
	u := tgbotapi.NewUpdate(int(offset))
	u.Limit = limit
	u.Timeout = b.pollTimeout

	updates, err := b.api.GetUpdates(u)
	if err != nil {
		return nil, fmt.Errorf("get updates: %w", err)
	}

	events := make([]engine.Event, 0, len(updates))
	for _, up := range updates {
		events = append(events, toEvent(up))
	}
	return events, nil
}

// toEvent maps one update to an engine event. Updates that carry no user
// interaction become KindIgnore so the cursor still advances past them.
func toEvent(up tgbotapi.Update) engine.Event {
	ev := engine.Event{ID: int64(up.UpdateID)}

	switch {
	case up.CallbackQuery != nil:
		ev.Kind = engine.KindCallback
		ev.UserID = up.CallbackQuery.From.ID
		ev.GestureID = up.CallbackQuery.ID
		ev.Text = up.CallbackQuery.Data
	case up.Message != nil && up.Message.From != nil:
		ev.UserID = up.Message.From.ID
		switch {
		case up.Message.IsCommand() && up.Message.Command() == "start":
			ev.Kind = engine.KindLaunch
			ev.LaunchParam = up.Message.CommandArguments()
		case up.Message.Voice != nil:
			ev.Kind = engine.KindVoice
			ev.VoiceFileID = up.Message.Voice.FileID
		default:
			ev.Kind = engine.KindText
			ev.Text = up.Message.Text
		}
	default:
		ev.Kind = engine.KindIgnore
	}
	return ev
}

func (b *Bot) SendText(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message to %d: %v", userID, err)
	}
}

func (b *Bot) SendMenu(userID int64, text string, menu engine.Menu) {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = keyboard(menu)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send menu to %d: %v", userID, err)
	}
}

// AckGesture answers the callback query so the client stops the spinner,
// including for taps the engine suppressed as duplicates.
func (b *Bot) AckGesture(gestureID string) {
	if _, err := b.s.Request(tgbotapi.NewCallback(gestureID, "")); err != nil {
		log.Printf("failed to ack callback %s: %v", gestureID, err)
	}
}

// SendReminder dispatches a scheduled question with a shortcut to start a
// moment right from the notification.
func (b *Bot) SendReminder(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✍️ Записать момент", "add"),
		),
	)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send reminder to %d: %v", userID, err)
	}
}

func (b *Bot) DownloadVoice(fileID string) ([]byte, string, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, "", fmt.Errorf("resolve voice file %s: %w", fileID, err)
	}
	resp, err := b.http.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("download voice file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download voice file: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read voice file: %w", err)
	}
	return data, "voice.ogg", nil
}

func keyboard(menu engine.Menu) tgbotapi.InlineKeyboardMarkup {
	switch menu {
	case engine.MenuSettings:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🕘 Начало окна", "set_hours_start"),
				tgbotapi.NewInlineKeyboardButtonData("🕘 Конец окна", "set_hours_end"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("⏱ Интервал", "set_interval"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🔔 Вкл", "notif_on"),
				tgbotapi.NewInlineKeyboardButtonData("🔕 Выкл", "notif_off"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", "lang_ru"),
				tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", "lang_en"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🎩 На «Вы»", "formal_on"),
				tgbotapi.NewInlineKeyboardButtonData("👋 На «ты»", "formal_off"),
			),
		)
	default:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✍️ Добавить", "add"),
				tgbotapi.NewInlineKeyboardButtonData("📖 Моменты", "moments"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", "stats"),
				tgbotapi.NewInlineKeyboardButtonData("⚙️ Настройки", "settings"),
			),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💬 Диалог", "dialog"),
				tgbotapi.NewInlineKeyboardButtonData("🚪 Выйти", "exit"),
			),
		)
	}
}
