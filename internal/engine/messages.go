package engine

import (
	"fmt"
	"strings"

	"momenta/internal/moment"
	"momenta/internal/profile"
	"momenta/internal/stats"
)

// User-facing texts. Russian is the primary audience; English covers
// everyone else. Failures are always rendered as plain, actionable
// prompts, never internal error detail.
var catalog = map[string]map[string]string{
	"greeting": {
		"ru": "Привет! Я помогу сохранять маленькие моменты каждого дня.",
		"en": "Hi! I help you capture the small moments of every day.",
	},
	"greeting_formal": {
		"ru": "Здравствуйте! Я помогу Вам сохранять маленькие моменты каждого дня.",
		"en": "Hello! I help you capture the small moments of every day.",
	},
	"menu_hint": {
		"ru": "Что делаем дальше?",
		"en": "What shall we do next?",
	},
	"add_prompt": {
		"ru": "Расскажи про момент — текстом или голосом.",
		"en": "Tell me about the moment — text or voice.",
	},
	"moment_saved": {
		"ru": "Момент сохранён ✨ Текущая серия: %d дн.",
		"en": "Moment saved ✨ Current streak: %d days.",
	},
	"dialog_intro": {
		"ru": "Давай просто поговорим. Нажми «Выйти», когда захочешь закончить.",
		"en": "Let's just talk. Tap \"Exit\" whenever you want to stop.",
	},
	"dialog_exit": {
		"ru": "Диалог завершён.",
		"en": "Dialog finished.",
	},
	"dialog_failed": {
		"ru": "Не получилось ответить, попробуй ещё раз.",
		"en": "Could not reply, please try again.",
	},
	"dialog_unavailable": {
		"ru": "Свободный диалог сейчас недоступен.",
		"en": "Free dialog is not available right now.",
	},
	"idle_hint": {
		"ru": "Чтобы записать момент, нажми «Добавить».",
		"en": "To record a moment, tap \"Add\".",
	},
	"ask_hours_start": {
		"ru": "С какого часа можно присылать напоминания? Введи число от 0 до 23.",
		"en": "From which hour may I send reminders? Enter a number from 0 to 23.",
	},
	"ask_hours_end": {
		"ru": "До какого часа можно присылать напоминания? Введи число от 0 до 23.",
		"en": "Until which hour may I send reminders? Enter a number from 0 to 23.",
	},
	"ask_interval": {
		"ru": "Как часто напоминать? Введи интервал в часах (1–24).",
		"en": "How often should I remind you? Enter the interval in hours (1–24).",
	},
	"bad_setting_value": {
		"ru": "Не понял значение. Введи, пожалуйста, число, например 9.",
		"en": "I did not get that. Please enter a number, for example 9.",
	},
	"setting_updated": {
		"ru": "Готово, настройка обновлена.",
		"en": "Done, the setting is updated.",
	},
	"notif_on": {
		"ru": "Напоминания включены.",
		"en": "Reminders are on.",
	},
	"notif_off": {
		"ru": "Напоминания выключены.",
		"en": "Reminders are off.",
	},
	"voice_unavailable": {
		"ru": "Голосовые пока не поддерживаются, напиши текстом.",
		"en": "Voice notes are not supported yet, please type instead.",
	},
	"voice_failed": {
		"ru": "Не удалось разобрать голосовое, попробуй ещё раз или напиши текстом.",
		"en": "Could not make out the voice note, try again or type instead.",
	},
	"no_moments": {
		"ru": "Пока нет ни одного момента. Самое время добавить первый!",
		"en": "No moments yet. A perfect time to add the first one!",
	},
	"moments_header": {
		"ru": "Последние моменты:",
		"en": "Recent moments:",
	},
	"help": {
		"ru": "Я записываю твои моменты, напоминаю о них и показываю статистику. Команда /start открывает меню.",
		"en": "I record your moments, remind you about them and show stats. /start opens the menu.",
	},
	"privacy": {
		"ru": "Твои записи хранятся только для тебя и никогда не передаются третьим лицам.",
		"en": "Your records are stored for you alone and never shared with third parties.",
	},
	"unknown_link": {
		"ru": "Не узнаю эту ссылку, но вот главное меню.",
		"en": "I do not recognize that link, but here is the main menu.",
	},
	"referral_thanks": {
		"ru": "Рад, что тебя позвали! Добро пожаловать.",
		"en": "Glad a friend sent you! Welcome.",
	},
	"stats_header": {
		"ru": "📊 Твоя статистика",
		"en": "📊 Your stats",
	},
	"stats_moments": {
		"ru": "Моментов: %d",
		"en": "Moments: %d",
	},
	"stats_streak": {
		"ru": "Серия: %d дн. (лучшая: %d)",
		"en": "Streak: %d days (best: %d)",
	},
	"stats_answered": {
		"ru": "Отвечено на вопросы: %d из %d (%d%%)",
		"en": "Questions answered: %d of %d (%d%%)",
	},
}

func lang(p *profile.Profile) string {
	if p.LanguageCode == "ru" {
		return "ru"
	}
	return "en"
}

func (e *Engine) t(p *profile.Profile, key string) string {
	if key == "greeting" && p.FormalAddress {
		key = "greeting_formal"
	}
	m, ok := catalog[key]
	if !ok {
		return key
	}
	return m[lang(p)]
}

func (e *Engine) tf(p *profile.Profile, key string, args ...any) string {
	return fmt.Sprintf(e.t(p, key), args...)
}

func (e *Engine) renderStats(p *profile.Profile, s stats.Summary) string {
	var b strings.Builder
	b.WriteString(e.t(p, "stats_header"))
	b.WriteString("\n")
	b.WriteString(e.tf(p, "stats_moments", s.MomentsTotal))
	b.WriteString("\n")
	b.WriteString(e.tf(p, "stats_streak", s.CurrentStreak, s.BestStreak))
	// The answered line is omitted entirely until a question was sent.
	if s.AnsweredPercent != nil {
		b.WriteString("\n")
		b.WriteString(e.tf(p, "stats_answered", s.QuestionsAnswered, s.QuestionsSent, *s.AnsweredPercent))
	}
	return b.String()
}

func (e *Engine) renderMoments(p *profile.Profile, history []*moment.Moment) string {
	if len(history) == 0 {
		return e.t(p, "no_moments")
	}
	const show = 5
	start := 0
	if len(history) > show {
		start = len(history) - show
	}
	var b strings.Builder
	b.WriteString(e.t(p, "moments_header"))
	for _, m := range history[start:] {
		b.WriteString("\n• ")
		b.WriteString(m.CreatedAt.Format("02.01"))
		b.WriteString(" — ")
		b.WriteString(m.Text)
	}
	return b.String()
}
