package bot

import (
	"github.com/m3rciful/privacybot/core/telegram/keyboard"
	"github.com/m3rciful/privacybot/internal/quiz"

	tele "gopkg.in/telebot.v4"
)

// startCheckCallback is the inline button key that begins the audit.
const startCheckCallback = "start_check"

func answerKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		quiz.Answers(),
		[]string{quiz.CancelSentinel},
	)
}

func beginKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🚀 Начать проверку", Unique: startCheckCallback},
	})
}

func removeKeyboard() *tele.ReplyMarkup {
	return keyboard.RemoveKeyboard()
}
