package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

// buildQuizAnswerKeyboard builds keyboard for quiz question.
func buildQuizAnswerKeyboard(sessionID string, q *entities.Question, questionIndex int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		button := tgbotapi.NewInlineKeyboardButtonData(displayName(option), buildAnswerCallback(sessionID, questionIndex, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnsweredKeyboard marks the correct option and the wrong pick, if any.
// Buttons keep their callbacks; the handler ignores answers to old questions.
func buildAnsweredKeyboard(sessionID string, q *entities.Question, questionIndex int, res *entities.AnswerResult) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := displayName(option)
		switch {
		case option == res.CorrectAnswer:
			label = "✅ " + label
		case option == res.Selected:
			label = "❌ " + label
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(sessionID, questionIndex, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard(total int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play again", buildQuizStartCallback(total)),
		),
	)
}

// buildRetryKeyboard offers to retry a failed question fetch.
func buildRetryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Try again", buildNextCallback()),
		),
	)
}
