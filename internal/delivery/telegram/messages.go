// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/storage"
)

// Error messages.
const (
	msgInvalidQuestions    = "Enter a number of questions from 1 to 150. Example: /quiz 10"
	msgQuestionUnavailable = "Could not load the next Pokémon. Try again in a moment."
	msgNoActiveGame        = "There is no game in progress. Start one with /quiz."
	msgStartFirst          = "Please start the game first: /quiz"
	msgInputLocked         = "Hold on, the answer is being checked."
	msgQuestionOver        = "This question is already over."
	msgInternalError       = "Something went wrong. Please try again later."
	msgUnknownCommand      = "Unknown command.\n\n/quiz N — play N questions\n/score — current score\n/stop — end the game"
)

const msgWelcome = "Who's that Pokémon?\n\n" +
	"I show you a Pokémon from the first generation and four names. Pick the right one!\n\n" +
	"/quiz N — play N questions (1–150, default %d)\n" +
	"/score — current score\n" +
	"/stop — end the game"

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// displayName turns an API name like "mr-mime" into "Mr Mime".
// A Caser keeps state, so each call gets its own.
func displayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// formatWelcome builds the /start text.
func formatWelcome(defaultQuestions int) string {
	return fmt.Sprintf(msgWelcome, defaultQuestions)
}

// formatQuizStart builds the game start message (MarkdownV2 safe).
func formatQuizStart(total int) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("🎯 The quiz begins!"),
		md(fmt.Sprintf("%d questions. Pick the right name for each Pokémon.", total)),
	)
}

// formatQuestion formats a question caption (MarkdownV2 safe).
func formatQuestion(s *entities.Session) string {
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		md(fmt.Sprintf("Question %d of %d", s.QuestionIndex+1, s.TotalQuestions)),
		bold("Who's that Pokémon?"),
		md(fmt.Sprintf("Score: %d", s.Score)),
	)
}

// formatAnswerFeedback formats feedback for an answer (MarkdownV2 safe).
func formatAnswerFeedback(res *entities.AnswerResult) string {
	if res.Correct {
		return fmt.Sprintf("%s %s", md("✅ Correct! It's"), bold(displayName(res.CorrectAnswer)))
	}
	return fmt.Sprintf(
		"%s\n\n%s %s",
		md("❌ Wrong answer"),
		md("It's"),
		bold(displayName(res.CorrectAnswer)),
	)
}

// formatQuizResult formats the final score (MarkdownV2 safe).
func formatQuizResult(sum *entities.Summary) string {
	percentage := float64(sum.Score) / float64(sum.TotalQuestions) * 100

	emoji, message := "📚", "Keep training, trainer!"
	switch {
	case percentage >= 90:
		emoji, message = "🌟", "You're a Pokémon master!"
	case percentage >= 70:
		emoji, message = "👍", "Great result!"
	case percentage >= 50:
		emoji, message = "💪", "Not bad, keep going!"
	}

	return fmt.Sprintf(
		"%s %s\n\n%s %s\n%s\n\n%s",
		md(emoji),
		md("Game over!"),
		md("Your final score:"),
		bold(fmt.Sprintf("%d out of %d", sum.Score, sum.TotalQuestions)),
		md(buildProgressBar(sum.Score, sum.TotalQuestions, 10)),
		md(message),
	)
}

// formatProgress formats the /score reply (MarkdownV2 safe).
func formatProgress(s *entities.Session) string {
	if s.State == entities.StateFinished && s.FinalScore != nil {
		return formatQuizResult(s.FinalScore)
	}
	answered := s.QuestionIndex
	if s.State == entities.StateShowingFeedback {
		answered++
	}
	return fmt.Sprintf(
		"%s\n%s",
		md(fmt.Sprintf("Score: %d / %d answered", s.Score, answered)),
		md(buildProgressBar(answered, s.TotalQuestions, 10)),
	)
}

// buildProgressBar renders current/total as a bar of length cells.
func buildProgressBar(current, total, length int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", length) + "]"
	}
	filled := current * length / total
	filled = max(0, min(filled, length))
	return fmt.Sprintf("[%s%s]", strings.Repeat("█", filled), strings.Repeat("░", length-filled))
}

// userMessage maps a service error to text shown in the chat.
func userMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrInvalidTotalQuestions):
		return msgInvalidQuestions
	case errors.Is(err, entities.ErrNotStarted), errors.Is(err, storage.ErrSessionNotFound):
		return msgStartFirst
	case errors.Is(err, entities.ErrInputLocked), errors.Is(err, entities.ErrFeedbackPending):
		return msgInputLocked
	case errors.Is(err, entities.ErrInvalidOption), errors.Is(err, entities.ErrInvalidTransition):
		return msgQuestionOver
	default:
		return msgInternalError
	}
}
