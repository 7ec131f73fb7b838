package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/storage"
)

// handleQuiz starts a new game, replacing any game already running in the chat.
func (h *Handler) handleQuiz(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		total := h.defaultQuestions
		if args = strings.TrimSpace(args); args != "" {
			n, err := strconv.Atoi(args)
			if err != nil {
				return entities.ErrInvalidTotalQuestions
			}
			total = n
		}

		return h.startGame(ctx, chatID, total)
	}
}

func (h *Handler) startGame(ctx context.Context, chatID int64, total int) error {
	if err := entities.ValidateTotalQuestions(total); err != nil {
		return err
	}

	// The running game is kept until the new one has its first question.
	session, err := h.quizService.StartSession(ctx, total)
	if err != nil {
		return err
	}

	if old, ok := h.sessionFor(chatID); ok {
		if err := h.quizService.EndSession(ctx, old); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
			h.logger.Warn("failed to end previous session",
				zap.String("session_id", old),
				zap.Error(err),
			)
		}
	}
	h.bindSession(chatID, session.ID)

	h.logger.Debug("quiz session created",
		zap.Int64("chat_id", chatID),
		zap.String("session_id", session.ID),
		zap.Int("total_questions", total),
	)

	h.send(newMessage(chatID, formatQuizStart(total)))
	h.sendQuestion(chatID, session)
	return nil
}

// handleScore shows the progress of the current game.
func (h *Handler) handleScore() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, ok := h.sessionFor(chatID)
		if !ok {
			h.send(newPlainMessage(chatID, msgNoActiveGame))
			return nil
		}

		session, err := h.quizService.GetSession(ctx, id)
		if errors.Is(err, storage.ErrSessionNotFound) {
			h.unbindSession(chatID)
			h.send(newPlainMessage(chatID, msgNoActiveGame))
			return nil
		}
		if err != nil {
			return err
		}

		h.send(newMessage(chatID, formatProgress(session)))
		return nil
	}
}

// handleStop ends the current game.
func (h *Handler) handleStop() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, ok := h.unbindSession(chatID)
		if !ok {
			h.send(newPlainMessage(chatID, msgNoActiveGame))
			return nil
		}

		session, err := h.quizService.GetSession(ctx, id)
		if err == nil && session.State != entities.StateFinished && session.QuestionIndex >= 0 {
			h.send(newMessage(chatID, formatProgress(session)))
		}

		if err := h.quizService.EndSession(ctx, id); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
			return err
		}

		h.send(newPlainMessage(chatID, "Game stopped. Start a new one with /quiz."))
		return nil
	}
}

// sendQuestion sends the current question as a photo with answer buttons.
// Telegram cannot render the SVG dream world sprites, so artwork goes first.
func (h *Handler) sendQuestion(chatID int64, session *entities.Session) {
	q := session.Question
	kb := buildQuizAnswerKeyboard(session.ID, q, session.QuestionIndex)
	caption := formatQuestion(session)

	image := q.Artwork
	if image == "" && !strings.HasSuffix(strings.ToLower(q.Image), ".svg") {
		image = q.Image
	}

	if image == "" {
		msg := newMessage(chatID, caption)
		msg.ReplyMarkup = kb
		h.send(msg)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(image))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdownV2
	photo.ReplyMarkup = kb
	h.send(photo)
}
