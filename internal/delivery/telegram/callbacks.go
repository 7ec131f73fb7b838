package telegram

import (
	"context"
	"errors"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	// Toast shown to the user; empty just removes the "clock".
	toast := ""

	switch data.Action {
	case actionAnswer:
		toast = h.handleAnswerCallback(ctx, cb, data)

	case actionNext:
		toast = h.handleNextCallback(ctx, chatID)

	case actionQuiz:
		if len(data.Params) == 2 && data.Params[0] == quizStart {
			total, err := strconv.Atoi(data.Params[1])
			if err != nil {
				total = h.defaultQuestions
			}
			_ = h.withErrorHandling(func(ctx context.Context, chatID int64) error {
				return h.startGame(ctx, chatID, total)
			})(ctx, chatID)
		}

	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	h.request(tgbotapi.NewCallback(cb.ID, toast))
}

// handleAnswerCallback submits the picked option and schedules the next question.
func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) string {
	chatID := cb.Message.Chat.ID

	tag, qIdx, optIdx, ok := parseAnswerCallback(data)
	if !ok {
		h.logger.Warn("invalid answer callback", zap.String("data", cb.Data))
		return ""
	}

	id, ok := h.sessionFor(chatID)
	if !ok {
		return msgStartFirst
	}

	session, err := h.quizService.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			h.unbindSession(chatID)
			return msgStartFirst
		}
		h.logger.Error("failed to load session", zap.String("session_id", id), zap.Error(err))
		return msgInternalError
	}

	if gameTag(session.ID) != tag || session.QuestionIndex != qIdx || session.Question == nil {
		return msgQuestionOver
	}
	if session.State == entities.StateShowingFeedback {
		return msgInputLocked
	}
	if optIdx >= len(session.Question.Options) {
		return msgQuestionOver
	}

	res, err := h.quizService.SubmitAnswer(ctx, id, session.Question.Options[optIdx])
	if err != nil {
		if !errors.Is(err, entities.ErrInputLocked) {
			h.logger.Warn("answer rejected",
				zap.String("session_id", id),
				zap.Error(err),
			)
		}
		return userMessage(err)
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID,
		buildAnsweredKeyboard(session.ID, session.Question, qIdx, res))
	h.request(edit)

	h.send(newMessage(chatID, formatAnswerFeedback(res)))

	h.scheduleAdvance(ctx, chatID, id)
	return ""
}

// handleNextCallback retries fetching the next question after a failure.
func (h *Handler) handleNextCallback(ctx context.Context, chatID int64) string {
	id, ok := h.sessionFor(chatID)
	if !ok {
		return msgStartFirst
	}

	if err := h.advance(ctx, chatID, id); err != nil {
		return userMessage(err)
	}
	return ""
}

// scheduleAdvance moves the session on once the feedback delay has passed.
func (h *Handler) scheduleAdvance(ctx context.Context, chatID int64, sessionID string) {
	delay := h.quizService.FeedbackDelay()
	if delay <= 0 {
		_ = h.advance(ctx, chatID, sessionID)
		return
	}

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		_ = h.advance(ctx, chatID, sessionID)
	}()
}

// advance shows the next question or the final score.
// A session stopped during the feedback delay is skipped silently.
func (h *Handler) advance(ctx context.Context, chatID int64, sessionID string) error {
	session, err := h.quizService.Advance(ctx, sessionID)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		return nil
	case errors.Is(err, entities.ErrFeedbackPending), errors.Is(err, entities.ErrInvalidTransition):
		return err
	case err != nil:
		h.logger.Error("failed to advance session",
			zap.Int64("chat_id", chatID),
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		msg := newPlainMessage(chatID, msgQuestionUnavailable)
		msg.ReplyMarkup = buildRetryKeyboard()
		h.send(msg)
		return nil
	}

	if session.State == entities.StateFinished {
		msg := newMessage(chatID, formatQuizResult(session.FinalScore))
		msg.ReplyMarkup = buildQuizResultKeyboard(session.FinalScore.TotalQuestions)
		h.send(msg)
		return nil
	}

	h.sendQuestion(chatID, session)
	return nil
}
