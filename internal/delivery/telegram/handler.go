package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot              Bot
	logger           *zap.Logger
	quizService      QuizService
	defaultQuestions int

	mu    sync.Mutex
	chats map[int64]string // chat ID -> game session ID

	wg sync.WaitGroup // pending feedback timers
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizService QuizService,
	defaultQuestions int,
) *Handler {
	return &Handler{
		bot:              bot,
		logger:           logger,
		quizService:      quizService,
		defaultQuestions: defaultQuestions,
		chats:            make(map[int64]string),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				h.wg.Wait()
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start", "help":
		h.send(newPlainMessage(chatID, formatWelcome(h.defaultQuestions)))

	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz(update.Message.CommandArguments()))(ctx, chatID)

	case "score":
		_ = h.withErrorHandling(h.handleScore())(ctx, chatID)

	case "stop":
		_ = h.withErrorHandling(h.handleStop())(ctx, chatID)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sessionFor(chatID int64) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.chats[chatID]
	return id, ok
}

func (h *Handler) bindSession(chatID int64, sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.chats[chatID] = sessionID
}

func (h *Handler) unbindSession(chatID int64) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id, ok := h.chats[chatID]
	delete(h.chats, chatID)
	return id, ok
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}

func (h *Handler) request(c tgbotapi.Chattable) {
	if _, err := h.bot.Request(c); err != nil {
		h.logger.Warn("telegram request failed",
			zap.Error(err),
		)
	}
}
