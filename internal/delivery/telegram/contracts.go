package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type QuizService interface {
	StartSession(ctx context.Context, totalQuestions int) (*entities.Session, error)
	GetSession(ctx context.Context, id string) (*entities.Session, error)
	SubmitAnswer(ctx context.Context, id string, option string) (*entities.AnswerResult, error)
	Advance(ctx context.Context, id string) (*entities.Session, error)
	EndSession(ctx context.Context, id string) error
	FeedbackDelay() time.Duration
}
