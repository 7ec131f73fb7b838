package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/config"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/infra/pokeapi"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/logger"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/service"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/storage"
)

// app holds the dependencies shared by all subcommands.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	questions *service.QuestionSource
	sessions  *storage.SessionStorage
	quiz      *service.QuizService
	janitor   *service.SessionJanitor
}

func newApp(configDir string) (*app, error) {
	cfg, err := config.LoadFrom(configDir)
	if err != nil {
		return nil, err
	}

	lg, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var getter service.PokemonGetter = pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout)
	if cfg.PokeAPI.CacheSize > 0 {
		cached, err := pokeapi.NewCachedClient(getter, cfg.PokeAPI.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("init pokeapi cache: %w", err)
		}
		getter = cached
	}

	questions := service.NewQuestionSource(
		getter,
		cfg.Quiz.CatalogSize,
		cfg.Quiz.Distractors,
		cfg.Quiz.MaxDrawAttempts,
		service.DefaultRandomizer(),
		lg,
	)

	sessions := storage.NewSessionStorage()

	return &app{
		cfg:       cfg,
		logger:    lg,
		questions: questions,
		sessions:  sessions,
		quiz:      service.NewQuizService(questions, sessions, cfg.Quiz.FeedbackDelay, lg),
		janitor:   service.NewSessionJanitor(sessions, cfg.Sessions.TTL, cfg.Sessions.CleanupInterval, lg),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
