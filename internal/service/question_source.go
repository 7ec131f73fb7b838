package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

// PokemonGetter fetches catalog records by id.
type PokemonGetter interface {
	GetPokemon(ctx context.Context, id int) (*entities.Pokemon, error)
}

// QuestionSource draws random catalog entries and turns them into questions.
type QuestionSource struct {
	getter      PokemonGetter
	catalogSize int
	rng         Randomizer
	options     *OptionGenerator
	logger      *zap.Logger
}

// NewQuestionSource creates a source drawing ids from [1, catalogSize].
func NewQuestionSource(
	getter PokemonGetter,
	catalogSize int,
	distractors int,
	maxDrawAttempts int,
	rng Randomizer,
	logger *zap.Logger,
) *QuestionSource {
	s := &QuestionSource{
		getter:      getter,
		catalogSize: catalogSize,
		rng:         rng,
		logger:      logger,
	}
	s.options = NewOptionGenerator(s, rng, distractors, maxDrawAttempts, logger)
	return s
}

// CatalogSize returns the number of ids the source draws from.
func (s *QuestionSource) CatalogSize() int {
	return s.catalogSize
}

func (s *QuestionSource) randomID() int {
	return s.rng.IntN(s.catalogSize) + 1
}

// FetchEntityName returns the canonical name of the record with id.
func (s *QuestionSource) FetchEntityName(ctx context.Context, id int) (string, error) {
	p, err := s.getter.GetPokemon(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}

// FetchRandomEntityName returns the name of a uniformly drawn record.
func (s *QuestionSource) FetchRandomEntityName(ctx context.Context) (string, error) {
	return s.FetchEntityName(ctx, s.randomID())
}

// FetchRandomQuestion draws a record and builds a question around its name.
func (s *QuestionSource) FetchRandomQuestion(ctx context.Context) (*entities.Question, error) {
	id := s.randomID()

	p, err := s.getter.GetPokemon(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch question pokemon: %w", err)
	}

	options, err := s.options.BuildOptions(ctx, p.Name, 0)
	if err != nil {
		return nil, fmt.Errorf("build options for %s: %w", p.Name, err)
	}

	s.logger.Debug("question generated",
		zap.Int("pokemon_id", id),
		zap.String("answer", p.Name),
	)

	return &entities.Question{
		Image:         p.ImageURL,
		Artwork:       p.ArtworkURL,
		CorrectAnswer: p.Name,
		Options:       options,
	}, nil
}
