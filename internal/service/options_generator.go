package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var ErrNotEnoughDistinctNames = errors.New("not enough distinct names in catalog")

// NameSource draws catalog names for distractors.
type NameSource interface {
	FetchRandomEntityName(ctx context.Context) (string, error)
	FetchEntityName(ctx context.Context, id int) (string, error)
	CatalogSize() int
}

// OptionGenerator builds multiple choice options around a correct answer.
type OptionGenerator struct {
	source      NameSource
	rng         Randomizer
	distractors int
	maxAttempts int
	logger      *zap.Logger
}

// NewOptionGenerator creates a generator producing distractors wrong
// options per question. maxAttempts caps random draws per question before
// the generator walks a shuffled id pool instead; 0 means 10 per distractor.
func NewOptionGenerator(
	source NameSource,
	rng Randomizer,
	distractors int,
	maxAttempts int,
	logger *zap.Logger,
) *OptionGenerator {
	return &OptionGenerator{
		source:      source,
		rng:         rng,
		distractors: distractors,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// BuildOptions returns correctAnswer and distractorCount distinct names in
// random order. A non-positive distractorCount selects the configured default.
func (g *OptionGenerator) BuildOptions(ctx context.Context, correctAnswer string, distractorCount int) ([]string, error) {
	if distractorCount <= 0 {
		distractorCount = g.distractors
	}

	want := distractorCount + 1
	if want > g.source.CatalogSize() {
		return nil, fmt.Errorf("%w: need %d of %d", ErrNotEnoughDistinctNames, want, g.source.CatalogSize())
	}

	maxAttempts := g.maxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10 * distractorCount
	}

	options := make([]string, 0, want)
	options = append(options, correctAnswer)
	seen := map[string]struct{}{correctAnswer: {}}

	attempts := 0
	for len(options) < want && attempts < maxAttempts {
		batch := min(want-len(options), maxAttempts-attempts)
		attempts += batch

		names, err := g.drawBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("draw distractors: %w", err)
		}

		for _, name := range names {
			if _, dup := seen[name]; dup {
				g.logger.Debug("duplicate distractor redrawn",
					zap.String("name", name),
					zap.String("correct", correctAnswer),
				)
				continue
			}
			seen[name] = struct{}{}
			options = append(options, name)
		}
	}

	if len(options) < want {
		g.logger.Warn("random draws exhausted, falling back to id pool",
			zap.Int("attempts", attempts),
			zap.Int("missing", want-len(options)),
		)

		var err error
		options, err = g.fillFromPool(ctx, options, seen, want)
		if err != nil {
			return nil, err
		}
	}

	Shuffle(g.rng, options)
	return options, nil
}

// drawBatch issues n random name draws concurrently. Results keep the slot order.
func (g *OptionGenerator) drawBatch(ctx context.Context, n int) ([]string, error) {
	names := make([]string, n)

	eg, ctx := errgroup.WithContext(ctx)
	for i := range names {
		eg.Go(func() error {
			name, err := g.source.FetchRandomEntityName(ctx)
			if err != nil {
				return err
			}
			names[i] = name
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

// fillFromPool walks every catalog id in random order until options holds want names.
func (g *OptionGenerator) fillFromPool(ctx context.Context, options []string, seen map[string]struct{}, want int) ([]string, error) {
	ids := make([]int, g.source.CatalogSize())
	for i := range ids {
		ids[i] = i + 1
	}
	Shuffle(g.rng, ids)

	for _, id := range ids {
		if len(options) == want {
			return options, nil
		}

		name, err := g.source.FetchEntityName(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("fetch pool name %d: %w", id, err)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		options = append(options, name)
	}

	if len(options) < want {
		return nil, fmt.Errorf("%w: found %d of %d", ErrNotEnoughDistinctNames, len(options), want)
	}
	return options, nil
}
