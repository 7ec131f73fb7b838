package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

// queueSource hands out queued names in call order, then repeats fallback forever.
type queueSource struct {
	mu        sync.Mutex
	queue     []string
	fallback  string
	size      int
	poolNames map[int]string
	draws     int
	poolReads int
	err       error
}

func (s *queueSource) FetchRandomEntityName(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draws++
	if s.err != nil {
		return "", s.err
	}
	if len(s.queue) == 0 {
		return s.fallback, nil
	}
	name := s.queue[0]
	s.queue = s.queue[1:]
	return name, nil
}

func (s *queueSource) FetchEntityName(_ context.Context, id int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.poolReads++
	if name, ok := s.poolNames[id]; ok {
		return name, nil
	}
	return fmt.Sprintf("mon-%d", id), nil
}

func (s *queueSource) CatalogSize() int { return s.size }

// catalog is an in-memory PokemonGetter.
type catalog struct {
	mu    sync.Mutex
	names map[int]string
	calls int
	err   error
}

func newCatalog(n int) *catalog {
	c := &catalog{names: make(map[int]string, n)}
	for i := 1; i <= n; i++ {
		c.names[i] = fmt.Sprintf("mon-%d", i)
	}
	return c
}

func (c *catalog) GetPokemon(_ context.Context, id int) (*entities.Pokemon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	name, ok := c.names[id]
	if !ok {
		return nil, fmt.Errorf("no pokemon %d", id)
	}
	return &entities.Pokemon{
		ID:         id,
		Name:       name,
		ImageURL:   fmt.Sprintf("https://img.test/dream/%d.svg", id),
		ArtworkURL: fmt.Sprintf("https://img.test/art/%d.png", id),
	}, nil
}
