package pokeapi

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

// Getter fetches a catalog record by id.
type Getter interface {
	GetPokemon(ctx context.Context, id int) (*entities.Pokemon, error)
}

// CachedClient keeps recently fetched records in memory. Records are
// immutable, so entries never need invalidation.
type CachedClient struct {
	next  Getter
	cache *lru.Cache[int, entities.Pokemon]
}

// NewCachedClient wraps next with an LRU cache holding up to size records.
func NewCachedClient(next Getter, size int) (*CachedClient, error) {
	cache, err := lru.New[int, entities.Pokemon](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}

	return &CachedClient{
		next:  next,
		cache: cache,
	}, nil
}

// GetPokemon returns the cached record or fetches and caches it.
func (c *CachedClient) GetPokemon(ctx context.Context, id int) (*entities.Pokemon, error) {
	if p, ok := c.cache.Get(id); ok {
		return &p, nil
	}

	p, err := c.next.GetPokemon(ctx, id)
	if err != nil {
		return nil, err
	}

	c.cache.Add(id, *p)
	return p, nil
}

// Len returns the number of cached records.
func (c *CachedClient) Len() int {
	return c.cache.Len()
}
