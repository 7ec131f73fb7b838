package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

var (
	ErrPokemonNotFound   = errors.New("pokemon not found")
	ErrUnexpectedStatus  = errors.New("unexpected status from pokeapi")
	ErrMalformedResponse = errors.New("malformed pokeapi response")
)

// Client looks up catalog records on a PokeAPI compatible server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL, e.g. https://pokeapi.co/api/v2/pokemon.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// pokemonResponse is the subset of the PokeAPI pokemon document we consume.
type pokemonResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		Other struct {
			DreamWorld struct {
				FrontDefault *string `json:"front_default"`
			} `json:"dream_world"`
			OfficialArtwork struct {
				FrontDefault *string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

// GetPokemon fetches the record with the given id.
func (c *Client) GetPokemon(ctx context.Context, id int) (*entities.Pokemon, error) {
	url := c.baseURL + "/" + strconv.Itoa(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch pokemon %d: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("pokemon %d: %w", id, ErrPokemonNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("pokemon %d: %w: %d %s", id, ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("pokemon %d: %w: %v", id, ErrMalformedResponse, err)
	}

	if strings.TrimSpace(data.Name) == "" {
		return nil, fmt.Errorf("pokemon %d: %w: missing name", id, ErrMalformedResponse)
	}

	p := &entities.Pokemon{
		ID:   id,
		Name: data.Name,
	}
	if img := data.Sprites.Other.DreamWorld.FrontDefault; img != nil {
		p.ImageURL = *img
	}
	if art := data.Sprites.Other.OfficialArtwork.FrontDefault; art != nil {
		p.ArtworkURL = *art
	}

	return p, nil
}
