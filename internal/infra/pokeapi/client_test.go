package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const pikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "sprites": {
    "front_default": "https://img.test/front/25.png",
    "other": {
      "dream_world": {"front_default": "https://img.test/dream/25.svg"},
      "official-artwork": {"front_default": "https://img.test/art/25.png"}
    }
  }
}`

func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		switch r.URL.Path {
		case "/pokemon/25":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(pikachuJSON))
		case "/pokemon/132":
			_, _ = w.Write([]byte(`{"id":132,"name":"ditto","sprites":{"other":{"dream_world":{"front_default":null}}}}`))
		case "/pokemon/2":
			_, _ = w.Write([]byte(`{"id":2,"sprites":{}}`))
		case "/pokemon/3":
			_, _ = w.Write([]byte(`<html>not json</html>`))
		case "/pokemon/4":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetPokemon(t *testing.T) {
	srv := newServer(t, nil)
	c := NewClient(srv.URL+"/pokemon/", time.Second)

	p, err := c.GetPokemon(context.Background(), 25)
	if err != nil {
		t.Fatalf("GetPokemon: %v", err)
	}
	if p.ID != 25 || p.Name != "pikachu" {
		t.Fatalf("got %+v", p)
	}
	if p.ImageURL != "https://img.test/dream/25.svg" {
		t.Errorf("ImageURL = %q", p.ImageURL)
	}
	if p.ArtworkURL != "https://img.test/art/25.png" {
		t.Errorf("ArtworkURL = %q", p.ArtworkURL)
	}
}

func TestGetPokemonNullImage(t *testing.T) {
	srv := newServer(t, nil)
	c := NewClient(srv.URL+"/pokemon", time.Second)

	p, err := c.GetPokemon(context.Background(), 132)
	if err != nil {
		t.Fatalf("GetPokemon: %v", err)
	}
	if p.Name != "ditto" || p.ImageURL != "" || p.DisplayImage() != "" {
		t.Fatalf("got %+v", p)
	}
}

func TestGetPokemonErrors(t *testing.T) {
	srv := newServer(t, nil)
	c := NewClient(srv.URL+"/pokemon", time.Second)

	tests := []struct {
		name string
		id   int
		want error
	}{
		{"missing name", 2, ErrMalformedResponse},
		{"not json", 3, ErrMalformedResponse},
		{"server error", 4, ErrUnexpectedStatus},
		{"not found", 999, ErrPokemonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.GetPokemon(context.Background(), tt.id)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetPokemonTransportError(t *testing.T) {
	srv := newServer(t, nil)
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	if _, err := c.GetPokemon(context.Background(), 25); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestCachedClient(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, &hits)

	c, err := NewCachedClient(NewClient(srv.URL+"/pokemon", time.Second), 8)
	if err != nil {
		t.Fatalf("NewCachedClient: %v", err)
	}

	for i := 0; i < 3; i++ {
		p, err := c.GetPokemon(context.Background(), 25)
		if err != nil {
			t.Fatalf("GetPokemon: %v", err)
		}
		if p.Name != "pikachu" {
			t.Fatalf("Name = %q", p.Name)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("upstream hits = %d, want 1", got)
	}

	if _, err := c.GetPokemon(context.Background(), 4); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 1 {
		t.Fatalf("errors must not be cached, Len = %d", c.Len())
	}
}
