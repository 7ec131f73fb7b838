package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/storage"
)

func TestJanitorSweep(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	st := storage.NewSessionStorage()
	_ = st.Create(entities.NewSession("stale", now.Add(-25*time.Hour)))
	_ = st.Create(entities.NewSession("live", now.Add(-time.Hour)))

	j := NewSessionJanitor(st, 24*time.Hour, time.Minute, zap.NewNop())
	if n := j.Sweep(now); n != 1 {
		t.Fatalf("Sweep removed %d, want 1", n)
	}
	if _, err := st.Get("live"); err != nil {
		t.Fatalf("live session evicted: %v", err)
	}
}

func TestJanitorStartStops(t *testing.T) {
	j := NewSessionJanitor(storage.NewSessionStorage(), time.Hour, time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("janitor did not stop")
	}
}
