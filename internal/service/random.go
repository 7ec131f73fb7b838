package service

import (
	"math/rand/v2"
	"sync"
)

// Randomizer is the source of randomness for id draws and shuffles.
type Randomizer interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
}

// lockedRand makes a seeded generator safe for concurrent draws.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandomizer returns a PCG-backed Randomizer with a fixed seed.
func NewRandomizer(seed1, seed2 uint64) Randomizer {
	return &lockedRand{r: rand.New(rand.NewPCG(seed1, seed2))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRandomizer uses the runtime-seeded global generator.
func DefaultRandomizer() Randomizer { return globalRand{} }

// Shuffle permutes items in place with Fisher-Yates.
func Shuffle[T any](r Randomizer, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
