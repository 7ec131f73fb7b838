package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
)

func assertOptionSet(t *testing.T, options []string, correct string, want int) {
	t.Helper()

	if len(options) != want {
		t.Fatalf("len(options) = %d, want %d: %v", len(options), want, options)
	}

	seen := map[string]int{}
	for _, o := range options {
		seen[o]++
	}
	if len(seen) != want {
		t.Fatalf("options contain duplicates: %v", options)
	}
	if seen[correct] != 1 {
		t.Fatalf("correct answer %q appears %d times in %v", correct, seen[correct], options)
	}
}

func TestBuildOptionsRedrawsDuplicate(t *testing.T) {
	src := &queueSource{
		queue: []string{"bulbasaur", "charmander", "pikachu", "squirtle"},
		size:  151,
	}
	g := NewOptionGenerator(src, NewRandomizer(1, 2), 3, 0, zap.NewNop())

	options, err := g.BuildOptions(context.Background(), "pikachu", 3)
	if err != nil {
		t.Fatalf("BuildOptions: %v", err)
	}

	assertOptionSet(t, options, "pikachu", 4)

	got := slices.Clone(options)
	slices.Sort(got)
	want := []string{"bulbasaur", "charmander", "pikachu", "squirtle"}
	if !slices.Equal(got, want) {
		t.Fatalf("options = %v, want %v", got, want)
	}
	if src.draws != 4 {
		t.Fatalf("draws = %d, want 4", src.draws)
	}
	if src.poolReads != 0 {
		t.Fatalf("pool used without need: %d reads", src.poolReads)
	}
}

func TestBuildOptionsDefaultDistractorCount(t *testing.T) {
	src := &queueSource{queue: []string{"a", "b", "c", "d", "e"}, size: 151}
	g := NewOptionGenerator(src, NewRandomizer(1, 2), 4, 0, zap.NewNop())

	options, err := g.BuildOptions(context.Background(), "z", 0)
	if err != nil {
		t.Fatalf("BuildOptions: %v", err)
	}
	assertOptionSet(t, options, "z", 5)
}

func TestBuildOptionsFallsBackToPool(t *testing.T) {
	// Every random draw collides with the correct answer.
	src := &queueSource{fallback: "pikachu", size: 10}
	g := NewOptionGenerator(src, NewRandomizer(3, 4), 3, 6, zap.NewNop())

	options, err := g.BuildOptions(context.Background(), "pikachu", 3)
	if err != nil {
		t.Fatalf("BuildOptions: %v", err)
	}

	assertOptionSet(t, options, "pikachu", 4)
	if src.draws != 6 {
		t.Fatalf("draws = %d, want exactly the 6 allowed attempts", src.draws)
	}
	if src.poolReads < 3 {
		t.Fatalf("poolReads = %d, want at least 3", src.poolReads)
	}
}

func TestBuildOptionsTerminatesOnShrunkCatalog(t *testing.T) {
	// The provider serves only two distinct names in total.
	src := &queueSource{
		fallback:  "pikachu",
		size:      5,
		poolNames: map[int]string{1: "pikachu", 2: "mew", 3: "mew", 4: "pikachu", 5: "mew"},
	}
	g := NewOptionGenerator(src, NewRandomizer(5, 6), 3, 3, zap.NewNop())

	_, err := g.BuildOptions(context.Background(), "pikachu", 3)
	if !errors.Is(err, ErrNotEnoughDistinctNames) {
		t.Fatalf("err = %v, want ErrNotEnoughDistinctNames", err)
	}
	if src.poolReads != 5 {
		t.Fatalf("poolReads = %d, want the whole catalog once", src.poolReads)
	}
}

func TestBuildOptionsRejectsOversizedRequest(t *testing.T) {
	src := &queueSource{size: 3}
	g := NewOptionGenerator(src, NewRandomizer(1, 1), 3, 0, zap.NewNop())

	_, err := g.BuildOptions(context.Background(), "pikachu", 3)
	if !errors.Is(err, ErrNotEnoughDistinctNames) {
		t.Fatalf("err = %v, want ErrNotEnoughDistinctNames", err)
	}
	if src.draws != 0 {
		t.Fatalf("draws = %d, want none", src.draws)
	}
}

func TestBuildOptionsPropagatesFetchError(t *testing.T) {
	boom := errors.New("network down")
	src := &queueSource{size: 151, err: boom}
	g := NewOptionGenerator(src, NewRandomizer(1, 1), 3, 0, zap.NewNop())

	_, err := g.BuildOptions(context.Background(), "pikachu", 3)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestBuildOptionsInvariantAcrossSeeds(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		rng := NewRandomizer(seed, seed+1)
		qs := NewQuestionSource(newCatalog(151), 151, 3, 0, rng, zap.NewNop())

		options, err := qs.options.BuildOptions(context.Background(), "mon-7", 3)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		assertOptionSet(t, options, "mon-7", 4)
	}
}

func TestBuildOptionsCorrectPositionVaries(t *testing.T) {
	positions := map[int]bool{}
	rng := NewRandomizer(42, 43)
	qs := NewQuestionSource(newCatalog(151), 151, 3, 0, rng, zap.NewNop())

	for i := 0; i < 100; i++ {
		options, err := qs.options.BuildOptions(context.Background(), "mon-1", 3)
		if err != nil {
			t.Fatalf("BuildOptions: %v", err)
		}
		positions[slices.Index(options, "mon-1")] = true
	}
	if len(positions) != 4 {
		t.Fatalf("correct answer seen at positions %v, want all 4", positions)
	}
}
