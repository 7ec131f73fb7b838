package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newStarted(t *testing.T, id string) *entities.Session {
	t.Helper()
	s := entities.NewSession(id, t0)
	q := &entities.Question{CorrectAnswer: "pikachu", Options: []string{"pikachu", "mew"}}
	if err := s.Start(5, q, t0); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestCreateGetDelete(t *testing.T) {
	st := NewSessionStorage()
	s := newStarted(t, "a")

	if err := st.Create(s); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := st.Create(s); !errors.Is(err, ErrSessionExists) {
		t.Fatalf("second Create err = %v", err)
	}

	got, err := st.Get("a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got.Question.Options[0] = "changed"
	again, _ := st.Get("a")
	if again.Question.Options[0] != "pikachu" {
		t.Fatal("Get returned shared state")
	}

	if err := st.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := st.Get("a"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get after delete err = %v", err)
	}
	if err := st.Delete("a"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Delete twice err = %v", err)
	}
}

func TestUpdateDiscardsFailedChange(t *testing.T) {
	st := NewSessionStorage()
	if err := st.Create(newStarted(t, "a")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	boom := errors.New("boom")
	_, err := st.Update("a", func(s *entities.Session) error {
		s.Score = 42
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	got, _ := st.Get("a")
	if got.Score != 0 {
		t.Fatalf("Score = %d, failed update leaked", got.Score)
	}

	if _, err := st.Update("missing", func(*entities.Session) error { return nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestConcurrentAnswersCountOnce(t *testing.T) {
	st := NewSessionStorage()
	if err := st.Create(newStarted(t, "a")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		okCnt  int
		locked int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Update("a", func(s *entities.Session) error {
				_, err := s.Answer("pikachu", time.Minute, t0)
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCnt++
			case errors.Is(err, entities.ErrInputLocked):
				locked++
			}
		}()
	}
	wg.Wait()

	if okCnt != 1 || locked != 19 {
		t.Fatalf("ok=%d locked=%d, want 1 and 19", okCnt, locked)
	}
	got, _ := st.Get("a")
	if got.Score != 1 {
		t.Fatalf("Score = %d, want 1", got.Score)
	}
}

func TestDeleteIdle(t *testing.T) {
	st := NewSessionStorage()
	old := entities.NewSession("old", t0)
	fresh := entities.NewSession("fresh", t0.Add(time.Hour))
	_ = st.Create(old)
	_ = st.Create(fresh)

	if n := st.DeleteIdle(t0.Add(30 * time.Minute)); n != 1 {
		t.Fatalf("removed %d, want 1", n)
	}
	if st.Len() != 1 {
		t.Fatalf("Len = %d, want 1", st.Len())
	}
	if _, err := st.Get("fresh"); err != nil {
		t.Fatalf("fresh session evicted: %v", err)
	}
}
