package telegram

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/storage"
)

func TestCallbackRoundTrip(t *testing.T) {
	const sessionID = "6f1d2c3b-9a8e-4f70-b1c2-d3e4f5a6b7c8"

	data := buildAnswerCallback(sessionID, 12, 3)
	tag, q, o, ok := parseAnswerCallback(decodeCallback(data))
	if !ok || tag != gameTag(sessionID) || q != 12 || o != 3 {
		t.Fatalf("parse(%q) = %q, %d, %d, %v", data, tag, q, o, ok)
	}
	if tag == gameTag("0b7e4a55-1c2d-4e3f-8a9b-0c1d2e3f4a5b") {
		t.Fatal("different games share a tag")
	}

	for _, bad := range []string{"answer", "answer:1:2", "answer::1:2", "answer:g:x:1", "answer:g:1:-1", "quiz:start:5"} {
		if _, _, _, ok := parseAnswerCallback(decodeCallback(bad)); ok {
			t.Errorf("parse(%q) accepted", bad)
		}
	}

	// Telegram limits callback data to 64 bytes.
	if data := buildAnswerCallback(sessionID, entities.MaxTotalQuestions, 9); len(data) > 64 {
		t.Errorf("callback data too long: %q", data)
	}
}

func TestDecodeCallbackWithoutParams(t *testing.T) {
	cd := decodeCallback(actionNext)
	if cd.Action != actionNext || len(cd.Params) != 0 || cd.Raw != actionNext {
		t.Fatalf("decode(%q) = %+v", actionNext, cd)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"pikachu": "Pikachu",
		"mr-mime": "Mr Mime",
		"nidoran": "Nidoran",
	}
	for in, want := range tests {
		if got := displayName(in); got != want {
			t.Errorf("displayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayNameConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				if got := displayName("mr-mime"); got != "Mr Mime" {
					t.Errorf("displayName = %q", got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestBuildProgressBar(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{0, 10, "[░░░░░]"},
		{5, 10, "[██░░░]"},
		{10, 10, "[█████]"},
		{12, 10, "[█████]"},
		{1, 0, "[░░░░░]"},
	}
	for _, tt := range tests {
		if got := buildProgressBar(tt.current, tt.total, 5); got != tt.want {
			t.Errorf("buildProgressBar(%d, %d) = %q, want %q", tt.current, tt.total, got, tt.want)
		}
	}
}

func TestFormatQuizResultEscapesMarkdown(t *testing.T) {
	text := formatQuizResult(&entities.Summary{Score: 9, TotalQuestions: 10})
	if !strings.Contains(text, "Pokémon master\\!") {
		t.Fatalf("text = %q", text)
	}
	if !strings.Contains(text, "*9 out of 10*") {
		t.Fatalf("score not bold: %q", text)
	}
}

func TestAnsweredKeyboardMarksOptions(t *testing.T) {
	q := &entities.Question{CorrectAnswer: "pikachu", Options: []string{"mew", "pikachu", "onix", "eevee"}}
	kb := buildAnsweredKeyboard("s1", q, 0, &entities.AnswerResult{Selected: "onix", CorrectAnswer: "pikachu"})

	want := []string{"Mew", "✅ Pikachu", "❌ Onix", "Eevee"}
	for i, row := range kb.InlineKeyboard {
		if row[0].Text != want[i] {
			t.Errorf("row %d = %q, want %q", i, row[0].Text, want[i])
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("wrap: %w", entities.ErrInvalidTotalQuestions), msgInvalidQuestions},
		{storage.ErrSessionNotFound, msgStartFirst},
		{entities.ErrInputLocked, msgInputLocked},
		{entities.ErrInvalidTransition, msgQuestionOver},
		{errors.New("boom"), msgInternalError},
	}
	for _, tt := range tests {
		if got := userMessage(tt.err); got != tt.want {
			t.Errorf("userMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
