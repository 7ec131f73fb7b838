package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/pokemon-quiz-bot/internal/storage"
)

type startRequest struct {
	TotalQuestions *int `json:"totalQuestions"`
}

type answerRequest struct {
	Option string `json:"option"`
}

// questionView hides the correct answer from the client.
type questionView struct {
	Image   string   `json:"image"`
	Artwork string   `json:"artwork,omitempty"`
	Options []string `json:"options"`
}

type sessionView struct {
	ID             string                 `json:"id"`
	State          entities.SessionState  `json:"state"`
	QuestionIndex  int                    `json:"questionIndex"`
	Score          int                    `json:"score"`
	TotalQuestions int                    `json:"totalQuestions"`
	Question       *questionView          `json:"question,omitempty"`
	LastAnswer     *entities.AnswerResult `json:"lastAnswer,omitempty"`
	FeedbackUntil  *time.Time             `json:"feedbackUntil,omitempty"`
	Summary        *entities.Summary      `json:"summary,omitempty"`
}

func newSessionView(s *entities.Session) sessionView {
	v := sessionView{
		ID:             s.ID,
		State:          s.State,
		QuestionIndex:  s.QuestionIndex,
		Score:          s.Score,
		TotalQuestions: s.TotalQuestions,
		Summary:        s.FinalScore,
	}
	if s.Question != nil {
		v.Question = &questionView{
			Image:   s.Question.Image,
			Artwork: s.Question.Artwork,
			Options: s.Question.Options,
		}
	}
	if s.State == entities.StateShowingFeedback {
		v.LastAnswer = s.LastAnswer
		until := s.FeedbackUntil
		v.FeedbackUntil = &until
	}
	return v
}

func (h *Handler) handleRandomQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.quizService.RandomQuestion(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) handleStartSession(w http.ResponseWriter, r *http.Request) {
	total, ok := h.decodeTotal(w, r)
	if !ok {
		return
	}

	sess, err := h.quizService.StartSession(r.Context(), total)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	total, ok := h.decodeTotal(w, r)
	if !ok {
		return
	}

	sess, err := h.quizService.RestartSession(r.Context(), chi.URLParam(r, "id"), total)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.quizService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Option == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return
	}

	res, err := h.quizService.SubmitAnswer(r.Context(), chi.URLParam(r, "id"), req.Option)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	sess, err := h.quizService.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

func (h *Handler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.quizService.EndSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeTotal reads the optional totalQuestions field; an empty body selects the default.
func (h *Handler) decodeTotal(w http.ResponseWriter, r *http.Request) (int, bool) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad request"})
		return 0, false
	}
	if req.TotalQuestions == nil {
		return h.defaultQuestions, true
	}
	return *req.TotalQuestions, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidTotalQuestions),
		errors.Is(err, entities.ErrInvalidOption):
		status = http.StatusBadRequest
	case errors.Is(err, entities.ErrInputLocked),
		errors.Is(err, entities.ErrFeedbackPending),
		errors.Is(err, entities.ErrNotStarted),
		errors.Is(err, entities.ErrInvalidTransition):
		status = http.StatusConflict
	}

	if status == http.StatusBadGateway {
		h.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, status, map[string]string{"error": "failed to load pokemon data"})
		return
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
