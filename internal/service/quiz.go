package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

// QuestionFetcher produces a fresh random question.
type QuestionFetcher interface {
	FetchRandomQuestion(ctx context.Context) (*entities.Question, error)
}

// SessionStore keeps game sessions between requests.
type SessionStore interface {
	Create(session *entities.Session) error
	Get(id string) (*entities.Session, error)
	Update(id string, fn func(*entities.Session) error) (*entities.Session, error)
	Delete(id string) error
}

// QuizService drives game sessions through their states. Network fetches
// run outside the store lock; the transition is checked again on commit so
// concurrent callers cannot apply it twice.
type QuizService struct {
	questions     QuestionFetcher
	sessions      SessionStore
	feedbackDelay time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

// QuizOption customizes a QuizService.
type QuizOption func(*QuizService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) QuizOption {
	return func(s *QuizService) { s.now = now }
}

// NewQuizService creates a new quiz service.
func NewQuizService(
	questions QuestionFetcher,
	sessions SessionStore,
	feedbackDelay time.Duration,
	logger *zap.Logger,
	opts ...QuizOption,
) *QuizService {
	s := &QuizService{
		questions:     questions,
		sessions:      sessions,
		feedbackDelay: feedbackDelay,
		now:           time.Now,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FeedbackDelay returns how long answers stay locked after a submission.
func (s *QuizService) FeedbackDelay() time.Duration {
	return s.feedbackDelay
}

// RandomQuestion returns a question that is not bound to any session.
func (s *QuizService) RandomQuestion(ctx context.Context) (*entities.Question, error) {
	return s.questions.FetchRandomQuestion(ctx)
}

// StartSession creates a session of totalQuestions and fetches its first question.
func (s *QuizService) StartSession(ctx context.Context, totalQuestions int) (*entities.Session, error) {
	if err := entities.ValidateTotalQuestions(totalQuestions); err != nil {
		return nil, err
	}

	q, err := s.questions.FetchRandomQuestion(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch first question: %w", err)
	}

	now := s.now()
	session := entities.NewSession(uuid.NewString(), now)
	if err := session.Start(totalQuestions, q, now); err != nil {
		return nil, err
	}

	if err := s.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.Int("total_questions", totalQuestions),
	)

	return session, nil
}

// RestartSession begins a new game in an idle or finished session.
func (s *QuizService) RestartSession(ctx context.Context, id string, totalQuestions int) (*entities.Session, error) {
	if err := entities.ValidateTotalQuestions(totalQuestions); err != nil {
		return nil, err
	}

	current, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := current.CanStart(); err != nil {
		return nil, err
	}

	q, err := s.questions.FetchRandomQuestion(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch first question: %w", err)
	}

	session, err := s.sessions.Update(id, func(sess *entities.Session) error {
		return sess.Start(totalQuestions, q, s.now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session restarted",
		zap.String("session_id", id),
		zap.Int("total_questions", totalQuestions),
	)

	return session, nil
}

// GetSession returns the session with the given ID.
func (s *QuizService) GetSession(_ context.Context, id string) (*entities.Session, error) {
	return s.sessions.Get(id)
}

// SubmitAnswer checks option against the current question. While feedback
// is shown the call fails with entities.ErrInputLocked and changes nothing.
func (s *QuizService) SubmitAnswer(_ context.Context, id string, option string) (*entities.AnswerResult, error) {
	var res *entities.AnswerResult

	_, err := s.sessions.Update(id, func(sess *entities.Session) error {
		var err error
		res, err = sess.Answer(option, s.feedbackDelay, s.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("answer submitted",
		zap.String("session_id", id),
		zap.Bool("correct", res.Correct),
		zap.Int("score", res.Score),
		zap.Int("question_index", res.QuestionIndex),
	)

	return res, nil
}

// Advance ends the feedback phase: it finishes the session after the last
// question or fetches the next one. On fetch failure the session keeps
// showing feedback and Advance may be retried.
func (s *QuizService) Advance(ctx context.Context, id string) (*entities.Session, error) {
	current, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if err := current.CanAdvance(s.now()); err != nil {
		return nil, err
	}

	var next *entities.Question
	if !current.IsLastQuestion() {
		next, err = s.questions.FetchRandomQuestion(ctx)
		if err != nil {
			s.logger.Error("failed to fetch next question",
				zap.String("session_id", id),
				zap.Error(err),
			)
			return nil, fmt.Errorf("fetch next question: %w", err)
		}
	}

	session, err := s.sessions.Update(id, func(sess *entities.Session) error {
		return sess.Advance(next, s.now())
	})
	if err != nil {
		return nil, err
	}

	if session.State == entities.StateFinished {
		s.logger.Info("session finished",
			zap.String("session_id", id),
			zap.Int("score", session.FinalScore.Score),
			zap.Int("total_questions", session.FinalScore.TotalQuestions),
		)
	}

	return session, nil
}

// EndSession discards the session.
func (s *QuizService) EndSession(_ context.Context, id string) error {
	if err := s.sessions.Delete(id); err != nil {
		return err
	}
	s.logger.Info("session ended", zap.String("session_id", id))
	return nil
}
