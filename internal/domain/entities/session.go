package entities

import (
	"errors"
	"fmt"
	"time"
)

// MaxTotalQuestions is the upper bound for the number of questions in one session.
const MaxTotalQuestions = 150

var (
	ErrNotStarted            = errors.New("game has not been started")
	ErrInputLocked           = errors.New("input is locked while feedback is shown")
	ErrFeedbackPending       = errors.New("feedback delay has not elapsed")
	ErrInvalidTransition     = errors.New("operation not allowed in current session state")
	ErrInvalidOption         = errors.New("option is not offered by the current question")
	ErrInvalidTotalQuestions = fmt.Errorf("number of questions must be from 1 to %d", MaxTotalQuestions)
)

// SessionState is the phase a game session is in.
//
//	Idle ──start──▶ AwaitingAnswer ──answer──▶ ShowingFeedback
//	                      ▲                         │
//	                      └──────── advance ────────┤
//	                                                ▼
//	Finished ◀──────────── advance (last question) ─┘
//	Finished ──start──▶ AwaitingAnswer
type SessionState int

const (
	StateIdle SessionState = iota
	StateAwaitingAnswer
	StateShowingFeedback
	StateFinished
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateShowingFeedback:
		return "showing_feedback"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name produced by MarshalText.
func (s *SessionState) UnmarshalText(text []byte) error {
	for _, st := range []SessionState{StateIdle, StateAwaitingAnswer, StateShowingFeedback, StateFinished} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// Summary is the outcome of a finished session.
type Summary struct {
	Score          int `json:"score"`
	TotalQuestions int `json:"totalQuestions"`
}

// AnswerResult describes the feedback for one submitted answer.
type AnswerResult struct {
	Selected      string `json:"selected"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
	Score         int    `json:"score"`         // score after this answer
	QuestionIndex int    `json:"questionIndex"` // index of the answered question
	LastQuestion  bool   `json:"lastQuestion"`  // the session finishes on the next advance
}

// Session is the state of one player's game. Counters start at
// QuestionIndex = -1 and Score = 0 and return there when the game ends.
type Session struct {
	ID             string
	State          SessionState
	QuestionIndex  int // 0-based index of the current question, -1 before the first one
	Score          int
	TotalQuestions int
	Question       *Question
	LastAnswer     *AnswerResult
	FeedbackUntil  time.Time // answers are locked until this moment
	FinalScore     *Summary  // set when the session finishes
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewSession creates an idle session.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:            id,
		State:         StateIdle,
		QuestionIndex: -1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ValidateTotalQuestions checks the requested session length.
func ValidateTotalQuestions(total int) error {
	if total < 1 || total > MaxTotalQuestions {
		return ErrInvalidTotalQuestions
	}
	return nil
}

// CanStart reports whether a new game may begin in this session.
func (s *Session) CanStart() error {
	if s.State != StateIdle && s.State != StateFinished {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.State)
	}
	return nil
}

// Start begins a game of total questions with q as the first one.
func (s *Session) Start(total int, q *Question, now time.Time) error {
	if err := ValidateTotalQuestions(total); err != nil {
		return err
	}
	if err := s.CanStart(); err != nil {
		return err
	}

	s.TotalQuestions = total
	s.Score = 0
	s.QuestionIndex = 0
	s.Question = q
	s.LastAnswer = nil
	s.FinalScore = nil
	s.FeedbackUntil = time.Time{}
	s.State = StateAwaitingAnswer
	s.UpdatedAt = now

	return nil
}

// Answer checks option against the current question and locks input
// for delay. Score grows by one for a correct answer only.
func (s *Session) Answer(option string, delay time.Duration, now time.Time) (*AnswerResult, error) {
	switch s.State {
	case StateAwaitingAnswer:
	case StateShowingFeedback:
		return nil, ErrInputLocked
	default:
		return nil, ErrNotStarted
	}

	if !s.Question.HasOption(option) {
		return nil, ErrInvalidOption
	}

	correct := option == s.Question.CorrectAnswer
	if correct {
		s.Score++
	}

	res := &AnswerResult{
		Selected:      option,
		CorrectAnswer: s.Question.CorrectAnswer,
		Correct:       correct,
		Score:         s.Score,
		QuestionIndex: s.QuestionIndex,
		LastQuestion:  s.IsLastQuestion(),
	}

	s.LastAnswer = res
	s.FeedbackUntil = now.Add(delay)
	s.State = StateShowingFeedback
	s.UpdatedAt = now

	return res, nil
}

// IsLastQuestion reports whether the current question is the final one.
func (s *Session) IsLastQuestion() bool {
	return s.QuestionIndex+1 >= s.TotalQuestions
}

// CanAdvance reports whether the feedback phase may end at now.
func (s *Session) CanAdvance(now time.Time) error {
	if s.State != StateShowingFeedback {
		return fmt.Errorf("%w: advance from %s", ErrInvalidTransition, s.State)
	}
	if now.Before(s.FeedbackUntil) {
		return ErrFeedbackPending
	}
	return nil
}

// Advance ends the feedback phase. After the last question the session
// finishes and next is ignored; otherwise next becomes the current question.
func (s *Session) Advance(next *Question, now time.Time) error {
	if err := s.CanAdvance(now); err != nil {
		return err
	}

	if s.IsLastQuestion() {
		s.finish(now)
		return nil
	}

	if next == nil {
		return fmt.Errorf("%w: no next question", ErrInvalidTransition)
	}

	s.QuestionIndex++
	s.Question = next
	s.FeedbackUntil = time.Time{}
	s.State = StateAwaitingAnswer
	s.UpdatedAt = now

	return nil
}

func (s *Session) finish(now time.Time) {
	s.FinalScore = &Summary{Score: s.Score, TotalQuestions: s.TotalQuestions}
	s.Score = 0
	s.QuestionIndex = -1
	s.Question = nil
	s.FeedbackUntil = time.Time{}
	s.State = StateFinished
	s.UpdatedAt = now
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Question = s.Question.Clone()
	if s.LastAnswer != nil {
		a := *s.LastAnswer
		c.LastAnswer = &a
	}
	if s.FinalScore != nil {
		f := *s.FinalScore
		c.FinalScore = &f
	}
	return &c
}
