package session

import (
	"errors"
	"time"

	"tastebud/models"

	"github.com/google/uuid"
)

// ErrNoQuestions is returned when a quiz cannot be attempted because it has
// no questions.
var ErrNoQuestions = errors.New("quiz has no questions")

// DefaultTimeLimitMinutes applies when a quiz has no time limit of its own.
const DefaultTimeLimitMinutes = 10

// QuestionKey is the per-question answer key carried by a session so answers
// can be checked without reloading the quiz.
type QuestionKey struct {
	QuestionID    uint `json:"question_id"`
	CorrectAnswer int  `json:"correct_answer"`
	Points        int  `json:"points"`
}

// Answer records one answered question. Immutable once appended.
type Answer struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption int  `json:"selected_option"`
	IsCorrect      bool `json:"is_correct"`
	TimeSpent      *int `json:"time_spent,omitempty"` // seconds
}

// Session is the ephemeral state of one quiz attempt. It is a plain value
// mutated by Answer/ForceComplete and is never persisted to the database;
// the session store keeps it only for the duration of the attempt. Only the
// answer path writes a stored session after Start: the remaining time is
// derived from StartedAt and TimeLimit rather than mirrored in, so a timer
// tick can never overwrite a just-recorded answer.
type Session struct {
	ID        string        `json:"id"`
	UserID    uint          `json:"user_id"`
	QuizID    uint          `json:"quiz_id"`
	QuizSlug  string        `json:"quiz_slug"`
	Questions []QuestionKey `json:"questions"`
	Current   int           `json:"current"`
	Answers   []Answer      `json:"answers"`
	StartedAt time.Time     `json:"started_at"`
	TimeLimit int           `json:"time_limit"` // seconds allotted for the attempt
	Completed bool          `json:"completed"`
}

// Start creates a session at question 0 for a fully loaded quiz. The quiz
// must have at least one question.
func Start(quiz *models.Quiz, userID uint) (*Session, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	minutes := DefaultTimeLimitMinutes
	if quiz.TimeLimit != nil && *quiz.TimeLimit > 0 {
		minutes = *quiz.TimeLimit
	}

	keys := make([]QuestionKey, len(quiz.Questions))
	for i, q := range quiz.Questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		keys[i] = QuestionKey{
			QuestionID:    q.ID,
			CorrectAnswer: q.CorrectAnswer,
			Points:        points,
		}
	}

	return &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		QuizID:    quiz.ID,
		QuizSlug:  quiz.Slug,
		Questions: keys,
		Current:   0,
		Answers:   []Answer{},
		StartedAt: time.Now().UTC(),
		TimeLimit: minutes * 60,
		Completed: false,
	}, nil
}

// RemainingAt returns the seconds left on the attempt at the given time,
// never negative.
func (s *Session) RemainingAt(now time.Time) int {
	elapsed := int(now.Sub(s.StartedAt).Seconds())
	if elapsed >= s.TimeLimit {
		return 0
	}
	return s.TimeLimit - elapsed
}

// Answer checks the selected option against the current question, appends an
// answer record and advances the pointer. On the last question it marks the
// session completed and leaves the pointer unchanged. A call against an
// already-completed session or an out-of-range pointer is a no-op, so a
// stale submit racing the countdown expiry cannot corrupt the attempt.
func (s *Session) Answer(selectedOption int, timeSpent *int) {
	if s.Completed || s.Current < 0 || s.Current >= len(s.Questions) {
		return
	}

	key := s.Questions[s.Current]
	s.Answers = append(s.Answers, Answer{
		QuestionID:     key.QuestionID,
		SelectedOption: selectedOption,
		IsCorrect:      selectedOption == key.CorrectAnswer,
		TimeSpent:      timeSpent,
	})

	if s.Current == len(s.Questions)-1 {
		s.Completed = true
	} else {
		s.Current++
	}
}

// ForceComplete marks the session completed regardless of the pointer
// position. Unanswered questions stay absent from the answer sequence.
func (s *Session) ForceComplete() {
	s.Completed = true
}

// CurrentQuestionID returns the ID of the question the pointer is at, or 0
// when the session is completed or the pointer is out of range.
func (s *Session) CurrentQuestionID() uint {
	if s.Completed || s.Current < 0 || s.Current >= len(s.Questions) {
		return 0
	}
	return s.Questions[s.Current].QuestionID
}
