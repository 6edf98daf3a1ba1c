package session

import (
	"testing"
	"time"

	"tastebud/models"
)

func testQuiz(numQuestions int) *models.Quiz {
	quiz := &models.Quiz{
		ID:   7,
		Slug: "knife-skills-basics",
	}
	for i := 0; i < numQuestions; i++ {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:            uint(100 + i),
			QuizID:        quiz.ID,
			Text:          "question",
			CorrectAnswer: i % 4,
			Points:        1,
			Position:      i,
		})
	}
	return quiz
}

func TestStartInitializesSession(t *testing.T) {
	quiz := testQuiz(3)
	timeLimit := 5
	quiz.TimeLimit = &timeLimit

	s, err := Start(quiz, 42)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if s.ID == "" {
		t.Error("expected a generated session ID")
	}
	if s.UserID != 42 || s.QuizID != 7 || s.QuizSlug != "knife-skills-basics" {
		t.Errorf("unexpected identity fields: %+v", s)
	}
	if s.Current != 0 || s.Completed {
		t.Errorf("expected fresh session at question 0, got current=%d completed=%v", s.Current, s.Completed)
	}
	if len(s.Questions) != 3 {
		t.Fatalf("expected 3 question keys, got %d", len(s.Questions))
	}
	if s.TimeLimit != 5*60 {
		t.Errorf("expected 300 second allotment, got %d", s.TimeLimit)
	}
}

func TestStartDefaultsTimeLimit(t *testing.T) {
	s, err := Start(testQuiz(1), 1)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if s.TimeLimit != DefaultTimeLimitMinutes*60 {
		t.Errorf("expected default of %d seconds, got %d", DefaultTimeLimitMinutes*60, s.TimeLimit)
	}
}

func TestRemainingAt(t *testing.T) {
	s, _ := Start(testQuiz(1), 1)

	if got := s.RemainingAt(s.StartedAt); got != s.TimeLimit {
		t.Errorf("expected full allotment at start, got %d", got)
	}
	if got := s.RemainingAt(s.StartedAt.Add(90 * time.Second)); got != s.TimeLimit-90 {
		t.Errorf("expected %d after 90s, got %d", s.TimeLimit-90, got)
	}
	if got := s.RemainingAt(s.StartedAt.Add(24 * time.Hour)); got != 0 {
		t.Errorf("expected 0 long after the limit, got %d", got)
	}
}

func TestStartRejectsEmptyQuiz(t *testing.T) {
	if _, err := Start(testQuiz(0), 1); err != ErrNoQuestions {
		t.Errorf("expected ErrNoQuestions, got %v", err)
	}
	if _, err := Start(nil, 1); err != ErrNoQuestions {
		t.Errorf("expected ErrNoQuestions for nil quiz, got %v", err)
	}
}

func TestAnswerAdvancesAndChecks(t *testing.T) {
	s, _ := Start(testQuiz(3), 1)

	s.Answer(0, nil) // question 0: correct answer is 0
	if len(s.Answers) != 1 || !s.Answers[0].IsCorrect {
		t.Fatalf("expected one correct answer, got %+v", s.Answers)
	}
	if s.Current != 1 {
		t.Errorf("expected pointer at 1, got %d", s.Current)
	}

	s.Answer(3, nil) // question 1: correct answer is 1
	if s.Answers[1].IsCorrect {
		t.Error("expected second answer to be wrong")
	}
	if s.Current != 2 || s.Completed {
		t.Errorf("expected pointer at 2 and not completed, got current=%d completed=%v", s.Current, s.Completed)
	}
}

func TestAnswerLastQuestionCompletes(t *testing.T) {
	s, _ := Start(testQuiz(2), 1)

	s.Answer(0, nil)
	s.Answer(1, nil)

	if !s.Completed {
		t.Fatal("expected session completed after last answer")
	}
	if s.Current != 1 {
		t.Errorf("pointer should stay on the last question, got %d", s.Current)
	}
	if len(s.Answers) != 2 {
		t.Errorf("expected 2 answers, got %d", len(s.Answers))
	}
}

func TestAnswerAfterCompletionIsNoOp(t *testing.T) {
	s, _ := Start(testQuiz(1), 1)
	s.Answer(0, nil)

	s.Answer(0, nil)
	if len(s.Answers) != 1 {
		t.Errorf("stale answer must not append, got %d answers", len(s.Answers))
	}
}

func TestForceComplete(t *testing.T) {
	s, _ := Start(testQuiz(3), 1)
	s.Answer(0, nil)

	s.ForceComplete()
	if !s.Completed {
		t.Fatal("expected completed after ForceComplete")
	}
	if len(s.Answers) != 1 {
		t.Errorf("unanswered questions must stay absent, got %d answers", len(s.Answers))
	}

	s.Answer(1, nil)
	if len(s.Answers) != 1 {
		t.Error("answer after ForceComplete must be a no-op")
	}
}

func TestCurrentQuestionID(t *testing.T) {
	s, _ := Start(testQuiz(2), 1)
	if got := s.CurrentQuestionID(); got != 100 {
		t.Errorf("expected question 100, got %d", got)
	}

	s.Answer(0, nil)
	if got := s.CurrentQuestionID(); got != 101 {
		t.Errorf("expected question 101, got %d", got)
	}

	s.ForceComplete()
	if got := s.CurrentQuestionID(); got != 0 {
		t.Errorf("expected 0 after completion, got %d", got)
	}
}

func TestAnswerRecordsTimeSpent(t *testing.T) {
	s, _ := Start(testQuiz(1), 1)
	spent := 12
	s.Answer(0, &spent)

	if s.Answers[0].TimeSpent == nil || *s.Answers[0].TimeSpent != 12 {
		t.Errorf("expected time spent 12, got %v", s.Answers[0].TimeSpent)
	}
}
