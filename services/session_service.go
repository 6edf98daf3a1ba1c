package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tastebud/models"
	"tastebud/session"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SessionService runs the quiz-taking flow: it starts attempts, applies
// answers, drives the per-attempt countdown and persists the result when an
// attempt completes or expires. Sessions themselves live in the SessionStore;
// the countdowns are in-process timers keyed by session ID.
type SessionService struct {
	db      *gorm.DB
	store   *SessionStore
	results *ResultService
	hub     *Hub
	log     *logrus.Logger

	mu         sync.Mutex
	countdowns map[string]*session.Countdown
}

func NewSessionService(db *gorm.DB, store *SessionStore, results *ResultService, hub *Hub, log *logrus.Logger) *SessionService {
	return &SessionService{
		db:         db,
		store:      store,
		results:    results,
		hub:        hub,
		log:        log,
		countdowns: make(map[string]*session.Countdown),
	}
}

type SubmitSessionAnswerRequest struct {
	SelectedOption *int `json:"selected_option" binding:"required"`
	TimeSpent      *int `json:"time_spent"`
}

type OptionView struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// QuestionView is a question as shown mid-attempt: no correct answer, no
// explanation.
type QuestionView struct {
	ID      uint         `json:"id"`
	Number  int          `json:"number"`
	Text    string       `json:"text"`
	Points  int          `json:"points"`
	Options []OptionView `json:"options"`
}

type SessionView struct {
	ID             string        `json:"id"`
	QuizID         uint          `json:"quiz_id"`
	QuizSlug       string        `json:"quiz_slug"`
	QuizTitle      string        `json:"quiz_title"`
	Current        int           `json:"current"`
	TotalQuestions int           `json:"total_questions"`
	Remaining      int           `json:"remaining"`
	StartedAt      time.Time     `json:"started_at"`
	Completed      bool          `json:"completed"`
	Question       *QuestionView `json:"question,omitempty"`
}

// CompletedResult is returned once the last answer lands or time runs out.
type CompletedResult struct {
	ResultID       uint             `json:"result_id"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
	IsPassed       bool             `json:"is_passed"`
	TimeTaken      int              `json:"time_taken"`
	Answers        []session.Answer `json:"answers"`
}

type AnswerOutcome struct {
	IsCorrect     bool             `json:"is_correct"`
	CorrectAnswer int              `json:"correct_answer"`
	Explanation   string           `json:"explanation,omitempty"`
	Completed     bool             `json:"completed"`
	Remaining     int              `json:"remaining"`
	NextQuestion  *QuestionView    `json:"next_question,omitempty"`
	Result        *CompletedResult `json:"result,omitempty"`
}

// StartSession loads the quiz and opens a new attempt for the user. A quiz
// with no questions never enters a session.
func (s *SessionService) StartSession(ctx context.Context, userID uint, slug string) (*SessionView, error) {
	var quiz models.Quiz
	err := s.db.Where("slug = ?", slug).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.index")
		}).
		First(&quiz).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	sess, err := session.Start(&quiz, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: quiz has no questions", ErrNotFound)
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	s.startCountdown(sess.ID, sess.TimeLimit)

	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"quiz_slug":  slug,
		"user_id":    userID,
		"time_limit": sess.TimeLimit,
	}).Info("quiz session started")

	return s.buildView(sess, &quiz), nil
}

// GetSession returns the current progress of an attempt.
func (s *SessionService) GetSession(ctx context.Context, userID uint, sessionID string) (*SessionView, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, fmt.Errorf("%w: session belongs to another user", ErrForbidden)
	}
	return s.buildView(sess, nil), nil
}

// SubmitAnswer applies one answer to the attempt. A submit racing the
// countdown expiry is safe: whichever side completes the session first wins
// and the loser is a no-op.
func (s *SessionService) SubmitAnswer(ctx context.Context, userID uint, sessionID string, req *SubmitSessionAnswerRequest) (*AnswerOutcome, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != userID {
		return nil, fmt.Errorf("%w: session belongs to another user", ErrForbidden)
	}

	answeredID := sess.CurrentQuestionID()
	before := len(sess.Answers)
	sess.Answer(*req.SelectedOption, req.TimeSpent)
	if len(sess.Answers) == before {
		// Stale call against an already-completed attempt.
		return &AnswerOutcome{Completed: sess.Completed}, nil
	}

	answered := sess.Answers[len(sess.Answers)-1]
	outcome := &AnswerOutcome{
		IsCorrect: answered.IsCorrect,
		Completed: sess.Completed,
		Remaining: sess.RemainingAt(time.Now()),
	}
	for _, key := range sess.Questions {
		if key.QuestionID == answeredID {
			outcome.CorrectAnswer = key.CorrectAnswer
			break
		}
	}
	var question models.Question
	if err := s.db.First(&question, answeredID).Error; err == nil {
		outcome.Explanation = question.Explanation
	}

	if sess.Completed {
		result, err := s.finalize(ctx, sess)
		if err != nil {
			return nil, err
		}
		outcome.Result = result
		return outcome, nil
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	next, err := s.questionView(sess.Questions[sess.Current].QuestionID, sess.Current+1)
	if err != nil {
		return nil, err
	}
	outcome.NextQuestion = next
	return outcome, nil
}

// finalize scores the attempt and persists the result atomically. Deleting
// the stored session is the commit point: when the countdown expiry and a
// final answer race, only the caller that actually removed the session
// writes a result, the other returns a nil result and changes nothing.
func (s *SessionService) finalize(ctx context.Context, sess *session.Session) (*CompletedResult, error) {
	deleted, err := s.store.Delete(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, nil
	}
	s.stopCountdown(sess.ID)

	score := session.Score(len(sess.Questions), sess.Answers)
	correct := session.CorrectCount(sess.Answers)
	timeTaken := int(time.Since(sess.StartedAt).Seconds())

	var passingScore *int
	var quiz models.Quiz
	if err := s.db.First(&quiz, sess.QuizID).Error; err == nil {
		passingScore = quiz.PassingScore
	}

	answers := make([]models.AnswerRecord, len(sess.Answers))
	for i, a := range sess.Answers {
		answers[i] = models.AnswerRecord{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
			TimeSpent:      a.TimeSpent,
		}
	}

	result := &models.Result{
		UserID:         sess.UserID,
		QuizID:         sess.QuizID,
		Score:          score,
		TotalQuestions: len(sess.Questions),
		CorrectAnswers: correct,
		TimeTaken:      &timeTaken,
		CompletedAt:    time.Now().UTC(),
		Answers:        answers,
	}
	if err := s.results.save(result); err != nil {
		return nil, err
	}

	completed := &CompletedResult{
		ResultID:       result.ID,
		Score:          score,
		TotalQuestions: len(sess.Questions),
		CorrectAnswers: correct,
		IsPassed:       session.IsPassed(score, passingScore),
		TimeTaken:      timeTaken,
		Answers:        sess.Answers,
	}

	s.log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"user_id":    sess.UserID,
		"score":      score,
		"answered":   len(sess.Answers),
		"total":      len(sess.Questions),
	}).Info("quiz session completed")

	s.hub.BroadcastToSession(sess.ID, "session_completed", completed)
	return completed, nil
}

func (s *SessionService) startCountdown(sessionID string, seconds int) {
	cd := session.NewCountdown(seconds, func() {
		s.timeUp(sessionID)
	})

	s.mu.Lock()
	s.countdowns[sessionID] = cd
	s.mu.Unlock()

	go s.runCountdown(sessionID, cd)
}

func (s *SessionService) stopCountdown(sessionID string) {
	s.mu.Lock()
	cd, ok := s.countdowns[sessionID]
	if ok {
		delete(s.countdowns, sessionID)
	}
	s.mu.Unlock()
	if ok {
		cd.Stop()
	}
}

// runCountdown ticks the attempt timer once per second and publishes the
// remaining time on the websocket stream. It never writes the stored
// session: the answer path owns that state, and a tick racing a submit must
// not be able to clobber it. Readers derive remaining time from StartedAt.
func (s *SessionService) runCountdown(sessionID string, cd *session.Countdown) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		cd.Tick()
		if cd.Expired() || cd.Stopped() {
			return
		}

		s.hub.BroadcastToSession(sessionID, "timer_update", map[string]interface{}{
			"remaining": cd.Remaining(),
		})
	}
}

// timeUp is the countdown expiry callback: the attempt completes with only
// the answers collected so far.
func (s *SessionService) timeUp(sessionID string) {
	ctx := context.Background()
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		// Already finalized by a last-second answer.
		return
	}

	sess.ForceComplete()

	// Only announce time_up after winning the finalize race: a last-second
	// answer that committed first means time never ran out for the user.
	result, err := s.finalize(ctx, sess)
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("failed to finalize expired session")
		return
	}
	if result != nil {
		s.hub.BroadcastToSession(sessionID, "time_up", map[string]interface{}{"remaining": 0})
	}
}

// SessionExists is used by the websocket endpoint to validate a stream
// request before upgrading.
func (s *SessionService) SessionExists(ctx context.Context, sessionID string) bool {
	_, err := s.store.Get(ctx, sessionID)
	return err == nil
}

func (s *SessionService) buildView(sess *session.Session, quiz *models.Quiz) *SessionView {
	view := &SessionView{
		ID:             sess.ID,
		QuizID:         sess.QuizID,
		QuizSlug:       sess.QuizSlug,
		Current:        sess.Current,
		TotalQuestions: len(sess.Questions),
		Remaining:      sess.RemainingAt(time.Now()),
		StartedAt:      sess.StartedAt,
		Completed:      sess.Completed,
	}

	if quiz != nil {
		view.QuizTitle = quiz.Title
	} else {
		var q models.Quiz
		if err := s.db.Select("title").First(&q, sess.QuizID).Error; err == nil {
			view.QuizTitle = q.Title
		}
	}

	if !sess.Completed && sess.Current < len(sess.Questions) {
		if qv, err := s.questionView(sess.Questions[sess.Current].QuestionID, sess.Current+1); err == nil {
			view.Question = qv
		}
	}
	return view
}

// questionView loads a question for display without revealing the correct
// option.
func (s *SessionService) questionView(questionID uint, number int) (*QuestionView, error) {
	var question models.Question
	err := s.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("options.index")
	}).First(&question, questionID).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	options := make([]OptionView, len(question.Options))
	for i, o := range question.Options {
		options[i] = OptionView{Index: o.Index, Text: o.Text}
	}
	return &QuestionView{
		ID:      question.ID,
		Number:  number,
		Text:    question.Text,
		Points:  question.Points,
		Options: options,
	}, nil
}
