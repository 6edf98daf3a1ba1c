package services

import (
	"fmt"
	"time"

	"tastebud/leaderboard"
	"tastebud/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ResultService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewResultService(db *gorm.DB, log *logrus.Logger) *ResultService {
	return &ResultService{db: db, log: log}
}

type SubmitResultRequest struct {
	QuizID         uint                 `json:"quiz_id" binding:"required"`
	Score          int                  `json:"score" binding:"min=0,max=100"`
	TotalQuestions int                  `json:"total_questions" binding:"required"`
	CorrectAnswers int                  `json:"correct_answers"`
	TimeTaken      *int                 `json:"time_taken"`
	Answers        []SubmitAnswerRecord `json:"answers"`
}

type SubmitAnswerRecord struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption int  `json:"selected_option"`
	IsCorrect      bool `json:"is_correct"`
	TimeSpent      *int `json:"time_spent"`
}

type UserStatistics struct {
	TotalQuizzesTaken  int            `json:"total_quizzes_taken"`
	TotalScore         int            `json:"total_score"`
	AverageScore       float64        `json:"average_score"`
	BestScore          int            `json:"best_score"`
	BestQuiz           string         `json:"best_quiz,omitempty"`
	TotalTimePlayed    int            `json:"total_time_played"`
	QuizzesByCategory  map[string]int `json:"quizzes_by_category"`
	RecentAchievements []string       `json:"recent_achievements"`
}

// SubmitResult records a directly submitted result (the client-scored path).
func (s *ResultService) SubmitResult(userID uint, req *SubmitResultRequest) (*models.Result, error) {
	if req.CorrectAnswers > req.TotalQuestions {
		return nil, fmt.Errorf("%w: correct answers cannot exceed total questions", ErrValidation)
	}

	var quiz models.Quiz
	if err := s.db.First(&quiz, req.QuizID).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	answers := make([]models.AnswerRecord, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = models.AnswerRecord{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
			TimeSpent:      a.TimeSpent,
		}
	}

	result := &models.Result{
		UserID:         userID,
		QuizID:         req.QuizID,
		Score:          req.Score,
		TotalQuestions: req.TotalQuestions,
		CorrectAnswers: req.CorrectAnswers,
		TimeTaken:      req.TimeTaken,
		CompletedAt:    time.Now().UTC(),
		Answers:        answers,
	}
	if err := s.save(result); err != nil {
		return nil, err
	}
	return result, nil
}

// save writes the result, its answer records and the user's running totals
// in one transaction, so a partially applied submission is never observable.
// Totals move exactly once per result.
func (s *ResultService) save(result *models.Result) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", result.UserID).
			Updates(map[string]interface{}{
				"total_score":   gorm.Expr("total_score + ?", result.Score),
				"quizzes_taken": gorm.Expr("quizzes_taken + 1"),
				"updated_at":    time.Now(),
			}).Error
	})
	if err != nil {
		return wrapStoreErr(err)
	}

	s.log.WithFields(logrus.Fields{
		"result_id": result.ID,
		"user_id":   result.UserID,
		"quiz_id":   result.QuizID,
		"score":     result.Score,
	}).Info("result recorded")
	return nil
}

// GetUserResults lists a user's results, newest first.
func (s *ResultService) GetUserResults(userID uint) ([]models.Result, error) {
	var results []models.Result
	err := s.db.Where("user_id = ?", userID).
		Preload("Quiz").
		Preload("User").
		Order("completed_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return results, nil
}

// GetLeaderboard ranks users by running total score.
func (s *ResultService) GetLeaderboard(limit int) ([]leaderboard.UserEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []models.User
	err := s.db.Preload("Achievements").
		Order("total_score DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return leaderboard.RankUsers(users, limit), nil
}

// GetQuizLeaderboard ranks the results recorded for one quiz. Results are
// fetched in completion order so tied scores rank by who got there first.
func (s *ResultService) GetQuizLeaderboard(slug string, limit int) ([]leaderboard.ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var quiz models.Quiz
	if err := s.db.Where("slug = ?", slug).First(&quiz).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	var results []models.Result
	err := s.db.Where("quiz_id = ?", quiz.ID).
		Preload("User").
		Order("completed_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return leaderboard.Rank(results, limit), nil
}

// GetUserStatistics aggregates a user's play history.
func (s *ResultService) GetUserStatistics(userID uint) (*UserStatistics, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	var results []models.Result
	err := s.db.Where("user_id = ?", userID).
		Preload("Quiz").
		Preload("Quiz.Category").
		Find(&results).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	stats := &UserStatistics{
		TotalQuizzesTaken: user.QuizzesTaken,
		TotalScore:        user.TotalScore,
		QuizzesByCategory: make(map[string]int),
	}

	scoreSum := 0
	for i, r := range results {
		scoreSum += r.Score
		if r.TimeTaken != nil {
			stats.TotalTimePlayed += *r.TimeTaken
		}
		if i == 0 || r.Score > stats.BestScore {
			stats.BestScore = r.Score
			stats.BestQuiz = r.Quiz.Title
		}
		if r.Quiz.Category.Name != "" {
			stats.QuizzesByCategory[r.Quiz.Category.Name]++
		}
	}
	if len(results) > 0 {
		stats.AverageScore = float64(scoreSum) / float64(len(results))
		stats.AverageScore = float64(int(stats.AverageScore*100+0.5)) / 100
	}

	var earned []models.UserAchievement
	err = s.db.Where("user_id = ?", userID).
		Preload("Achievement").
		Order("earned_at DESC").
		Limit(5).
		Find(&earned).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	for _, ua := range earned {
		if ua.Achievement.Name != "" {
			stats.RecentAchievements = append(stats.RecentAchievements, ua.Achievement.Name)
		}
	}

	return stats, nil
}
