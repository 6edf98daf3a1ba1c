package services

import (
	"errors"
	"fmt"
	"strings"

	"tastebud/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type QuizService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewQuizService(db *gorm.DB, log *logrus.Logger) *QuizService {
	return &QuizService{db: db, log: log}
}

type CreateQuizRequest struct {
	Title            string                  `json:"title" binding:"required"`
	Description      string                  `json:"description"`
	CategoryID       uint                    `json:"category_id" binding:"required"`
	Difficulty       string                  `json:"difficulty" binding:"required"`
	TimeLimit        *int                    `json:"time_limit"`
	PassingScore     *int                    `json:"passing_score"`
	FeaturedImageURL string                  `json:"featured_image_url"`
	Questions        []CreateQuestionRequest `json:"questions" binding:"required,min=1"`
}

type CreateQuestionRequest struct {
	Text          string                `json:"text" binding:"required"`
	CorrectAnswer *int                  `json:"correct_answer" binding:"required"`
	Explanation   string                `json:"explanation"`
	Points        int                   `json:"points"`
	Options       []CreateOptionRequest `json:"options" binding:"required,min=2,max=6"`
}

type CreateOptionRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateQuizRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"`
	TimeLimit        *int   `json:"time_limit"`
	PassingScore     *int   `json:"passing_score"`
	FeaturedImageURL string `json:"featured_image_url"`
}

func validateQuizFields(difficulty string, timeLimit, passingScore *int) error {
	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		return fmt.Errorf("%w: difficulty must be one of easy, medium, hard, expert", ErrValidation)
	}
	if timeLimit != nil && *timeLimit <= 0 {
		return fmt.Errorf("%w: time limit must be a positive number of minutes", ErrValidation)
	}
	if passingScore != nil && (*passingScore < 0 || *passingScore > 100) {
		return fmt.Errorf("%w: passing score must be between 0 and 100", ErrValidation)
	}
	return nil
}

func (s *QuizService) CreateQuiz(req *CreateQuizRequest) (*models.Quiz, error) {
	if err := validateQuizFields(req.Difficulty, req.TimeLimit, req.PassingScore); err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid category", ErrValidation)
		}
		return nil, wrapStoreErr(err)
	}

	for i, qReq := range req.Questions {
		if *qReq.CorrectAnswer < 0 || *qReq.CorrectAnswer >= len(qReq.Options) {
			return nil, fmt.Errorf("%w: question %d correct answer must index an option", ErrValidation, i+1)
		}
	}

	quiz := models.Quiz{
		Title:            req.Title,
		Slug:             GenerateSlug(req.Title),
		Description:      req.Description,
		CategoryID:       req.CategoryID,
		Difficulty:       req.Difficulty,
		TimeLimit:        req.TimeLimit,
		PassingScore:     req.PassingScore,
		FeaturedImageURL: req.FeaturedImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		for pos, qReq := range req.Questions {
			points := qReq.Points
			if points <= 0 {
				points = 1
			}
			question := models.Question{
				QuizID:        quiz.ID,
				Text:          qReq.Text,
				CorrectAnswer: *qReq.CorrectAnswer,
				Explanation:   qReq.Explanation,
				Points:        points,
				Position:      pos,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}

			for idx, optReq := range qReq.Options {
				option := models.Option{
					QuestionID: question.ID,
					Text:       optReq.Text,
					Index:      idx,
				}
				if err := tx.Create(&option).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	s.log.WithFields(logrus.Fields{"quiz_id": quiz.ID, "slug": quiz.Slug}).Info("quiz created")
	return s.GetQuizBySlug(quiz.Slug)
}

// ListQuizzes returns all quizzes, optionally filtered by category slug.
func (s *QuizService) ListQuizzes(categorySlug string) ([]models.Quiz, error) {
	query := s.db.Preload("Category").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		Order("created_at DESC")

	if categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = quizzes.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	var quizzes []models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return quizzes, nil
}

// GetFeaturedQuizzes returns the most recently created quizzes.
func (s *QuizService) GetFeaturedQuizzes(count int) ([]models.Quiz, error) {
	if count <= 0 {
		count = 3
	}
	var quizzes []models.Quiz
	err := s.db.Preload("Category").
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.position")
		}).
		Order("created_at DESC").
		Limit(count).
		Find(&quizzes).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return quizzes, nil
}

func (s *QuizService) GetQuizBySlug(slug string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("slug = ?", slug).
		Preload("Category").
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
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(slug string, req *UpdateQuizRequest) (*models.Quiz, error) {
	if err := validateQuizFields(req.Difficulty, req.TimeLimit, req.PassingScore); err != nil {
		return nil, err
	}

	var quiz models.Quiz
	if err := s.db.Where("slug = ?", slug).First(&quiz).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	if req.Title != "" {
		quiz.Title = req.Title
	}
	if req.Description != "" {
		quiz.Description = req.Description
	}
	if req.Difficulty != "" {
		quiz.Difficulty = req.Difficulty
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = req.TimeLimit
	}
	if req.PassingScore != nil {
		quiz.PassingScore = req.PassingScore
	}
	if req.FeaturedImageURL != "" {
		quiz.FeaturedImageURL = req.FeaturedImageURL
	}

	if err := s.db.Save(&quiz).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return s.GetQuizBySlug(quiz.Slug)
}

func (s *QuizService) DeleteQuiz(slug string) error {
	var quiz models.Quiz
	if err := s.db.Where("slug = ?", slug).First(&quiz).Error; err != nil {
		return wrapStoreErr(err)
	}
	if err := s.db.Delete(&quiz).Error; err != nil {
		return wrapStoreErr(err)
	}
	s.log.WithField("slug", slug).Info("quiz deleted")
	return nil
}

// GenerateSlug lowercases the title and turns runs of non-alphanumeric
// characters into single dashes.
func GenerateSlug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
