package models

import (
	"time"
)

type Result struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	QuizID         uint      `json:"quiz_id" gorm:"not null;index"`
	Score          int       `json:"score" gorm:"not null"` // percentage 0-100
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	CorrectAnswers int       `json:"correct_answers" gorm:"not null"`
	TimeTaken      *int      `json:"time_taken"` // seconds
	CompletedAt    time.Time `json:"completed_at"`
	CreatedAt      time.Time `json:"created_at"`

	// Relationships
	User    User           `json:"user,omitempty"`
	Quiz    Quiz           `json:"quiz,omitempty"`
	Answers []AnswerRecord `json:"answers,omitempty" gorm:"foreignKey:ResultID"`
}

// AnswerRecord is immutable once written; rows are only ever created
// alongside their Result.
type AnswerRecord struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	ResultID       uint `json:"result_id" gorm:"not null;index"`
	QuestionID     uint `json:"question_id" gorm:"not null"`
	SelectedOption int  `json:"selected_option" gorm:"not null"`
	IsCorrect      bool `json:"is_correct" gorm:"not null"`
	TimeSpent      *int `json:"time_spent"` // seconds
}
