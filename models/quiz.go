package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// ValidDifficulty reports whether s is one of the four difficulty levels.
func ValidDifficulty(s string) bool {
	switch s {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

type Quiz struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Title            string         `json:"title" gorm:"not null"`
	Slug             string         `json:"slug" gorm:"uniqueIndex;not null"`
	Description      string         `json:"description"`
	CategoryID       uint           `json:"category_id" gorm:"not null"`
	Difficulty       string         `json:"difficulty" gorm:"not null"` // easy, medium, hard, expert
	TimeLimit        *int           `json:"time_limit"`                 // minutes
	PassingScore     *int           `json:"passing_score"`              // percentage 0-100
	FeaturedImageURL string         `json:"featured_image_url"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Category  Category   `json:"category,omitempty"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	Results   []Result   `json:"results,omitempty" gorm:"foreignKey:QuizID"`
}
