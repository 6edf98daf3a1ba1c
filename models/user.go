package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	Username     string         `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"not null;default:'user'"` // user, admin, moderator
	TotalScore   int            `json:"total_score" gorm:"not null;default:0"`
	QuizzesTaken int            `json:"quizzes_taken" gorm:"not null;default:0"`
	AvatarURL    string         `json:"avatar_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Results      []Result      `json:"results,omitempty" gorm:"foreignKey:UserID"`
	Achievements []Achievement `json:"achievements,omitempty" gorm:"many2many:user_achievements"`
}
