package models

import (
	"time"

	"gorm.io/gorm"
)

type Achievement struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"not null"`
	Description    string         `json:"description"`
	Icon           string         `json:"icon"`
	Criteria       string         `json:"criteria"`
	PointsRequired *int           `json:"points_required"`
	BadgeImageURL  string         `json:"badge_image_url"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// UserAchievement records that a user earned an achievement. Unlock
// criteria are evaluated elsewhere; this service only records grants.
type UserAchievement struct {
	UserID        uint      `json:"user_id" gorm:"primaryKey"`
	AchievementID uint      `json:"achievement_id" gorm:"primaryKey"`
	EarnedAt      time.Time `json:"earned_at"`

	// Relationships
	User        User        `json:"user,omitempty"`
	Achievement Achievement `json:"achievement,omitempty"`
}
