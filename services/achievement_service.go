package services

import (
	"errors"
	"fmt"
	"time"

	"tastebud/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AchievementService records and lists achievement grants. Unlock criteria
// are evaluated by an external trigger; nothing here computes them.
type AchievementService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewAchievementService(db *gorm.DB, log *logrus.Logger) *AchievementService {
	return &AchievementService{db: db, log: log}
}

type CreateAchievementRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	Icon           string `json:"icon"`
	Criteria       string `json:"criteria"`
	PointsRequired *int   `json:"points_required"`
	BadgeImageURL  string `json:"badge_image_url"`
}

type GrantAchievementRequest struct {
	AchievementID uint `json:"achievement_id" binding:"required"`
}

func (s *AchievementService) ListAchievements() ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := s.db.Order("name").Find(&achievements).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return achievements, nil
}

func (s *AchievementService) CreateAchievement(req *CreateAchievementRequest) (*models.Achievement, error) {
	achievement := models.Achievement{
		Name:           req.Name,
		Description:    req.Description,
		Icon:           req.Icon,
		Criteria:       req.Criteria,
		PointsRequired: req.PointsRequired,
		BadgeImageURL:  req.BadgeImageURL,
	}
	if err := s.db.Create(&achievement).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &achievement, nil
}

// ListUserAchievements returns a user's earned achievements, newest first.
func (s *AchievementService) ListUserAchievements(userID uint) ([]models.UserAchievement, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	var earned []models.UserAchievement
	err := s.db.Where("user_id = ?", userID).
		Preload("Achievement").
		Order("earned_at DESC").
		Find(&earned).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return earned, nil
}

// GrantAchievement records that a user earned an achievement.
func (s *AchievementService) GrantAchievement(userID uint, req *GrantAchievementRequest) (*models.UserAchievement, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	var achievement models.Achievement
	if err := s.db.First(&achievement, req.AchievementID).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	var existing models.UserAchievement
	err := s.db.Where("user_id = ? AND achievement_id = ?", userID, req.AchievementID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: achievement already earned", ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapStoreErr(err)
	}

	grant := models.UserAchievement{
		UserID:        userID,
		AchievementID: req.AchievementID,
		EarnedAt:      time.Now().UTC(),
	}
	if err := s.db.Create(&grant).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	grant.Achievement = achievement

	s.log.WithFields(logrus.Fields{
		"user_id":     userID,
		"achievement": achievement.Name,
	}).Info("achievement granted")
	return &grant, nil
}
