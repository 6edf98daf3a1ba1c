package services

import (
	"errors"
	"fmt"

	"tastebud/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CategoryService struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCategoryService(db *gorm.DB, log *logrus.Logger) *CategoryService {
	return &CategoryService{db: db, log: log}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	ParentID    *uint  `json:"parent_id"`
}

// ListCategories returns all categories with their parent preloaded.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Preload("Parent").Order("name").Find(&categories).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return categories, nil
}

// GetCategoryBySlug returns the category with its child categories and
// quizzes.
func (s *CategoryService) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("slug = ?", slug).
		Preload("Children").
		Preload("Quizzes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&category).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	if req.ParentID != nil {
		var parent models.Category
		if err := s.db.First(&parent, *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent category does not exist", ErrValidation)
			}
			return nil, wrapStoreErr(err)
		}
	}

	slug := GenerateSlug(req.Name)
	var existing models.Category
	if err := s.db.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: category %q already exists", ErrDuplicate, slug)
	}

	category := models.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	s.log.WithField("slug", slug).Info("category created")
	return &category, nil
}
