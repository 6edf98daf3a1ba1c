package services

import (
	"errors"
	"fmt"
	"time"

	"tastebud/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	tokenTTL  time.Duration
	log       *logrus.Logger
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenDays int, log *logrus.Logger) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  time.Duration(tokenDays) * 24 * time.Hour,
		log:       log,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new user with the default role. A taken email or
// username rejects the registration without creating a row or issuing a
// token.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	var existing models.User
	err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: user with this email or username already exists", ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wrapStoreErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, wrapStoreErr(err)
	}

	token, err := GenerateToken(s.jwtSecret, user.ID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return &AuthResponse{Token: token, User: &user}, nil
}

// Login authenticates by email or username.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user models.User
	err := s.db.Where("email = ? OR username = ?", req.EmailOrUsername, req.EmailOrUsername).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid email/username or password", ErrUnauthorized)
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid email/username or password", ErrUnauthorized)
	}

	token, err := GenerateToken(s.jwtSecret, user.ID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// Refresh re-issues a token for a still-valid one, picking up the user's
// current role.
func (s *AuthService) Refresh(tokenString string) (*AuthResponse, error) {
	claims, err := ParseToken(s.jwtSecret, tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return nil, wrapStoreErr(err)
	}

	token, err := GenerateToken(s.jwtSecret, user.ID, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// GetProfile returns the user with earned achievements preloaded.
func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Achievements").First(&user, userID).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &user, nil
}
