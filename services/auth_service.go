package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/michael123610/codesnippet-hub/config"
	"github.com/michael123610/codesnippet-hub/models"
	"github.com/michael123610/codesnippet-hub/repositories"
)

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(id uint) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmailOrUsername(req.Email, req.Username)
	if err != nil {
		log.WithError(err).Error("failed to check existing user")
		return nil, models.ErrorInternalServer{Message: "failed to register"}
	}
	if exists {
		return nil, models.ErrorConflict{Message: "username or email already taken"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("failed to hash password")
		return nil, models.ErrorInternalServer{Message: "failed to register"}
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		log.WithError(err).Error("failed to create user")
		return nil, models.ErrorInternalServer{Message: "failed to register"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		log.WithError(err).Error("failed to sign token")
		return nil, models.ErrorInternalServer{Message: "failed to register"}
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "invalid email or password"}
		}
		log.WithError(err).Error("failed to load user")
		return nil, models.ErrorInternalServer{Message: "failed to login"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "invalid email or password"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		log.WithError(err).Error("failed to sign token")
		return nil, models.ErrorInternalServer{Message: "failed to login"}
	}

	return &models.AuthResponse{Token: token, User: *user}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		log.WithError(err).Error("failed to load user")
		return nil, models.ErrorInternalServer{Message: "failed to load user"}
	}
	return user, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}
