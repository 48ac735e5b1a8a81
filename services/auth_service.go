package services

import (
	"context"
	"time"

	"github.com/Mathdino/cardapio-backend/models"
	"github.com/Mathdino/cardapio-backend/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService signs in store owners for the dashboard.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError)
}

type authServiceImpl struct {
	users     repository.UserRepository
	jwtSecret []byte
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, jwtSecret string, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Login verifies the owner's credentials and returns a signed token
// carrying the store claim used by the dashboard routes.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"store_id": user.StoreID.String(),
		"role":     "owner",
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to sign in"}
	}

	return &models.LoginResponse{
		Token:   token,
		StoreID: user.StoreID,
		Name:    user.Name,
	}, nil
}

// HashPassword is used by seeding and account management flows.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
