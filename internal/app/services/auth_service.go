package services

import (
	"context"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/app/repositories"
	"github.com/mlreyes/panelhub/internal/pkg/apperrors"
	"github.com/mlreyes/panelhub/internal/pkg/auth"
	"github.com/mlreyes/panelhub/internal/pkg/logger"
)

// AuthService handles sign-in and account registration.
type AuthService struct {
	userRepository *repositories.UserRepository
	jwtService     *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepository *repositories.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, int, error) {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		// Same failure for unknown email and wrong password.
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", 0, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to generate token")
		return nil, "", 0, err
	}

	return user, token, expiresIn, nil
}

// Register creates a faculty submitter account. Reviewer accounts are seeded,
// not registered.
func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	exists, err := s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		FullName: fullName,
		RoleType: models.RoleFaculty,
		IsActive: true,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("email", email).Msg("User registered")
	return user, nil
}
