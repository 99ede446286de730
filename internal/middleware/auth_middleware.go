package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlreyes/panelhub/internal/app/models"
	"github.com/mlreyes/panelhub/internal/app/models/dto"
	"github.com/mlreyes/panelhub/internal/app/repositories"
	"github.com/mlreyes/panelhub/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
)

// AuthMiddleware validates tokens and enforces role requirements.
type AuthMiddleware struct {
	jwtService     *auth.JWTService
	userRepository *repositories.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepository *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtService,
		userRepository: userRepository,
	}
}

// JWTAuth validates the bearer token and stores the caller's identity in the
// request context.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
			})
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			code := dto.ErrorCodeInvalidToken
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrorCodeExpiredToken
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
				Error: dto.NewErrorDetail(code, "Authentication failed"),
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRoleType, claims.RoleType)
		c.Next()
	}
}

// RoleRequired allows only callers holding one of the given account roles.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleType := models.RoleType(c.GetString(ContextRoleType))
		for _, role := range roles {
			if roleType == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		})
	}
}

// CurrentUserID returns the authenticated caller's user ID.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// CurrentUser loads the authenticated caller's full account record.
func (m *AuthMiddleware) CurrentUser(c *gin.Context) (*models.User, error) {
	return m.userRepository.GetByID(c.Request.Context(), CurrentUserID(c))
}
