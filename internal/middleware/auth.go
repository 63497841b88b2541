// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"strings"

	"mahfaza/internal/repositories"
	"mahfaza/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	userRepo repositories.UserRepository
}

func NewAuthMiddleware(userRepo repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{userRepo: userRepo}
}

// Handler validates JWT tokens and adds claims to the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	_, claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return utils.Unauthorized(c, "invalid or expired token")
	}

	// Reject tokens issued before the last logout or password change.
	user, err := m.userRepo.GetByID(claims.UserID)
	if err != nil || user.TokenVersion != claims.TokenVersion {
		return utils.Unauthorized(c, "token has been revoked")
	}

	c.Locals("claims", claims)
	return c.Next()
}
