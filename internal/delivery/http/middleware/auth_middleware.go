package middleware

import (
	"strings"

	"fenix/internal/domain/entity"
	"fenix/internal/domain/rbac"
	"fenix/internal/domain/repository"
	"fenix/internal/domain/service"

	"github.com/labstack/echo/v4"

	"fenix/internal/delivery/http/response"
)

// contextKeyUser is the echo.Context key under which the authenticated user
// entity is stored.
const contextKeyUser = "currentUser"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the bearer token and loads the live user record so
// downstream guards always see the current role and status, not the ones
// frozen into the token at login.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "UNKNOWN_ACCOUNT", "Account no longer exists")
		}
		if user.Status != entity.UserStatusActive {
			return response.Unauthorized(c, "ACCOUNT_INACTIVE", "Account is not active")
		}

		c.Set(contextKeyUser, user)

		return next(c)
	}
}

// RequireStaff allows only admin and super_admin accounts through.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !rbac.CanManageUsers(CurrentUser(c)) {
			return response.Forbidden(c, "STAFF_ONLY", "Permission denied")
		}

		return next(c)
	}
}

// RequireSuperAdmin allows only super_admin accounts through.
func (m *AuthMiddleware) RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !rbac.IsSuperAdmin(CurrentUser(c)) {
			return response.Forbidden(c, "SUPER_ADMIN_ONLY", "Permission denied")
		}

		return next(c)
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil.
func CurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(contextKeyUser).(*entity.User); ok {
		return user
	}

	return nil
}
