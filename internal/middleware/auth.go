package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
)

// Ключи контекста, которые Auth выставляет для последующих хендлеров
const (
	ContextUserID   = "userID"
	ContextEmail    = "userEmail"
	ContextRole     = "userRole"
	ContextJTI      = "tokenJTI"
	ContextTokenExp = "tokenExp"
)

// Auth извлекает Bearer-токен и пропускает его через полную проверку:
// подпись, deny-list, статус аккаунта, passwordChangedAt
func Auth(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := authService.ValidateToken(parts[1])
		if err != nil {
			appErrors.HandleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.UserID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextRole, user.Role)
		c.Set(ContextJTI, user.JTI)
		c.Set(ContextTokenExp, user.ExpiresAt)

		c.Next()
	}
}

// RequireRoles ограничивает группу маршрутов перечисленными ролями.
// Ставится после Auth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextRole)
		if !exists {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		logger.Warn("access denied by role", "role", role, "path", c.Request.URL.Path)
		appErrors.HandleError(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
