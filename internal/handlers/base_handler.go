package handlers

import (
	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
)

type BaseHandler struct{}

func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// BindJSON привязывает тело запроса с проверкой binding-тегов
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.Warn("failed to bind request body", "path", c.Request.URL.Path, "error", err)
		appErrors.HandleError(c, appErrors.ValidationError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.Warn("failed to bind query params", "path", c.Request.URL.Path, "error", err)
		appErrors.HandleError(c, appErrors.ValidationError("Invalid query parameters: "+err.Error()))
		return false
	}
	return true
}

// HandleServiceError транслирует ошибку сервиса в HTTP-ответ
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if appErrors.As(err, &appErr) {
		logger.Warn("service error", "error", appErr.Message, "path", c.Request.URL.Path)
	} else {
		logger.Error("internal server error", "error", err, "path", c.Request.URL.Path)
	}
	appErrors.HandleServiceError(c, err)
}

// GetAndAuthorizeUserID достает идентификатор аутентифицированного
// пользователя, выставленный middleware.Auth
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		logger.Warn("unauthorized access: userID not in context", "path", c.Request.URL.Path, "ip", c.ClientIP())
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

func (h *BaseHandler) CurrentRole(c *gin.Context) models.UserRole {
	if role, ok := c.Get(middleware.ContextRole); ok {
		if r, ok := role.(models.UserRole); ok {
			return r
		}
	}
	return ""
}

// CurrentToken возвращает jti и exp текущего токена для операций отзыва
func (h *BaseHandler) CurrentToken(c *gin.Context) (jti string, exp int64) {
	jti = c.GetString(middleware.ContextJTI)
	exp = c.GetInt64(middleware.ContextTokenExp)
	return jti, exp
}
