package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
)

// UserHandler - админские операции над аккаунтами плюс /users/me
type UserHandler struct {
	*BaseHandler
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.Auth(h.authService))
	{
		users.GET("/me", h.GetCurrentUser)
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(h.authService))
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/employers/pending", h.ListPendingEmployers)
		admin.POST("/employers/:id/approve", h.ApproveEmployer)
		admin.POST("/users/:id/suspend", h.SuspendUser)
		admin.POST("/users/:id/reactivate", h.ReactivateUser)
	}
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListPendingEmployers(c *gin.Context) {
	employers, err := h.userService.FindPendingEmployers()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employers": employers})
}

func (h *UserHandler) ApproveEmployer(c *gin.Context) {
	user, err := h.authService.AdminApproveEmployer(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) SuspendUser(c *gin.Context) {
	user, err := h.userService.SuspendUser(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ReactivateUser(c *gin.Context) {
	user, err := h.userService.ReactivateUser(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
