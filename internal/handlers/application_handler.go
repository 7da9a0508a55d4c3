package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
	authService        services.AuthService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService, authService services.AuthService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
		authService:        authService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	employee := rg.Group("")
	employee.Use(middleware.Auth(h.authService))
	employee.Use(middleware.RequireRoles(models.UserRoleEmployee))
	{
		// Отклик в один клик и отметка "интересно"
		employee.POST("/jobs/:id/apply", h.Apply)
		employee.POST("/jobs/:id/interest", h.ExpressInterest)
		employee.GET("/employees/me/applications", h.ListMyApplications)
	}

	employer := rg.Group("")
	employer.Use(middleware.Auth(h.authService))
	employer.Use(middleware.RequireRoles(models.UserRoleEmployer))
	{
		employer.GET("/jobs/:id/applications", h.ListJobApplications)
		employer.PATCH("/applications/:id/status", h.UpdateStatus)
		employer.PATCH("/applications/:id/notes", h.UpdateNotes)
	}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	employeeID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Apply(employeeID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ExpressInterest(c *gin.Context) {
	employeeID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.ExpressInterest(employeeID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

func (h *ApplicationHandler) ListMyApplications(c *gin.Context) {
	employeeID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListEmployeeApplications(employeeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	apps, err := h.applicationService.ListJobApplications(employerID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateStatus(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

func (h *ApplicationHandler) UpdateNotes(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationNotesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateNotes(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}
