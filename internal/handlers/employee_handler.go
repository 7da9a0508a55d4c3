package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/appErrors"
	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
)

// Максимальный размер загружаемого резюме, байт
const maxResumeUploadSize = 1 << 20

type EmployeeHandler struct {
	*BaseHandler
	employeeService services.EmployeeService
	authService     services.AuthService
}

func NewEmployeeHandler(base *BaseHandler, employeeService services.EmployeeService, authService services.AuthService) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler:     base,
		employeeService: employeeService,
		authService:     authService,
	}
}

func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/employees/me")
	profile.Use(middleware.Auth(h.authService))
	profile.Use(middleware.RequireRoles(models.UserRoleEmployee))
	{
		profile.GET("/profile", h.GetProfile)
		profile.PATCH("/profile", h.UpdateProfile)
		profile.POST("/resume", h.UploadResume)
		profile.POST("/resume/feedback", h.RequestResumeFeedback)

		profile.GET("/education", h.ListEducation)
		profile.POST("/education", h.AddEducation)
		profile.PATCH("/education/:id", h.UpdateEducation)
		profile.DELETE("/education/:id", h.DeleteEducation)

		profile.GET("/projects", h.ListProjects)
		profile.POST("/projects", h.AddProject)
		profile.PATCH("/projects/:id", h.UpdateProject)
		profile.DELETE("/projects/:id", h.DeleteProject)
	}
}

func (h *EmployeeHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.employeeService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *EmployeeHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEmployeeProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.employeeService.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadResume принимает текстовое резюме как multipart-файл
func (h *EmployeeHandler) UploadResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		appErrors.HandleError(c, appErrors.BadRequest("A 'resume' file is required."))
		return
	}
	if fileHeader.Size > maxResumeUploadSize {
		appErrors.HandleError(c, appErrors.BadRequest("Resume file is too large (1 MB max)."))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, appErrors.InternalError(err))
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxResumeUploadSize))
	if err != nil {
		h.HandleServiceError(c, appErrors.InternalError(err))
		return
	}

	profile, err := h.employeeService.UploadResume(userID, fileHeader.Filename, string(content))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *EmployeeHandler) RequestResumeFeedback(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.employeeService.RequestResumeFeedback(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, profile)
}

func (h *EmployeeHandler) ListEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	records, err := h.employeeService.ListEducation(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"education": records})
}

func (h *EmployeeHandler) AddEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEducationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.employeeService.AddEducation(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *EmployeeHandler) UpdateEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateEducationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	record, err := h.employeeService.UpdateEducation(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *EmployeeHandler) DeleteEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEducation(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Education record deleted."})
}

func (h *EmployeeHandler) ListProjects(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	projects, err := h.employeeService.ListProjects(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *EmployeeHandler) AddProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	project, err := h.employeeService.AddProject(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *EmployeeHandler) UpdateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if !h.BindJSON(c, &req) {
		return
	}

	project, err := h.employeeService.UpdateProject(userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (h *EmployeeHandler) DeleteProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteProject(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted."})
}
