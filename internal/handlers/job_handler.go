package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/middleware"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobService  services.JobService
	authService services.AuthService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService, authService services.AuthService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
		authService: authService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Поиск и просмотр вакансий - публичные
	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.SearchJobs)
		jobs.GET("/:id", h.GetJob)
	}

	// Персональные рекомендации по навыкам из профиля
	employee := rg.Group("/jobs/recommendations")
	employee.Use(middleware.Auth(h.authService))
	employee.Use(middleware.RequireRoles(models.UserRoleEmployee))
	{
		employee.GET("/my", h.RecommendJobs)
	}

	employer := rg.Group("/employers/me/jobs")
	employer.Use(middleware.Auth(h.authService))
	employer.Use(middleware.RequireRoles(models.UserRoleEmployer))
	{
		employer.GET("", h.ListMyJobs)
		employer.POST("", h.CreateJob)
		employer.PATCH("/:id", h.UpdateJob)
		employer.DELETE("/:id", h.DeleteJob)
	}
}

func (h *JobHandler) SearchJobs(c *gin.Context) {
	var query dto.JobSearchQuery
	if !h.BindQuery(c, &query) {
		return
	}

	result, err := h.jobService.SearchJobs(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) RecommendJobs(c *gin.Context) {
	employeeID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var query dto.RecommendationQuery
	if !h.BindQuery(c, &query) {
		return
	}

	recommendations, err := h.jobService.RecommendJobs(employeeID, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	jobs, err := h.jobService.ListEmployerJobs(employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(employerID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindJSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(employerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	employerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.jobService.DeleteJob(employerID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted."})
}
