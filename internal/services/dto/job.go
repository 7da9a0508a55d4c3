package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// CreateJobRequest - создание вакансии работодателем
type CreateJobRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description" binding:"required"`
	Location       string   `json:"location" binding:"required,max=255"`
	SkillsRequired []string `json:"skills_required,omitempty"`
	CompanyName    string   `json:"company_name,omitempty"`
	SalaryMin      *int     `json:"salary_min,omitempty" binding:"omitempty,gte=0"`
	SalaryMax      *int     `json:"salary_max,omitempty" binding:"omitempty,gte=0,gtefield=SalaryMin"`
}

// UpdateJobRequest - частичное обновление вакансии
type UpdateJobRequest struct {
	Title          *string  `json:"title,omitempty" binding:"omitempty,max=255"`
	Description    *string  `json:"description,omitempty"`
	Location       *string  `json:"location,omitempty" binding:"omitempty,max=255"`
	SkillsRequired []string `json:"skills_required,omitempty"`
	SalaryMin      *int     `json:"salary_min,omitempty" binding:"omitempty,gte=0"`
	SalaryMax      *int     `json:"salary_max,omitempty" binding:"omitempty,gte=0"`
}

// JobSearchQuery - параметры поиска вакансий
type JobSearchQuery struct {
	Query     string `form:"q"`
	Location  string `form:"location"`
	Skill     string `form:"skill"`
	SalaryMin *int   `form:"salary_min" binding:"omitempty,gte=0"`
	Page      int    `form:"page" binding:"omitempty,gte=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// JobResponse - представление вакансии
type JobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	SkillsRequired []string  `json:"skills_required"`
	CompanyName    string    `json:"company_name"`
	SalaryMin      *int      `json:"salary_min,omitempty"`
	SalaryMax      *int      `json:"salary_max,omitempty"`
	EmployerID     string    `json:"employer_id"`
	PostedAt       time.Time `json:"posted_at"`
}

// RecommendationQuery - параметры подбора рекомендаций
type RecommendationQuery struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=50"`
}

// JobRecommendation - вакансия с числом совпавших навыков
type JobRecommendation struct {
	JobResponse
	MatchScore int `json:"match_score"`
}

// JobListResponse - страница результатов поиска
type JobListResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

func NewJobResponse(job *models.Job) *JobResponse {
	return &JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Description:    job.Description,
		Location:       job.Location,
		SkillsRequired: job.SkillList(),
		CompanyName:    job.CompanyName,
		SalaryMin:      job.SalaryMin,
		SalaryMax:      job.SalaryMax,
		EmployerID:     job.EmployerID,
		PostedAt:       job.PostedAt,
	}
}
