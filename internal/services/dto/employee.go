package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// UpdateEmployeeProfileRequest - обновление профиля сотрудника
type UpdateEmployeeProfileRequest struct {
	Bio               *string  `json:"bio,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	YearsOfExperience *int     `json:"years_of_experience,omitempty" binding:"omitempty,gte=0"`
}

// EmployeeProfileResponse - представление профиля сотрудника
type EmployeeProfileResponse struct {
	ID                string                `json:"id"`
	UserID            string                `json:"user_id"`
	Bio               string                `json:"bio"`
	Skills            []string              `json:"skills"`
	YearsOfExperience int                   `json:"years_of_experience"`
	ResumeFilename    *string               `json:"resume_filename,omitempty"`
	FeedbackStatus    models.FeedbackStatus `json:"resume_feedback_status"`
	ResumeFeedback    *string               `json:"resume_feedback,omitempty"`
	ResumeFeedbackAt  *time.Time            `json:"resume_feedback_at,omitempty"`
}

func NewEmployeeProfileResponse(p *models.EmployeeProfile) *EmployeeProfileResponse {
	return &EmployeeProfileResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		Bio:               p.Bio,
		Skills:            p.SkillList(),
		YearsOfExperience: p.YearsOfExperience,
		ResumeFilename:    p.ResumeFilename,
		FeedbackStatus:    p.FeedbackStatus,
		ResumeFeedback:    p.ResumeFeedback,
		ResumeFeedbackAt:  p.ResumeFeedbackAt,
	}
}

// CreateEducationRequest - добавление записи об образовании
type CreateEducationRequest struct {
	Institution  string     `json:"institution" binding:"required,max=255"`
	Degree       string     `json:"degree" binding:"required,max=255"`
	FieldOfStudy *string    `json:"field_of_study,omitempty" binding:"omitempty,max=255"`
	StartDate    time.Time  `json:"start_date" binding:"required"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

// UpdateEducationRequest - частичное обновление записи об образовании
type UpdateEducationRequest struct {
	Institution  *string    `json:"institution,omitempty" binding:"omitempty,max=255"`
	Degree       *string    `json:"degree,omitempty" binding:"omitempty,max=255"`
	FieldOfStudy *string    `json:"field_of_study,omitempty" binding:"omitempty,max=255"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

// EducationResponse - представление записи об образовании
type EducationResponse struct {
	ID           string     `json:"id"`
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy *string    `json:"field_of_study,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Description  *string    `json:"description,omitempty"`
}

func NewEducationResponse(e *models.Education) *EducationResponse {
	return &EducationResponse{
		ID:           e.ID,
		Institution:  e.Institution,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Description:  e.Description,
	}
}

// CreateProjectRequest - добавление проекта в портфолио
type CreateProjectRequest struct {
	Title            string     `json:"title" binding:"required,max=255"`
	Description      string     `json:"description" binding:"required"`
	TechnologiesUsed []string   `json:"technologies_used,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	ProjectURL       *string    `json:"project_url,omitempty" binding:"omitempty,url,max=500"`
	RepositoryURL    *string    `json:"repository_url,omitempty" binding:"omitempty,url,max=500"`
}

// UpdateProjectRequest - частичное обновление проекта
type UpdateProjectRequest struct {
	Title            *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description      *string    `json:"description,omitempty"`
	TechnologiesUsed []string   `json:"technologies_used,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	ProjectURL       *string    `json:"project_url,omitempty" binding:"omitempty,url,max=500"`
	RepositoryURL    *string    `json:"repository_url,omitempty" binding:"omitempty,url,max=500"`
}

// ProjectResponse - представление проекта в портфолио
type ProjectResponse struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	TechnologiesUsed []string   `json:"technologies_used"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	ProjectURL       *string    `json:"project_url,omitempty"`
	RepositoryURL    *string    `json:"repository_url,omitempty"`
}

func NewProjectResponse(p *models.Project) *ProjectResponse {
	return &ProjectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		TechnologiesUsed: p.TechnologyList(),
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		ProjectURL:       p.ProjectURL,
		RepositoryURL:    p.RepositoryURL,
	}
}
