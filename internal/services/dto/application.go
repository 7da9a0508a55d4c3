package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// UpdateApplicationStatusRequest - смена статуса отклика работодателем
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=applied viewed shortlisted interested"`
}

// UpdateApplicationNotesRequest - заметки работодателя по отклику
type UpdateApplicationNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// ApplicationResponse - представление отклика
type ApplicationResponse struct {
	ID         string                   `json:"id"`
	JobID      string                   `json:"job_id"`
	EmployeeID string                   `json:"employee_id"`
	Status     models.ApplicationStatus `json:"status"`
	Notes      string                   `json:"notes,omitempty"`
	AppliedAt  time.Time                `json:"applied_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
	Job        *JobResponse             `json:"job,omitempty"`
}

func NewApplicationResponse(app *models.JobApplication) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:         app.ID,
		JobID:      app.JobID,
		EmployeeID: app.EmployeeID,
		Status:     app.Status,
		Notes:      app.Notes,
		AppliedAt:  app.CreatedAt,
		UpdatedAt:  app.UpdatedAt,
	}
	if app.Job != nil {
		resp.Job = NewJobResponse(app.Job)
	}
	return resp
}
