package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists")
)

type ApplicationRepository interface {
	FindByID(id string) (*models.JobApplication, error)
	FindByEmployeeAndJob(employeeID, jobID string) (*models.JobApplication, error)
	Create(app *models.JobApplication) error
	UpdateStatus(id string, status models.ApplicationStatus) error
	UpdateNotes(id string, notes string) error
	FindByEmployee(employeeID string) ([]models.JobApplication, error)
	FindByJob(jobID string) ([]models.JobApplication, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.Preload("Job").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) FindByEmployeeAndJob(employeeID, jobID string) (*models.JobApplication, error) {
	var app models.JobApplication
	err := r.db.First(&app, "employee_id = ? AND job_id = ?", employeeID, jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) Create(app *models.JobApplication) error {
	// Пара (employee_id, job_id) уникальна
	if _, err := r.FindByEmployeeAndJob(app.EmployeeID, app.JobID); err == nil {
		return ErrApplicationExists
	}
	return r.db.Create(app).Error
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.JobApplication{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) UpdateNotes(id string, notes string) error {
	result := r.db.Model(&models.JobApplication{}).Where("id = ?", id).Updates(map[string]interface{}{
		"notes":      notes,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByEmployee(employeeID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.Preload("Job").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.Preload("Employee").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}
