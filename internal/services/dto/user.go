package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

// UserResponse - публичное представление пользователя (без учетных данных)
type UserResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Role           models.UserRole   `json:"role"`
	Status         models.UserStatus `json:"status"`
	CompanyName    *string           `json:"company_name,omitempty"`
	CompanyWebsite *string           `json:"company_website,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// NewUserResponse строит UserResponse из модели
func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		Status:         user.Status,
		CompanyName:    user.CompanyName,
		CompanyWebsite: user.CompanyWebsite,
		CreatedAt:      user.CreatedAt,
	}
}
