package dto

import "jobportal_backend/internal/models"

// RegisterEmployeeRequest - запрос регистрации сотрудника.
// Пароль устанавливается позже, при верификации email.
type RegisterEmployeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// RegisterEmployerRequest - запрос регистрации работодателя
type RegisterEmployerRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	CompanyName    string `json:"company_name" binding:"required"`
	CompanyWebsite string `json:"company_website,omitempty"`
}

// VerifyEmailRequest - подтверждение email кодом с установкой пароля
type VerifyEmailRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest - запрос входа
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse - ответ с access-токеном и краткой сводкой аккаунта
type LoginResponse struct {
	AccessToken string          `json:"access_token"`
	UserID      string          `json:"user_id"`
	Role        models.UserRole `json:"role"`
	Name        string          `json:"name"`
}

// ForgotPasswordRequest - запрос кода сброса пароля
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest - сброс пароля по коду
type ResetPasswordRequest struct {
	Code     string `json:"code" binding:"required,len=6"`
	Password string `json:"password" binding:"required,min=8"`
}

// ChangePasswordRequest - смена пароля аутентифицированным пользователем
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AuthenticatedUser - результат успешной валидации токена.
// Email берется из токена, роль - из свежезагруженного аккаунта.
type AuthenticatedUser struct {
	UserID string
	Email  string
	Role   models.UserRole
	JTI    string
	// ExpiresAt токена в секундах эпохи - нужен для отзыва при смене пароля
	ExpiresAt int64
}
