package services

import "jobportal_backend/internal/email"

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	UserService        UserService
	EmployeeService    EmployeeService
	JobService         JobService
	ApplicationService ApplicationService
	EmailService       email.Provider
	DenyList           *TokenDenyList
}
