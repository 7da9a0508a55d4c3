package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// С цепочкой ошибок
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Вспомогательные методы
func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Для маршалинга в JSON
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Предопределенные ошибки
var (
	// Аутентификация
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
	ErrTokenRevoked       = New(CodeTokenRevoked, "Token has been invalidated", http.StatusUnauthorized)
	ErrPasswordChanged    = New(CodePasswordChanged, "Password has changed since this token was issued. Please log in again.", http.StatusUnauthorized)

	// Статусы аккаунта при логине (порядок проверки: верификация -> одобрение -> блокировка -> прочее)
	ErrAccountNotVerified     = New(CodeUserNotVerified, "Account not verified. Please check your email.", http.StatusUnauthorized)
	ErrAccountPendingApproval = New(CodeUserNotActive, "Account pending administrator approval.", http.StatusUnauthorized)
	ErrAccountSuspended       = New(CodeUserSuspended, "Your account has been suspended.", http.StatusUnauthorized)
	ErrAccountNotActive       = New(CodeUserNotActive, "Account is not active.", http.StatusUnauthorized)

	// Регистрация
	ErrEmailAlreadyExists     = New(CodeEmailAlreadyExists, "User with this email already exists.", http.StatusConflict)
	ErrAlreadyPendingApproval = New(CodePendingApproval, "This email is registered and pending administrator approval.", http.StatusConflict)
	ErrAlreadyActive          = New(CodeEmailAlreadyExists, "An active account with this email already exists.", http.StatusConflict)

	// Верификация email
	ErrInvalidVerification     = New(CodeInvalidVerification, "Invalid verification request. User not found or already verified.", http.StatusBadRequest)
	ErrInvalidVerificationCode = New(CodeInvalidVerification, "Invalid verification code.", http.StatusBadRequest)
	ErrVerificationExpired     = New(CodeVerificationExpired, "Verification code has expired. Please register again.", http.StatusBadRequest)

	// Сброс пароля
	ErrInvalidResetCode  = New(CodeInvalidResetCode, "Invalid or expired reset code.", http.StatusBadRequest)
	ErrResetCodeExpired  = New(CodeResetCodeExpired, "Reset code has expired.", http.StatusBadRequest)
	ErrIncorrectPassword = New(CodeInvalidCredentials, "Incorrect current password.", http.StatusUnauthorized)

	// Пользователи
	ErrUserNotFound    = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrWeakPassword    = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)
	ErrInvalidUserRole = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)

	// Профили и вакансии
	ErrProfileNotFound     = New(CodeProfileNotFound, "Employee profile not found", http.StatusNotFound)
	ErrEducationNotFound   = New(CodeEducationNotFound, "Education record not found", http.StatusNotFound)
	ErrProjectNotFound     = New(CodeProjectNotFound, "Project not found", http.StatusNotFound)
	ErrJobNotFound         = New(CodeJobNotFound, "Job not found", http.StatusNotFound)
	ErrApplicationNotFound = New(CodeApplicationNotFound, "Application not found", http.StatusNotFound)
	ErrApplicationExists   = New(CodeApplicationAlreadyExists, "You have already applied for this job.", http.StatusConflict)
	ErrInterestExists      = New(CodeApplicationAlreadyExists, "You have already expressed interest in this job.", http.StatusConflict)
	ErrNotJobOwner         = New(CodeInsufficientPermissions, "Only the posting employer can manage this job", http.StatusForbidden)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Функции-помощники для создания ошибок с деталями
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

func NotFound(resource string) *AppError {
	return New(CodeUserNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}
