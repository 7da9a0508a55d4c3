package appErrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenRevoked       ErrorCode = "TOKEN_REVOKED"
	CodePasswordChanged    ErrorCode = "PASSWORD_CHANGED"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Ресурсы
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound     ErrorCode = "PROFILE_NOT_FOUND"
	CodeEducationNotFound   ErrorCode = "EDUCATION_NOT_FOUND"
	CodeProjectNotFound     ErrorCode = "PROJECT_NOT_FOUND"
	CodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"

	// Бизнес-логика
	CodeEmailAlreadyExists       ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodePendingApproval          ErrorCode = "PENDING_ADMIN_APPROVAL"
	CodeUserNotVerified          ErrorCode = "USER_NOT_VERIFIED"
	CodeUserSuspended            ErrorCode = "USER_SUSPENDED"
	CodeUserNotActive            ErrorCode = "USER_NOT_ACTIVE"
	CodeInvalidVerification      ErrorCode = "INVALID_VERIFICATION"
	CodeVerificationExpired      ErrorCode = "VERIFICATION_EXPIRED"
	CodeInvalidResetCode         ErrorCode = "INVALID_RESET_CODE"
	CodeResetCodeExpired         ErrorCode = "RESET_CODE_EXPIRED"
	CodeApplicationAlreadyExists ErrorCode = "APPLICATION_ALREADY_EXISTS"
	CodeInsufficientPermissions  ErrorCode = "INSUFFICIENT_PERMISSIONS"

	// Системные ошибки
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
