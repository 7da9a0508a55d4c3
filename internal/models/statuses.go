package models

type UserStatus string
type UserRole string
type ApplicationStatus string
type FeedbackStatus string

const (
	UserStatusPendingEmailVerification UserStatus = "pending_email_verification"
	UserStatusPendingAdminApproval     UserStatus = "pending_admin_approval"
	UserStatusActive                   UserStatus = "active"
	UserStatusSuspended                UserStatus = "suspended"

	UserRoleEmployee UserRole = "employee"
	UserRoleEmployer UserRole = "employer"
	UserRoleAdmin    UserRole = "admin"

	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusViewed      ApplicationStatus = "viewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusInterested  ApplicationStatus = "interested"

	FeedbackStatusNone      FeedbackStatus = "none"
	FeedbackStatusPending   FeedbackStatus = "pending"
	FeedbackStatusCompleted FeedbackStatus = "completed"
	FeedbackStatusFailed    FeedbackStatus = "failed"
)
