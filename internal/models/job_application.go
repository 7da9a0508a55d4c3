package models

type JobApplication struct {
	BaseModel
	EmployeeID string `gorm:"not null;index;uniqueIndex:idx_employee_job"`
	JobID      string `gorm:"not null;index;uniqueIndex:idx_employee_job"`

	Status ApplicationStatus `gorm:"type:varchar(20);default:'applied'"`
	Notes  string            `gorm:"type:text"`

	Employee *User `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Job      *Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}
