package models

import "time"

type EmployeeProfile struct {
	BaseModel
	UserID            string         `gorm:"not null;uniqueIndex"`
	Bio               string         `gorm:"type:text"`
	Skills            string         `gorm:"type:text"` // список навыков через запятую
	YearsOfExperience int            `gorm:"default:0"`
	ResumeFilename    *string        `gorm:"type:varchar(255)"`
	ResumeText        *string        `gorm:"type:text"`
	FeedbackStatus    FeedbackStatus `gorm:"type:varchar(20);default:'none'"`
	ResumeFeedback    *string        `gorm:"type:text"`
	ResumeFeedbackAt  *time.Time
}

// SkillList разбирает поле Skills в срез строк
func (p *EmployeeProfile) SkillList() []string {
	return splitCommaList(p.Skills)
}

func (p *EmployeeProfile) SetSkillList(skills []string) {
	p.Skills = joinCommaList(skills)
}
