package models

type Application struct {
	BaseModel
	JobID        string `gorm:"not null;uniqueIndex:idx_applications_job_freelancer"`
	FreelancerID string `gorm:"not null;uniqueIndex:idx_applications_job_freelancer"`

	// Message is nil when the freelancer submitted an empty (or
	// whitespace-only) cover note.
	Message *string `gorm:"type:varchar(2000)"`

	// Relations
	Freelancer *User `gorm:"foreignKey:FreelancerID"`
}
