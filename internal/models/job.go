package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	CategoryID  string `gorm:"not null;index"`

	// AuthorID is nil only while the job sits in proposal limbo, between
	// an admin creating the ownerless draft and the invitee accepting it.
	AuthorID *string   `gorm:"index"`
	Status   JobStatus `gorm:"type:varchar(20);default:'draft';index"`

	// RejectionReason holds the human-readable moderation note set by an
	// admin on reject. The owner may edit and resubmit afterwards.
	RejectionReason string

	Language string `gorm:"type:varchar(5)"`

	BillingType    BillingType `gorm:"type:varchar(20)"`
	HoursPerWeek   *int
	Rate           *float64
	RateNegotiable bool
	Currency       string `gorm:"type:varchar(3)"`

	ExperienceLevel string
	LocationID      *string
	IsRemote        bool
	ProjectType     string

	// Deadline is always CreatedAt + one of OfferDaysChoices, never an
	// arbitrary duration. Nil means no deadline.
	Deadline       *time.Time
	ExpectedOffers *int

	// ExpectedApplicantTypes restricts who may apply ("individual",
	// "agency"). Empty means anyone.
	ExpectedApplicantTypes datatypes.JSON `gorm:"type:jsonb"`

	// PreviewHash lets an unauthenticated proposal invitee view the draft.
	// Cleared on publish.
	PreviewHash *string `gorm:"uniqueIndex"`

	PublishedAt *time.Time
	ClosedAt    *time.Time

	// Relations
	Author *User   `gorm:"foreignKey:AuthorID"`
	Skills []Skill `gorm:"many2many:job_skills"`
}

// SkillIDs returns the ids of the attached skills.
func (j *Job) SkillIDs() []string {
	ids := make([]string, 0, len(j.Skills))
	for _, s := range j.Skills {
		ids = append(ids, s.ID)
	}
	return ids
}

// DeadlinePassed reports whether the application window is over.
func (j *Job) DeadlinePassed(now time.Time) bool {
	return j.Deadline != nil && j.Deadline.Before(now)
}
