package dto

import "time"

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	CategoryID  string `json:"category_id" binding:"required"`
	Language    string `json:"language" binding:"omitempty,max=5"`

	BillingType    string   `json:"billing_type" binding:"omitempty,oneof=hourly fixed"`
	HoursPerWeek   *int     `json:"hours_per_week" binding:"omitempty,min=1,max=80"`
	Rate           *float64 `json:"rate" binding:"omitempty,min=0"`
	RateNegotiable bool     `json:"rate_negotiable"`
	Currency       string   `json:"currency" binding:"omitempty,len=3"`

	ExperienceLevel string  `json:"experience_level" binding:"omitempty,oneof=junior mid senior"`
	LocationID      *string `json:"location_id"`
	IsRemote        bool    `json:"is_remote"`
	ProjectType     string  `json:"project_type"`

	// OfferDays is the only way to get a deadline: createdAt + N days,
	// N restricted to a fixed set.
	OfferDays      *int `json:"offer_days" binding:"omitempty,oneof=7 14 21 30"`
	ExpectedOffers *int `json:"expected_offers" binding:"omitempty,oneof=6 10 14"`

	ExpectedApplicantTypes []string `json:"expected_applicant_types" binding:"omitempty,dive,oneof=individual agency"`

	// Existing skill ids plus names of skills to create on the fly.
	SkillIDs  []string `json:"skill_ids"`
	NewSkills []string `json:"new_skills" binding:"omitempty,dive,max=60"`
}

// UpdateJobRequest is an explicit patch object: one optional field per
// mutable attribute, applied field-by-field.
type UpdateJobRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id"`
	Language    *string `json:"language" binding:"omitempty,max=5"`

	BillingType    *string  `json:"billing_type" binding:"omitempty,oneof=hourly fixed"`
	HoursPerWeek   *int     `json:"hours_per_week" binding:"omitempty,min=1,max=80"`
	Rate           *float64 `json:"rate" binding:"omitempty,min=0"`
	RateNegotiable *bool    `json:"rate_negotiable"`
	Currency       *string  `json:"currency" binding:"omitempty,len=3"`

	ExperienceLevel *string `json:"experience_level" binding:"omitempty,oneof=junior mid senior"`
	LocationID      *string `json:"location_id"`
	IsRemote        *bool   `json:"is_remote"`
	ProjectType     *string `json:"project_type"`

	OfferDays      *int `json:"offer_days" binding:"omitempty,oneof=7 14 21 30"`
	ExpectedOffers *int `json:"expected_offers" binding:"omitempty,oneof=6 10 14"`

	ExpectedApplicantTypes []string `json:"expected_applicant_types" binding:"omitempty,dive,oneof=individual agency"`

	SkillIDs  []string `json:"skill_ids"`
	NewSkills []string `json:"new_skills" binding:"omitempty,dive,max=60"`
}

// JobResponse is the job view returned to callers. Rate fields are
// populated only for the owner/admin variant and on public listings of
// published jobs; the unauthenticated preview hides them.
type JobResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	AuthorID    *string `json:"author_id,omitempty"`
	Status      string `json:"status"`
	Language    string `json:"language,omitempty"`

	BillingType    string   `json:"billing_type,omitempty"`
	HoursPerWeek   *int     `json:"hours_per_week,omitempty"`
	Rate           *float64 `json:"rate,omitempty"`
	RateNegotiable *bool    `json:"rate_negotiable,omitempty"`
	Currency       string   `json:"currency,omitempty"`

	ExperienceLevel string  `json:"experience_level,omitempty"`
	LocationID      *string `json:"location_id,omitempty"`
	IsRemote        bool    `json:"is_remote"`
	ProjectType     string  `json:"project_type,omitempty"`

	Deadline       *time.Time `json:"deadline,omitempty"`
	ExpectedOffers *int       `json:"expected_offers,omitempty"`

	ExpectedApplicantTypes []string `json:"expected_applicant_types,omitempty"`

	RejectionReason string `json:"rejection_reason,omitempty"`

	Skills []SkillResponse `json:"skills"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type SkillResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type JobListResponse struct {
	Jobs     []*JobResponse `json:"jobs"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
