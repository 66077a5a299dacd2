package dto

import "time"

type ApplyRequest struct {
	Message string `json:"message" binding:"omitempty,max=2000"`
}

// ApplicantView is a two-variant applicant row. The variant is selected
// by an explicit viewer check, never inferred from the payload shape:
// owners and admins get full details, everyone else gets initials only.
type ApplicantView struct {
	ApplicationID string    `json:"application_id"`
	DisplayName   string    `json:"display_name"`
	AppliedAt     time.Time `json:"applied_at"`

	// Owner/admin variant only
	FreelancerID string  `json:"freelancer_id,omitempty"`
	Email        string  `json:"email,omitempty"`
	Message      *string `json:"message,omitempty"`
}

type ApplicationListResponse struct {
	Applicants []ApplicantView `json:"applicants"`
	Total      int             `json:"total"`
}
