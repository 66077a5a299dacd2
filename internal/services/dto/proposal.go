package dto

import "time"

type CreateProposalRequest struct {
	Email  string           `json:"email" binding:"required,email"`
	Reason string           `json:"reason" binding:"required,oneof=cold_outreach returning_client partnership"`
	Job    CreateJobRequest `json:"job" binding:"required"`
}

type ProposalResponse struct {
	Token       string     `json:"token,omitempty"` // admin listing only
	Email       string     `json:"email,omitempty"` // admin listing only
	Status      string     `json:"status"`
	Reason      string     `json:"reason"`
	JobTitle    string     `json:"job_title"`
	PreviewURL  string     `json:"preview_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	// Job carries the rate-free preview for the invitee-facing view.
	Job *JobResponse `json:"job,omitempty"`
}

type ProposalListResponse struct {
	Proposals []*ProposalResponse `json:"proposals"`
	Total     int64               `json:"total"`
	Page      int                 `json:"page"`
	PageSize  int                 `json:"page_size"`
}

type AcceptProposalRequest struct {
	Language      string `json:"language" binding:"omitempty,max=5"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// AcceptProposalResult distinguishes the new-account phrasing from the
// existing-account phrasing.
type AcceptProposalResult struct {
	Message        string `json:"message"`
	AccountCreated bool   `json:"account_created"`
	JobID          string `json:"job_id"`
}

type RejectProposalResult struct {
	Message string `json:"message"`
}
