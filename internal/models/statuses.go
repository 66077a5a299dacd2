package models

type AccountType string
type JobStatus string
type ProposalStatus string
type ProposalReason string
type NotificationFrequency string
type BillingType string

const (
	AccountTypeClient     AccountType = "client"
	AccountTypeFreelancer AccountType = "freelancer"
	AccountTypeAdmin      AccountType = "admin"

	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
	JobStatusRejected  JobStatus = "rejected"

	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"

	ProposalReasonColdOutreach    ProposalReason = "cold_outreach"
	ProposalReasonReturningClient ProposalReason = "returning_client"
	ProposalReasonPartnership     ProposalReason = "partnership"

	FrequencyInstant     NotificationFrequency = "instant"
	FrequencyDailyDigest NotificationFrequency = "daily_digest"

	BillingTypeHourly BillingType = "hourly"
	BillingTypeFixed  BillingType = "fixed"
)

// OfferDaysChoices are the only allowed offsets between a job's creation
// time and its application deadline.
var OfferDaysChoices = map[int]bool{7: true, 14: true, 21: true, 30: true}

// ExpectedOffersChoices are the only allowed application caps.
var ExpectedOffersChoices = map[int]bool{6: true, 10: true, 14: true}
