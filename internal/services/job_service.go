package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"gigwork_backend/internal/appErrors"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"

	"gorm.io/datatypes"
)

// JobService owns the job state machine:
//
//	DRAFT --publish--> PUBLISHED --close--> CLOSED
//	DRAFT --reject---> REJECTED --update--> DRAFT
//	PUBLISHED --update--> DRAFT   (edit forces re-moderation)
//
// Nothing leaves CLOSED, and PUBLISHED is only reachable through Publish
// or the invitation-acceptance transfer.
type JobService interface {
	CreateDraft(authorID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)

	// CreateOwnerlessDraft is used only by the proposal flow. The
	// returned job carries a non-guessable preview hash so the invitee
	// can view the draft without authenticating.
	CreateOwnerlessDraft(req *dto.CreateJobRequest) (*models.Job, error)

	Publish(jobID, actorID string) error

	// TransferAndPublish assigns the ownerless draft to its new owner
	// and publishes it. Only the invitation-acceptance flow calls this.
	TransferAndPublish(jobID, newAuthorID string) error

	// PublishSeededDraft publishes the oldest draft authored by a fake
	// account, if any. Only the content scheduler calls this.
	PublishSeededDraft() error

	Reject(jobID, actorID, reason string) error
	Close(jobID, actorID string) error
	Update(jobID, actorID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)

	GetJob(jobID, viewerID string) (*dto.JobResponse, error)
	GetPreview(hash string) (*dto.JobResponse, error)
	ListPublished(page, pageSize int) (*dto.JobListResponse, error)
	ListByAuthor(authorID string) (*dto.JobListResponse, error)
}

type jobService struct {
	jobRepo       repositories.JobRepository
	userRepo      repositories.UserRepository
	referenceRepo repositories.ReferenceRepository
	notifications NotificationService
	nowFunc       func() time.Time
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	referenceRepo repositories.ReferenceRepository,
	notifications NotificationService,
) JobService {
	return &jobService{
		jobRepo:       jobRepo,
		userRepo:      userRepo,
		referenceRepo: referenceRepo,
		notifications: notifications,
		nowFunc:       time.Now,
	}
}

// ---------------- Draft creation ----------------

func (s *jobService) CreateDraft(authorID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	author, err := s.userRepo.FindByID(authorID)
	if err != nil {
		return nil, appErrors.ErrUserNotFound
	}
	if author.AccountType != models.AccountTypeClient && author.AccountType != models.AccountTypeAdmin {
		return nil, appErrors.ErrInsufficientPermissions
	}

	job, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}
	job.AuthorID = &author.ID

	if err := s.jobRepo.Create(job); err != nil {
		return nil, appErrors.InternalError(err)
	}

	return buildJobResponse(job, true), nil
}

func (s *jobService) CreateOwnerlessDraft(req *dto.CreateJobRequest) (*models.Job, error) {
	job, err := s.buildDraft(req)
	if err != nil {
		return nil, err
	}

	hash, err := generateOpaqueToken()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	job.PreviewHash = &hash

	if err := s.jobRepo.Create(job); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return job, nil
}

// buildDraft validates references, resolves the skill set and computes
// the deadline. It does not persist.
func (s *jobService) buildDraft(req *dto.CreateJobRequest) (*models.Job, error) {
	if _, err := s.referenceRepo.FindCategoryByID(req.CategoryID); err != nil {
		return nil, appErrors.ErrUnknownCategory
	}
	if req.LocationID != nil {
		exists, err := s.referenceRepo.LocationExists(*req.LocationID)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		if !exists {
			return nil, appErrors.ErrUnknownLocation
		}
	}

	skills, err := s.resolveSkills(req.SkillIDs, req.NewSkills)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()
	job := &models.Job{
		Title:           req.Title,
		Description:     req.Description,
		CategoryID:      req.CategoryID,
		Status:          models.JobStatusDraft,
		Language:        req.Language,
		BillingType:     models.BillingType(req.BillingType),
		HoursPerWeek:    req.HoursPerWeek,
		Rate:            req.Rate,
		RateNegotiable:  req.RateNegotiable,
		Currency:        req.Currency,
		ExperienceLevel: req.ExperienceLevel,
		LocationID:      req.LocationID,
		IsRemote:        req.IsRemote,
		ProjectType:     req.ProjectType,
		Skills:          skills,
	}
	job.CreatedAt = now

	if req.OfferDays != nil {
		deadline, err := deadlineFrom(now, *req.OfferDays)
		if err != nil {
			return nil, err
		}
		job.Deadline = deadline
	}

	if req.ExpectedOffers != nil {
		if !models.ExpectedOffersChoices[*req.ExpectedOffers] {
			return nil, appErrors.ErrInvalidExpectedOffers
		}
		job.ExpectedOffers = req.ExpectedOffers
	}

	if len(req.ExpectedApplicantTypes) > 0 {
		raw, err := json.Marshal(req.ExpectedApplicantTypes)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		job.ExpectedApplicantTypes = datatypes.JSON(raw)
	}

	return job, nil
}

// resolveSkills combines existing skill ids with newly named skills,
// deduplicated by name.
func (s *jobService) resolveSkills(ids []string, names []string) ([]models.Skill, error) {
	skills, err := s.referenceRepo.FindSkillsByIDs(ids)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if len(skills) != len(uniqueStrings(ids)) {
		return nil, appErrors.ErrUnknownSkill
	}

	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		seen[strings.ToLower(skill.Name)] = true
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		skill, err := s.referenceRepo.FirstOrCreateSkill(name)
		if err != nil {
			return nil, appErrors.InternalError(err)
		}
		skills = append(skills, *skill)
		seen[strings.ToLower(name)] = true
	}

	return skills, nil
}

// ---------------- State transitions ----------------

func (s *jobService) Publish(jobID, actorID string) error {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return appErrors.ErrUserNotFound
	}
	if actor.AccountType != models.AccountTypeAdmin {
		return appErrors.ErrInsufficientPermissions
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return appErrors.ErrJobNotFound
	}
	if job.Status != models.JobStatusDraft {
		return appErrors.ErrJobNotDraft
	}

	return s.publish(job)
}

func (s *jobService) TransferAndPublish(jobID, newAuthorID string) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return appErrors.ErrJobNotFound
	}
	if job.Status != models.JobStatusDraft {
		return appErrors.ErrJobNotDraft
	}

	job.AuthorID = &newAuthorID
	job.Author = nil
	// The draft is a real public listing now; the preview link dies.
	job.PreviewHash = nil

	return s.publish(job)
}

func (s *jobService) PublishSeededDraft() error {
	job, err := s.jobRepo.FindOldestSeededDraft()
	if err != nil {
		if appErrors.Is(err, repositories.ErrJobNotFound) {
			return nil
		}
		return appErrors.InternalError(err)
	}
	return s.publish(job)
}

func (s *jobService) publish(job *models.Job) error {
	now := s.nowFunc()
	job.Status = models.JobStatusPublished
	job.PublishedAt = &now

	if err := s.jobRepo.Save(job); err != nil {
		return appErrors.InternalError(err)
	}

	// Seeded listings never generate match notifications.
	if job.Author != nil && job.Author.IsFake {
		return nil
	}

	// Matching runs after the state change is durable. Dispatch problems
	// are logged, never surfaced as a publish failure.
	if err := s.notifications.NotifyJobPublished(job); err != nil {
		logger.Warn("job match notification failed", "job_id", job.ID, "error", err)
	}
	return nil
}

func (s *jobService) Reject(jobID, actorID, reason string) error {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return appErrors.ErrUserNotFound
	}
	if actor.AccountType != models.AccountTypeAdmin {
		return appErrors.ErrInsufficientPermissions
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return appErrors.ErrJobNotFound
	}
	if job.Status != models.JobStatusDraft {
		return appErrors.ErrJobNotDraft
	}

	job.Status = models.JobStatusRejected
	job.RejectionReason = reason

	if err := s.jobRepo.Save(job); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *jobService) Close(jobID, actorID string) error {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return appErrors.ErrUserNotFound
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return appErrors.ErrJobNotFound
	}
	if !isOwnerOrAdmin(job, actor) {
		return appErrors.ErrInsufficientPermissions
	}

	// Closing is strict, not idempotent: a second close is a conflict.
	switch job.Status {
	case models.JobStatusClosed:
		return appErrors.ErrJobAlreadyClosed
	case models.JobStatusPublished:
		// ok
	default:
		return appErrors.ErrJobNotClosable
	}

	now := s.nowFunc()
	job.Status = models.JobStatusClosed
	job.ClosedAt = &now

	if err := s.jobRepo.Save(job); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *jobService) Update(jobID, actorID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, appErrors.ErrUserNotFound
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, appErrors.ErrJobNotFound
	}
	if job.AuthorID == nil || *job.AuthorID != actor.ID {
		return nil, appErrors.ErrInsufficientPermissions
	}
	if actor.AccountType != models.AccountTypeClient {
		return nil, appErrors.ErrInsufficientPermissions
	}
	if job.Status == models.JobStatusClosed {
		return nil, appErrors.ErrJobAlreadyClosed
	}

	if err := s.applyPatch(job, req); err != nil {
		return nil, err
	}

	// Every edit goes back through moderation.
	job.Status = models.JobStatusDraft

	if err := s.jobRepo.Save(job); err != nil {
		return nil, appErrors.InternalError(err)
	}

	if req.SkillIDs != nil || req.NewSkills != nil {
		skills, err := s.resolveSkills(req.SkillIDs, req.NewSkills)
		if err != nil {
			return nil, err
		}
		if err := s.jobRepo.ReplaceSkills(job, skills); err != nil {
			return nil, appErrors.InternalError(err)
		}
	}

	return buildJobResponse(job, true), nil
}

// applyPatch copies set patch fields onto the entity, field by field.
func (s *jobService) applyPatch(job *models.Job, req *dto.UpdateJobRequest) error {
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.referenceRepo.FindCategoryByID(*req.CategoryID); err != nil {
			return appErrors.ErrUnknownCategory
		}
		job.CategoryID = *req.CategoryID
	}
	if req.Language != nil {
		job.Language = *req.Language
	}
	if req.BillingType != nil {
		job.BillingType = models.BillingType(*req.BillingType)
	}
	if req.HoursPerWeek != nil {
		job.HoursPerWeek = req.HoursPerWeek
	}
	if req.Rate != nil {
		job.Rate = req.Rate
	}
	if req.RateNegotiable != nil {
		job.RateNegotiable = *req.RateNegotiable
	}
	if req.Currency != nil {
		job.Currency = *req.Currency
	}
	if req.ExperienceLevel != nil {
		job.ExperienceLevel = *req.ExperienceLevel
	}
	if req.LocationID != nil {
		exists, err := s.referenceRepo.LocationExists(*req.LocationID)
		if err != nil {
			return appErrors.InternalError(err)
		}
		if !exists {
			return appErrors.ErrUnknownLocation
		}
		job.LocationID = req.LocationID
	}
	if req.IsRemote != nil {
		job.IsRemote = *req.IsRemote
	}
	if req.ProjectType != nil {
		job.ProjectType = *req.ProjectType
	}
	if req.OfferDays != nil {
		// Always anchored to the original creation time, not the edit.
		deadline, err := deadlineFrom(job.CreatedAt, *req.OfferDays)
		if err != nil {
			return err
		}
		job.Deadline = deadline
	}
	if req.ExpectedOffers != nil {
		if !models.ExpectedOffersChoices[*req.ExpectedOffers] {
			return appErrors.ErrInvalidExpectedOffers
		}
		job.ExpectedOffers = req.ExpectedOffers
	}
	if req.ExpectedApplicantTypes != nil {
		raw, err := json.Marshal(req.ExpectedApplicantTypes)
		if err != nil {
			return appErrors.InternalError(err)
		}
		job.ExpectedApplicantTypes = datatypes.JSON(raw)
	}
	return nil
}

// ---------------- Read paths ----------------

func (s *jobService) GetJob(jobID, viewerID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, appErrors.ErrJobNotFound
	}

	ownerView := false
	if viewerID != "" {
		if viewer, err := s.userRepo.FindByID(viewerID); err == nil {
			ownerView = isOwnerOrAdmin(job, viewer)
		}
	}

	// Drafts and rejected jobs are invisible to everyone else.
	if (job.Status == models.JobStatusDraft || job.Status == models.JobStatusRejected) && !ownerView {
		return nil, appErrors.ErrJobNotFound
	}

	return buildJobResponse(job, ownerView), nil
}

func (s *jobService) GetPreview(hash string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByPreviewHash(hash)
	if err != nil {
		return nil, appErrors.ErrJobNotFound
	}
	return buildPreviewResponse(job), nil
}

func (s *jobService) ListPublished(page, pageSize int) (*dto.JobListResponse, error) {
	jobs, total, err := s.jobRepo.ListPublished(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	responses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildJobResponse(&jobs[i], false))
	}

	return &dto.JobListResponse{
		Jobs:     responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *jobService) ListByAuthor(authorID string) (*dto.JobListResponse, error) {
	jobs, err := s.jobRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	responses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildJobResponse(&jobs[i], true))
	}

	return &dto.JobListResponse{
		Jobs:     responses,
		Total:    int64(len(jobs)),
		Page:     1,
		PageSize: len(jobs),
	}, nil
}

// ---------------- Helpers ----------------

func isOwnerOrAdmin(job *models.Job, user *models.User) bool {
	if user.AccountType == models.AccountTypeAdmin {
		return true
	}
	return job.AuthorID != nil && *job.AuthorID == user.ID
}

func deadlineFrom(createdAt time.Time, offerDays int) (*time.Time, error) {
	if !models.OfferDaysChoices[offerDays] {
		return nil, appErrors.ErrInvalidOfferDays
	}
	deadline := createdAt.AddDate(0, 0, offerDays)
	return &deadline, nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// generateOpaqueToken returns 32 random bytes hex-encoded, used for both
// proposal tokens and preview hashes.
func generateOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func buildJobResponse(job *models.Job, ownerView bool) *dto.JobResponse {
	resp := &dto.JobResponse{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		CategoryID:      job.CategoryID,
		AuthorID:        job.AuthorID,
		Status:          string(job.Status),
		Language:        job.Language,
		BillingType:     string(job.BillingType),
		HoursPerWeek:    job.HoursPerWeek,
		Rate:            job.Rate,
		RateNegotiable:  &job.RateNegotiable,
		Currency:        job.Currency,
		ExperienceLevel: job.ExperienceLevel,
		LocationID:      job.LocationID,
		IsRemote:        job.IsRemote,
		ProjectType:     job.ProjectType,
		Deadline:        job.Deadline,
		ExpectedOffers:  job.ExpectedOffers,
		Skills:          buildSkillResponses(job.Skills),
		PublishedAt:     job.PublishedAt,
		ClosedAt:        job.ClosedAt,
		CreatedAt:       job.CreatedAt,
	}

	if len(job.ExpectedApplicantTypes) > 0 {
		_ = json.Unmarshal(job.ExpectedApplicantTypes, &resp.ExpectedApplicantTypes)
	}

	if ownerView {
		resp.RejectionReason = job.RejectionReason
	}

	return resp
}

// buildPreviewResponse is the unauthenticated variant used by proposal
// preview links: no author, no rate data.
func buildPreviewResponse(job *models.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		CategoryID:      job.CategoryID,
		Status:          string(job.Status),
		Language:        job.Language,
		ExperienceLevel: job.ExperienceLevel,
		LocationID:      job.LocationID,
		IsRemote:        job.IsRemote,
		ProjectType:     job.ProjectType,
		Deadline:        job.Deadline,
		Skills:          buildSkillResponses(job.Skills),
		CreatedAt:       job.CreatedAt,
	}
}

func buildSkillResponses(skills []models.Skill) []dto.SkillResponse {
	out := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, dto.SkillResponse{ID: s.ID, Name: s.Name})
	}
	return out
}
