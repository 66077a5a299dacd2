package services

import (
	"encoding/json"
	"strings"
	"time"

	"gigwork_backend/internal/algorithms"
	"gigwork_backend/internal/appErrors"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/pkg/email"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
)

// ApplicationService handles freelancer applications to published jobs.
// There is at most one application per (job, freelancer) pair; applying
// again replaces the message instead of stacking a duplicate row.
type ApplicationService interface {
	Apply(jobID, freelancerID string, req *dto.ApplyRequest) error
	ListForJob(jobID, viewerID string) (*dto.ApplicationListResponse, error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	userRepo        repositories.UserRepository
	notifications   NotificationService
	nowFunc         func() time.Time
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifications:   notifications,
		nowFunc:         time.Now,
	}
}

func (s *applicationService) Apply(jobID, freelancerID string, req *dto.ApplyRequest) error {
	applicant, err := s.userRepo.FindByID(freelancerID)
	if err != nil {
		return appErrors.ErrUserNotFound
	}
	if applicant.AccountType != models.AccountTypeFreelancer {
		return appErrors.ErrNotAFreelancer
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return appErrors.ErrJobNotFound
	}
	switch job.Status {
	case models.JobStatusPublished:
		// open for applications
	case models.JobStatusClosed:
		return appErrors.ErrJobAlreadyClosed
	default:
		// Unpublished jobs do not exist for applicants.
		return appErrors.ErrJobNotFound
	}

	if job.AuthorID != nil && *job.AuthorID == applicant.ID {
		return appErrors.ErrSelfApplication
	}
	if job.DeadlinePassed(s.nowFunc()) {
		return appErrors.ErrDeadlinePassed
	}

	if len(job.ExpectedApplicantTypes) > 0 {
		var accepted []string
		if err := json.Unmarshal(job.ExpectedApplicantTypes, &accepted); err != nil {
			return appErrors.InternalError(err)
		}
		if !algorithms.ContainsProfileType(accepted, applicant.ProfileType()) {
			return appErrors.ErrApplicantTypeRejected
		}
	}

	// Capacity only blocks new applicants. A freelancer who already has
	// an application may still update their message.
	_, findErr := s.applicationRepo.FindByJobAndFreelancer(job.ID, applicant.ID)
	isNew := findErr != nil
	if isNew && job.ExpectedOffers != nil {
		count, err := s.applicationRepo.CountByJob(job.ID)
		if err != nil {
			return appErrors.InternalError(err)
		}
		if count >= int64(*job.ExpectedOffers) {
			return appErrors.ErrJobCapacityReached
		}
	}

	application := &models.Application{
		JobID:        job.ID,
		FreelancerID: applicant.ID,
		Message:      normalizeMessage(req.Message),
	}
	if err := s.applicationRepo.Upsert(application); err != nil {
		return appErrors.InternalError(err)
	}

	// The author hears about every accepted application, message updates
	// included.
	if err := s.notifications.NotifyNewApplication(job, applicant); err != nil {
		logger.Warn("application notification failed",
			"job_id", job.ID, "freelancer_id", applicant.ID, "error", err)
	}
	return nil
}

func (s *applicationService) ListForJob(jobID, viewerID string) (*dto.ApplicationListResponse, error) {
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

	if job.Status == models.JobStatusDraft || job.Status == models.JobStatusRejected {
		if !ownerView {
			return nil, appErrors.ErrJobNotFound
		}
	}

	applications, err := s.applicationRepo.FindByJob(job.ID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	resp := &dto.ApplicationListResponse{Total: len(applications)}
	for _, application := range applications {
		view := dto.ApplicantView{
			ApplicationID: application.ID,
			DisplayName:   applicantDisplayName(application.Freelancer, job.Language),
			AppliedAt:     application.CreatedAt,
		}
		if ownerView {
			view.FreelancerID = application.FreelancerID
			view.Message = application.Message
			if application.Freelancer != nil {
				view.Email = application.Freelancer.Email
			}
		}
		resp.Applicants = append(resp.Applicants, view)
	}
	return resp, nil
}

func applicantDisplayName(freelancer *models.User, lang string) string {
	if freelancer == nil || freelancer.FirstName == "" || freelancer.LastName == "" {
		return email.AnonymousName(lang)
	}
	return freelancer.ShortName()
}

// normalizeMessage trims the message and maps an empty result to nil.
func normalizeMessage(message string) *string {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	return &message
}
