package services

import (
	"fmt"
	"time"

	"gigwork_backend/internal/appErrors"
	"gigwork_backend/internal/auth"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/pkg/email"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
)

// ProposalService implements the invitation flow: an admin drafts a job
// for someone who may not have an account yet, the invitee reviews it
// through an unauthenticated preview link, and accepting it provisions
// the account (when needed), transfers the draft and publishes it.
//
// A proposal token is single-use. The pending -> accepted transition is
// a conditional update, so concurrent accepts resolve to exactly one
// winner and side effects never run twice.
type ProposalService interface {
	Create(actorID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error)
	GetByToken(token string) (*dto.ProposalResponse, error)
	Accept(token string, req *dto.AcceptProposalRequest) (*dto.AcceptProposalResult, error)
	Reject(token string) (*dto.RejectProposalResult, error)
	List(actorID string, page, pageSize int) (*dto.ProposalListResponse, error)
}

type proposalService struct {
	proposalRepo repositories.ProposalRepository
	userRepo     repositories.UserRepository
	jobService   JobService
	sender       email.Sender
	renderer     *email.Renderer
	baseURL      string
	nowFunc      func() time.Time
}

func NewProposalService(
	proposalRepo repositories.ProposalRepository,
	userRepo repositories.UserRepository,
	jobService JobService,
	sender email.Sender,
	renderer *email.Renderer,
	baseURL string,
) ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		userRepo:     userRepo,
		jobService:   jobService,
		sender:       sender,
		renderer:     renderer,
		baseURL:      baseURL,
		nowFunc:      time.Now,
	}
}

// ---------------- Creation ----------------

func (s *proposalService) Create(actorID string, req *dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, appErrors.ErrUserNotFound
	}
	if actor.AccountType != models.AccountTypeAdmin {
		return nil, appErrors.ErrInsufficientPermissions
	}

	job, err := s.jobService.CreateOwnerlessDraft(&req.Job)
	if err != nil {
		return nil, err
	}

	token, err := generateOpaqueToken()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	proposal := &models.Proposal{
		Token:  token,
		Email:  req.Email,
		Reason: models.ProposalReason(req.Reason),
		Status: models.ProposalStatusPending,
		JobID:  job.ID,
	}
	if err := s.proposalRepo.Create(proposal); err != nil {
		return nil, appErrors.InternalError(err)
	}

	previewURL := s.previewURL(job)
	rendered, err := s.renderer.Render(email.TemplateInvitation, job.Language, &email.InvitationData{
		PreviewURL: previewURL,
	})
	if err == nil {
		err = s.sender.Send(&email.Email{
			To:       proposal.Email,
			Subject:  rendered.Subject,
			Body:     rendered.Text,
			HTMLBody: rendered.HTML,
		})
	}
	if err != nil {
		logger.Warn("invitation email failed",
			"proposal_id", proposal.ID, "email", proposal.Email, "error", err)
	}

	proposal.Job = job
	return s.buildResponse(proposal, true), nil
}

// ---------------- Invitee-facing operations ----------------

func (s *proposalService) GetByToken(token string) (*dto.ProposalResponse, error) {
	proposal, err := s.proposalRepo.FindByToken(token)
	if err != nil {
		return nil, appErrors.ErrProposalNotFound
	}

	resp := s.buildResponse(proposal, false)
	if proposal.Job != nil {
		resp.Job = buildPreviewResponse(proposal.Job)
	}
	return resp, nil
}

func (s *proposalService) Accept(token string, req *dto.AcceptProposalRequest) (*dto.AcceptProposalResult, error) {
	if !req.TermsAccepted {
		return nil, appErrors.ErrTermsNotAccepted
	}

	proposal, err := s.proposalRepo.FindByToken(token)
	if err != nil {
		return nil, appErrors.ErrProposalNotFound
	}
	if proposal.Status != models.ProposalStatusPending {
		return nil, appErrors.ErrProposalAlreadyUsed
	}

	// Account checks are read-only and safe to run before claiming the
	// token; the claim itself decides the race.
	existing, findErr := s.userRepo.FindByEmail(proposal.Email)
	if findErr == nil && existing.AccountType != models.AccountTypeClient {
		return nil, appErrors.ErrAccountTypeConflict
	}

	claimed, err := s.proposalRepo.MarkResponded(proposal.ID, models.ProposalStatusAccepted, s.nowFunc())
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if !claimed {
		return nil, appErrors.ErrProposalAlreadyUsed
	}

	var (
		owner          *models.User
		accountCreated bool
	)
	if findErr == nil {
		owner = existing
	} else {
		owner, err = s.provisionAccount(proposal.Email, req.Language)
		if err != nil {
			logger.Error("proposal accepted but account provisioning failed, manual follow-up required",
				"proposal_id", proposal.ID, "job_id", proposal.JobID, "email", proposal.Email, "error", err)
			return nil, err
		}
		accountCreated = true
	}

	if err := s.jobService.TransferAndPublish(proposal.JobID, owner.ID); err != nil {
		// The token is already burned, so the job stays an ownerless
		// draft until an admin republishes it for this owner.
		logger.Error("proposal accepted but job transfer failed, manual follow-up required",
			"proposal_id", proposal.ID, "job_id", proposal.JobID, "owner_id", owner.ID, "error", err)
		return nil, err
	}

	s.sendWelcome(owner)

	message := "Your job offer is now live."
	if accountCreated {
		message = "Your account was created and your job offer is now live. Check your email for credentials."
	}
	return &dto.AcceptProposalResult{
		Message:        message,
		AccountCreated: accountCreated,
		JobID:          proposal.JobID,
	}, nil
}

func (s *proposalService) Reject(token string) (*dto.RejectProposalResult, error) {
	proposal, err := s.proposalRepo.FindByToken(token)
	if err != nil {
		return nil, appErrors.ErrProposalNotFound
	}

	// Rejecting has no side effects, so a non-pending proposal is a
	// silent no-op rather than a conflict. The status only ever flips
	// away from pending.
	if proposal.Status == models.ProposalStatusPending {
		if _, err := s.proposalRepo.MarkResponded(proposal.ID, models.ProposalStatusRejected, s.nowFunc()); err != nil {
			return nil, appErrors.InternalError(err)
		}
	}
	return &dto.RejectProposalResult{Message: "Thank you for letting us know."}, nil
}

// ---------------- Admin listing ----------------

func (s *proposalService) List(actorID string, page, pageSize int) (*dto.ProposalListResponse, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, appErrors.ErrUserNotFound
	}
	if actor.AccountType != models.AccountTypeAdmin {
		return nil, appErrors.ErrInsufficientPermissions
	}

	proposals, total, err := s.proposalRepo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	resp := &dto.ProposalListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range proposals {
		resp.Proposals = append(resp.Proposals, s.buildResponse(&proposals[i], true))
	}
	return resp, nil
}

// ---------------- Helpers ----------------

// provisionAccount creates a client account with a generated password
// and emails the credentials. The plaintext password exists only inside
// this call.
func (s *proposalService) provisionAccount(address, language string) (*models.User, error) {
	password, err := auth.GenerateRandomPassword(16)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	if language == "" {
		language = "en"
	}
	user := &models.User{
		Email:        address,
		PasswordHash: hash,
		AccountType:  models.AccountTypeClient,
		Language:     language,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, appErrors.InternalError(err)
	}

	rendered, err := s.renderer.Render(email.TemplateCredentials, language, &email.CredentialsData{
		Email:    address,
		Password: password,
		LoginURL: fmt.Sprintf("%s/login", s.baseURL),
	})
	if err == nil {
		err = s.sender.Send(&email.Email{
			To:       address,
			Subject:  rendered.Subject,
			Body:     rendered.Text,
			HTMLBody: rendered.HTML,
		})
	}
	if err != nil {
		logger.Error("credentials email failed", "user_id", user.ID, "error", err)
	}

	return user, nil
}

func (s *proposalService) sendWelcome(user *models.User) {
	rendered, err := s.renderer.Render(email.TemplateWelcome, user.Language, &email.WelcomeData{
		UserName: user.FirstName,
	})
	if err == nil {
		err = s.sender.Send(&email.Email{
			To:       user.Email,
			Subject:  rendered.Subject,
			Body:     rendered.Text,
			HTMLBody: rendered.HTML,
		})
	}
	if err != nil {
		logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}
}

func (s *proposalService) previewURL(job *models.Job) string {
	if job.PreviewHash == nil {
		return ""
	}
	return fmt.Sprintf("%s/offers/preview/%s", s.baseURL, *job.PreviewHash)
}

func (s *proposalService) buildResponse(proposal *models.Proposal, adminView bool) *dto.ProposalResponse {
	resp := &dto.ProposalResponse{
		Status:      string(proposal.Status),
		Reason:      string(proposal.Reason),
		CreatedAt:   proposal.CreatedAt,
		RespondedAt: proposal.RespondedAt,
	}
	if proposal.Job != nil {
		resp.JobTitle = proposal.Job.Title
		if adminView {
			resp.PreviewURL = s.previewURL(proposal.Job)
		}
	}
	if adminView {
		resp.Token = proposal.Token
		resp.Email = proposal.Email
	}
	return resp
}
