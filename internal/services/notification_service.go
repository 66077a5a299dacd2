package services

import (
	"encoding/json"
	"fmt"
	"time"

	"gigwork_backend/internal/algorithms"
	"gigwork_backend/internal/appErrors"
	"gigwork_backend/internal/logger"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/pkg/email"
	"gigwork_backend/internal/repositories"
	"gigwork_backend/internal/services/dto"
)

// NotificationService matches published jobs against freelancer skill
// profiles and delivers the results, either immediately or through the
// daily digest depending on each recipient's preference.
type NotificationService interface {
	NotifyJobPublished(job *models.Job) error
	NotifyNewApplication(job *models.Job, applicant *models.User) error

	// RunDailyDigest delivers all undispatched job match logs, one email
	// per recipient.
	RunDailyDigest() error

	// RunCategoryNewsletter emails followers of categories that received
	// new published jobs since the given time.
	RunCategoryNewsletter(since time.Time) error

	GetPreferences(userID string) (*dto.PreferenceListResponse, error)
	UpdatePreference(userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	jobRepo          repositories.JobRepository
	followRepo       repositories.FollowRepository
	sender           email.Sender
	renderer         *email.Renderer
	baseURL          string
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	followRepo repositories.FollowRepository,
	sender email.Sender,
	renderer *email.Renderer,
	baseURL string,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		jobRepo:          jobRepo,
		followRepo:       followRepo,
		sender:           sender,
		renderer:         renderer,
		baseURL:          baseURL,
	}
}

// ---------------- Matching ----------------

func (s *notificationService) NotifyJobPublished(job *models.Job) error {
	skillIDs := job.SkillIDs()
	if len(skillIDs) == 0 {
		return nil
	}

	candidates, err := s.userRepo.FindFreelancersWithSkills(skillIDs)
	if err != nil {
		return err
	}

	for i := range candidates {
		candidate := &candidates[i]
		if job.AuthorID != nil && *job.AuthorID == candidate.ID {
			continue
		}

		pref := s.resolvePreference(candidate.ID, repositories.NotificationTypeJobMatch)
		if !pref.Enabled {
			continue
		}

		matched := algorithms.MatchedSkills(job.Skills, candidate.Skills)
		if len(matched) == 0 {
			continue
		}

		instant := pref.Frequency == models.FrequencyInstant
		if err := s.recordMatch(candidate, job, matched, instant); err != nil {
			logger.Warn("job match delivery failed",
				"job_id", job.ID, "user_id", candidate.ID, "error", err)
		}
	}

	return nil
}

// recordMatch writes the notification log and, for instant recipients,
// sends the email. Instant logs are dispatched at creation time even when
// the send fails; delivery failure is not a matching error and the digest
// never re-covers instant recipients.
func (s *notificationService) recordMatch(user *models.User, job *models.Job, matched []string, instant bool) error {
	data, err := json.Marshal(map[string]interface{}{"matched_skills": matched})
	if err != nil {
		return err
	}

	log := &models.NotificationLog{
		UserID:     user.ID,
		JobID:      job.ID,
		Type:       repositories.NotificationTypeJobMatch,
		Data:       data,
		Dispatched: instant,
	}

	var sendErr error
	if instant {
		sendErr = s.sendJobMatch(user, job, matched)
	}

	if err := s.notificationRepo.CreateLog(log); err != nil {
		return err
	}
	return sendErr
}

func (s *notificationService) sendJobMatch(user *models.User, job *models.Job, matched []string) error {
	rendered, err := s.renderer.Render(email.TemplateJobMatch, user.Language, &email.JobMatchData{
		UserName: user.FirstName,
		JobTitle: job.Title,
		JobURL:   s.jobURL(job.ID),
		Skills:   matched,
	})
	if err != nil {
		return err
	}
	return s.sender.Send(&email.Email{
		To:       user.Email,
		Subject:  rendered.Subject,
		Body:     rendered.Text,
		HTMLBody: rendered.HTML,
	})
}

// ---------------- Applications ----------------

func (s *notificationService) NotifyNewApplication(job *models.Job, applicant *models.User) error {
	if job.AuthorID == nil {
		return nil
	}
	author, err := s.userRepo.FindByID(*job.AuthorID)
	if err != nil {
		return err
	}

	pref := s.resolvePreference(author.ID, repositories.NotificationTypeNewApplication)
	if !pref.Enabled {
		return nil
	}

	applicantName := email.AnonymousName(author.Language)
	if applicant.FirstName != "" && applicant.LastName != "" {
		applicantName = applicant.ShortName()
	}

	rendered, err := s.renderer.Render(email.TemplateNewApplication, author.Language, &email.NewApplicationData{
		ApplicantName: applicantName,
		JobTitle:      job.Title,
		JobURL:        s.jobURL(job.ID),
	})
	if err != nil {
		return err
	}

	if err := s.sender.Send(&email.Email{
		To:       author.Email,
		Subject:  rendered.Subject,
		Body:     rendered.Text,
		HTMLBody: rendered.HTML,
	}); err != nil {
		return err
	}

	return s.notificationRepo.CreateLog(&models.NotificationLog{
		UserID:     author.ID,
		JobID:      job.ID,
		Type:       repositories.NotificationTypeNewApplication,
		Dispatched: true,
	})
}

// ---------------- Daily digest ----------------

func (s *notificationService) RunDailyDigest() error {
	pending, err := s.notificationRepo.FindPendingByType(repositories.NotificationTypeJobMatch)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	byUser := make(map[string][]models.NotificationLog)
	for _, log := range pending {
		byUser[log.UserID] = append(byUser[log.UserID], log)
	}

	for userID, logs := range byUser {
		if err := s.sendDigest(userID, logs); err != nil {
			logger.Warn("digest delivery failed", "user_id", userID, "error", err)
		}
	}
	return nil
}

func (s *notificationService) sendDigest(userID string, logs []models.NotificationLog) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}

	// A recipient who disabled the preference after matching gets no
	// email, but the logs are retired so they are not refetched forever.
	pref := s.resolvePreference(userID, repositories.NotificationTypeJobMatch)
	if !pref.Enabled {
		ids := make([]string, 0, len(logs))
		for _, log := range logs {
			ids = append(ids, log.ID)
		}
		return s.notificationRepo.MarkDispatched(ids)
	}

	var (
		refs []email.JobRef
		ids  []string
	)
	for _, log := range logs {
		job, err := s.jobRepo.FindByID(log.JobID)
		if err != nil {
			// The job is gone; retrying will never help.
			ids = append(ids, log.ID)
			continue
		}
		// Jobs unpublished since the match, or authored by seeded fake
		// accounts, are dropped from the digest.
		if job.Status != models.JobStatusPublished {
			ids = append(ids, log.ID)
			continue
		}
		if job.Author != nil && job.Author.IsFake {
			ids = append(ids, log.ID)
			continue
		}
		refs = append(refs, email.JobRef{Title: job.Title, URL: s.jobURL(job.ID)})
		ids = append(ids, log.ID)
	}

	if len(refs) > 0 {
		rendered, err := s.renderer.Render(email.TemplateJobMatchDigest, user.Language, &email.DigestData{
			UserName: user.FirstName,
			Jobs:     refs,
		})
		if err != nil {
			return err
		}
		if err := s.sender.Send(&email.Email{
			To:       user.Email,
			Subject:  rendered.Subject,
			Body:     rendered.Text,
			HTMLBody: rendered.HTML,
		}); err != nil {
			// Leave everything undispatched so tomorrow's run retries.
			return err
		}
	}

	return s.notificationRepo.MarkDispatched(ids)
}

// ---------------- Category newsletter ----------------

func (s *notificationService) RunCategoryNewsletter(since time.Time) error {
	follows, err := s.followRepo.FindAllFollows()
	if err != nil {
		return err
	}
	if len(follows) == 0 {
		return nil
	}

	categoriesByUser := make(map[string]map[string]bool)
	var allCategoryIDs []string
	seen := make(map[string]bool)
	for _, follow := range follows {
		if categoriesByUser[follow.UserID] == nil {
			categoriesByUser[follow.UserID] = make(map[string]bool)
		}
		categoriesByUser[follow.UserID][follow.CategoryID] = true
		if !seen[follow.CategoryID] {
			seen[follow.CategoryID] = true
			allCategoryIDs = append(allCategoryIDs, follow.CategoryID)
		}
	}

	jobs, err := s.jobRepo.FindPublishedInCategoriesSince(allCategoryIDs, since)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return nil
	}

	for userID, categories := range categoriesByUser {
		var refs []email.JobRef
		for i := range jobs {
			if categories[jobs[i].CategoryID] {
				refs = append(refs, email.JobRef{Title: jobs[i].Title, URL: s.jobURL(jobs[i].ID)})
			}
		}
		if len(refs) == 0 {
			continue
		}

		pref := s.resolvePreference(userID, repositories.NotificationTypeFollowedCategories)
		if !pref.Enabled {
			continue
		}

		user, err := s.userRepo.FindByID(userID)
		if err != nil {
			logger.Warn("newsletter recipient lookup failed", "user_id", userID, "error", err)
			continue
		}

		rendered, err := s.renderer.Render(email.TemplateNewsletter, user.Language, &email.DigestData{
			UserName: user.FirstName,
			Jobs:     refs,
		})
		if err != nil {
			logger.Warn("newsletter render failed", "user_id", userID, "error", err)
			continue
		}
		if err := s.sender.Send(&email.Email{
			To:       user.Email,
			Subject:  rendered.Subject,
			Body:     rendered.Text,
			HTMLBody: rendered.HTML,
		}); err != nil {
			logger.Warn("newsletter delivery failed", "user_id", userID, "error", err)
		}
	}
	return nil
}

// ---------------- Preferences ----------------

func (s *notificationService) GetPreferences(userID string) (*dto.PreferenceListResponse, error) {
	stored, err := s.notificationRepo.FindPreferences(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	byType := make(map[string]models.NotificationPreference, len(stored))
	for _, pref := range stored {
		byType[pref.Type] = pref
	}

	resp := &dto.PreferenceListResponse{}
	for _, notificationType := range repositories.NotificationTypes {
		if pref, ok := byType[notificationType]; ok {
			resp.Preferences = append(resp.Preferences, dto.PreferenceResponse{
				Type:      pref.Type,
				Enabled:   pref.Enabled,
				Frequency: string(pref.Frequency),
			})
			continue
		}
		resp.Preferences = append(resp.Preferences, dto.PreferenceResponse{
			Type:      notificationType,
			Enabled:   true,
			Frequency: string(models.FrequencyInstant),
		})
	}
	return resp, nil
}

func (s *notificationService) UpdatePreference(userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	if !repositories.ValidNotificationType(req.Type) {
		return nil, appErrors.NewBadRequestError(fmt.Sprintf("Unknown notification type: %s", req.Type))
	}

	pref := s.resolvePreference(userID, req.Type)
	pref.UserID = userID
	pref.Type = req.Type
	if req.Enabled != nil {
		pref.Enabled = *req.Enabled
	}
	if req.Frequency != nil {
		pref.Frequency = models.NotificationFrequency(*req.Frequency)
	}

	if err := s.notificationRepo.UpsertPreference(pref); err != nil {
		return nil, appErrors.InternalError(err)
	}

	return &dto.PreferenceResponse{
		Type:      pref.Type,
		Enabled:   pref.Enabled,
		Frequency: string(pref.Frequency),
	}, nil
}

// resolvePreference returns the stored preference or the default
// (enabled, instant) when none exists.
func (s *notificationService) resolvePreference(userID, notificationType string) *models.NotificationPreference {
	pref, err := s.notificationRepo.FindPreference(userID, notificationType)
	if err != nil {
		return &models.NotificationPreference{
			UserID:    userID,
			Type:      notificationType,
			Enabled:   true,
			Frequency: models.FrequencyInstant,
		}
	}
	return pref
}

func (s *notificationService) jobURL(jobID string) string {
	return fmt.Sprintf("%s/jobs/%s", s.baseURL, jobID)
}
