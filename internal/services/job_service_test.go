package services

import (
	"testing"
	"time"

	"gigwork_backend/internal/appErrors"
	"gigwork_backend/internal/models"
	"gigwork_backend/internal/pkg/email"
	"gigwork_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	jobService          *jobService
	applicationService  *applicationService
	notificationService NotificationService
	proposalService     *proposalService

	jobs         *fakeJobRepo
	users        *fakeUserRepo
	refs         *fakeReferenceRepo
	applications *fakeApplicationRepo
	notes        *fakeNotificationRepo
	proposals    *fakeProposalRepo
	follows      *fakeFollowRepo
	sender       *fakeSender

	now time.Time

	admin      *models.User
	client     *models.User
	freelancer *models.User
	goSkill    models.Skill
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		jobs:         newFakeJobRepo(),
		users:        newFakeUserRepo(),
		refs:         newFakeReferenceRepo(),
		applications: newFakeApplicationRepo(),
		notes:        newFakeNotificationRepo(),
		follows:      newFakeFollowRepo(),
		sender:       &fakeSender{},
		now:          time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
	f.proposals = newFakeProposalRepo(f.jobs)

	renderer, err := email.NewRenderer()
	require.NoError(t, err)

	f.notificationService = NewNotificationService(
		f.notes, f.users, f.jobs, f.follows, f.sender, renderer, "http://test")

	f.jobService = NewJobService(f.jobs, f.users, f.refs, f.notificationService).(*jobService)
	f.jobService.nowFunc = func() time.Time { return f.now }

	f.applicationService = NewApplicationService(
		f.applications, f.jobs, f.users, f.notificationService).(*applicationService)
	f.applicationService.nowFunc = func() time.Time { return f.now }

	f.proposalService = NewProposalService(
		f.proposals, f.users, f.jobService, f.sender, renderer, "http://test").(*proposalService)
	f.proposalService.nowFunc = func() time.Time { return f.now }

	f.refs.addCategory("cat-design")
	f.goSkill = f.refs.addSkill("skill-go", "Go")

	f.admin = f.users.add(&models.User{
		Email:       "admin@test.io",
		AccountType: models.AccountTypeAdmin,
		Language:    "en",
	})
	f.client = f.users.add(&models.User{
		Email:       "client@test.io",
		AccountType: models.AccountTypeClient,
		FirstName:   "Clara",
		LastName:    "Klein",
		Language:    "en",
	})
	f.freelancer = f.users.add(&models.User{
		Email:       "dev@test.io",
		AccountType: models.AccountTypeFreelancer,
		FirstName:   "Filip",
		LastName:    "Nowak",
		Language:    "en",
		Skills:      []models.Skill{f.goSkill},
	})

	return f
}

func (f *fixture) createJobRequest() *dto.CreateJobRequest {
	offerDays := 14
	return &dto.CreateJobRequest{
		Title:       "Backend developer needed",
		Description: "Build an API",
		CategoryID:  "cat-design",
		Language:    "en",
		SkillIDs:    []string{f.goSkill.ID},
		OfferDays:   &offerDays,
	}
}

func (f *fixture) createDraft(t *testing.T) *dto.JobResponse {
	t.Helper()
	resp, err := f.jobService.CreateDraft(f.client.ID, f.createJobRequest())
	require.NoError(t, err)
	return resp
}

func (f *fixture) publish(t *testing.T, jobID string) {
	t.Helper()
	require.NoError(t, f.jobService.Publish(jobID, f.admin.ID))
}

// ---------------- Drafts ----------------

func TestCreateDraftComputesDeadlineFromOfferDays(t *testing.T) {
	f := newFixture(t)

	resp := f.createDraft(t)

	assert.Equal(t, string(models.JobStatusDraft), resp.Status)
	require.NotNil(t, resp.Deadline)
	assert.Equal(t, f.now.AddDate(0, 0, 14), *resp.Deadline)
}

func TestCreateDraftRejectsInvalidOfferDays(t *testing.T) {
	f := newFixture(t)

	req := f.createJobRequest()
	badDays := 9
	req.OfferDays = &badDays

	_, err := f.jobService.CreateDraft(f.client.ID, req)
	assert.ErrorIs(t, err, appErrors.ErrInvalidOfferDays)
}

func TestCreateDraftRejectsInvalidExpectedOffers(t *testing.T) {
	f := newFixture(t)

	req := f.createJobRequest()
	bad := 7
	req.ExpectedOffers = &bad

	_, err := f.jobService.CreateDraft(f.client.ID, req)
	assert.ErrorIs(t, err, appErrors.ErrInvalidExpectedOffers)
}

func TestCreateDraftRejectsUnknownCategory(t *testing.T) {
	f := newFixture(t)

	req := f.createJobRequest()
	req.CategoryID = "cat-missing"

	_, err := f.jobService.CreateDraft(f.client.ID, req)
	assert.ErrorIs(t, err, appErrors.ErrUnknownCategory)
}

func TestCreateDraftForbiddenForFreelancers(t *testing.T) {
	f := newFixture(t)

	_, err := f.jobService.CreateDraft(f.freelancer.ID, f.createJobRequest())
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)
}

func TestCreateDraftDeduplicatesNewSkillsByName(t *testing.T) {
	f := newFixture(t)

	req := f.createJobRequest()
	req.NewSkills = []string{"Go", "Kubernetes", " Kubernetes ", ""}

	resp, err := f.jobService.CreateDraft(f.client.ID, req)
	require.NoError(t, err)

	names := make([]string, 0, len(resp.Skills))
	for _, s := range resp.Skills {
		names = append(names, s.Name)
	}
	assert.ElementsMatch(t, []string{"Go", "Kubernetes"}, names)
}

func TestCreateOwnerlessDraftGetsPreviewHash(t *testing.T) {
	f := newFixture(t)

	job, err := f.jobService.CreateOwnerlessDraft(f.createJobRequest())
	require.NoError(t, err)

	assert.Nil(t, job.AuthorID)
	require.NotNil(t, job.PreviewHash)
	assert.Len(t, *job.PreviewHash, 64)
}

// ---------------- State machine ----------------

func TestPublishRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)

	err := f.jobService.Publish(draft.ID, f.client.ID)
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)
}

func TestPublishOnlyFromDraft(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)
	f.publish(t, draft.ID)

	err := f.jobService.Publish(draft.ID, f.admin.ID)
	assert.ErrorIs(t, err, appErrors.ErrJobNotDraft)
}

func TestPublishSetsPublishedAt(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)

	f.publish(t, draft.ID)

	job, err := f.jobs.FindByID(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPublished, job.Status)
	require.NotNil(t, job.PublishedAt)
	assert.Equal(t, f.now, *job.PublishedAt)
}

func TestRejectOnlyFromDraftAndStoresReason(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)

	require.NoError(t, f.jobService.Reject(draft.ID, f.admin.ID, "too vague"))

	job, err := f.jobs.FindByID(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusRejected, job.Status)
	assert.Equal(t, "too vague", job.RejectionReason)

	err = f.jobService.Reject(draft.ID, f.admin.ID, "again")
	assert.ErrorIs(t, err, appErrors.ErrJobNotDraft)
}

func TestUpdateRejectedJobReturnsToDraft(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)
	require.NoError(t, f.jobService.Reject(draft.ID, f.admin.ID, "too vague"))

	title := "Backend developer, revised"
	resp, err := f.jobService.Update(draft.ID, f.client.ID, &dto.UpdateJobRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, string(models.JobStatusDraft), resp.Status)
	assert.Equal(t, title, resp.Title)
}

func TestUpdatePublishedJobForcesRemoderation(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)
	f.publish(t, draft.ID)

	description := "New scope"
	resp, err := f.jobService.Update(draft.ID, f.client.ID, &dto.UpdateJobRequest{Description: &description})
	require.NoError(t, err)

	assert.Equal(t, string(models.JobStatusDraft), resp.Status)
}

func TestUpdateAnchorsDeadlineToCreationTime(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)
	createdAt := f.now

	// A week passes before the owner changes the offer window.
	f.now = f.now.AddDate(0, 0, 7)

	offerDays := 30
	resp, err := f.jobService.Update(draft.ID, f.client.ID, &dto.UpdateJobRequest{OfferDays: &offerDays})
	require.NoError(t, err)

	require.NotNil(t, resp.Deadline)
	assert.Equal(t, createdAt.AddDate(0, 0, 30), *resp.Deadline)
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)

	other := f.users.add(&models.User{
		Email:       "other@test.io",
		AccountType: models.AccountTypeClient,
	})

	title := "hijack"
	_, err := f.jobService.Update(draft.ID, other.ID, &dto.UpdateJobRequest{Title: &title})
	assert.ErrorIs(t, err, appErrors.ErrInsufficientPermissions)
}

func TestCloseTransitions(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)

	// Drafts cannot be closed.
	err := f.jobService.Close(draft.ID, f.client.ID)
	assert.ErrorIs(t, err, appErrors.ErrJobNotClosable)

	f.publish(t, draft.ID)
	require.NoError(t, f.jobService.Close(draft.ID, f.client.ID))

	job, err := f.jobs.FindByID(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, job.Status)
	require.NotNil(t, job.ClosedAt)

	// Closing twice is a conflict, not a no-op.
	err = f.jobService.Close(draft.ID, f.client.ID)
	assert.ErrorIs(t, err, appErrors.ErrJobAlreadyClosed)
}

// ---------------- Visibility ----------------

func TestDraftHiddenFromNonOwners(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)

	_, err := f.jobService.GetJob(draft.ID, f.freelancer.ID)
	assert.ErrorIs(t, err, appErrors.ErrJobNotFound)

	_, err = f.jobService.GetJob(draft.ID, "")
	assert.ErrorIs(t, err, appErrors.ErrJobNotFound)

	resp, err := f.jobService.GetJob(draft.ID, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, resp.ID)

	// Admins see everything.
	_, err = f.jobService.GetJob(draft.ID, f.admin.ID)
	assert.NoError(t, err)
}

func TestRejectionReasonVisibleToOwnerOnly(t *testing.T) {
	f := newFixture(t)
	draft := f.createDraft(t)
	require.NoError(t, f.jobService.Reject(draft.ID, f.admin.ID, "too vague"))

	resp, err := f.jobService.GetJob(draft.ID, f.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "too vague", resp.RejectionReason)
}

func TestPreviewHidesRateData(t *testing.T) {
	f := newFixture(t)

	req := f.createJobRequest()
	rate := 85.0
	req.Rate = &rate
	req.Currency = "EUR"

	job, err := f.jobService.CreateOwnerlessDraft(req)
	require.NoError(t, err)

	resp, err := f.jobService.GetPreview(*job.PreviewHash)
	require.NoError(t, err)

	assert.Equal(t, job.Title, resp.Title)
	assert.Nil(t, resp.Rate)
	assert.Empty(t, resp.Currency)
	assert.Empty(t, resp.BillingType)
	assert.Nil(t, resp.AuthorID)
}

func TestPreviewUnknownHash(t *testing.T) {
	f := newFixture(t)

	_, err := f.jobService.GetPreview("no-such-hash")
	assert.ErrorIs(t, err, appErrors.ErrJobNotFound)
}
