package services

import (
	"fmt"
	"sync"
	"time"

	"gigwork_backend/internal/models"
	"gigwork_backend/internal/pkg/email"
	"gigwork_backend/internal/repositories"
)

// In-memory fakes for the repository and notifier interfaces. Each fake
// keeps just enough behavior (unique constraints, upsert semantics,
// conditional updates) for the service rules to be observable.

// ---------------- users ----------------

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	seq       int
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(address string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == address {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, err := r.FindByEmail(user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	r.add(user)
	return nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) FindFreelancersWithSkills(skillIDs []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(skillIDs))
	for _, id := range skillIDs {
		wanted[id] = true
	}

	var out []models.User
	for _, user := range r.users {
		if user.AccountType != models.AccountTypeFreelancer || user.IsFake {
			continue
		}
		for _, skill := range user.Skills {
			if wanted[skill.ID] {
				out = append(out, *user)
				break
			}
		}
	}
	return out, nil
}

// ---------------- jobs ----------------

type fakeJobRepo struct {
	mu      sync.Mutex
	jobs    map[string]*models.Job
	seq     int
	saveErr error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) Create(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job.ID == "" {
		r.seq++
		job.ID = fmt.Sprintf("job-%d", r.seq)
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (r *fakeJobRepo) FindByPreviewHash(hash string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.PreviewHash != nil && *job.PreviewHash == hash {
			copied := *job
			return &copied, nil
		}
	}
	return nil, repositories.ErrJobNotFound
}

func (r *fakeJobRepo) Save(job *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *job
	r.jobs[job.ID] = &copied
	return nil
}

func (r *fakeJobRepo) ReplaceSkills(job *models.Job, skills []models.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.Skills = skills
	if stored, ok := r.jobs[job.ID]; ok {
		stored.Skills = skills
	}
	return nil
}

func (r *fakeJobRepo) ListByAuthor(authorID string) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.jobs {
		if job.AuthorID != nil && *job.AuthorID == authorID {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) ListPublished(limit, offset int) ([]models.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Job
	for _, job := range r.jobs {
		if job.Status == models.JobStatusPublished {
			out = append(out, *job)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeJobRepo) FindPublishedInCategoriesSince(categoryIDs []string, since time.Time) ([]models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		wanted[id] = true
	}

	var out []models.Job
	for _, job := range r.jobs {
		if job.Status != models.JobStatusPublished || !wanted[job.CategoryID] {
			continue
		}
		if job.PublishedAt == nil || job.PublishedAt.Before(since) {
			continue
		}
		if job.Author != nil && job.Author.IsFake {
			continue
		}
		out = append(out, *job)
	}
	return out, nil
}

func (r *fakeJobRepo) FindOldestSeededDraft() (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var oldest *models.Job
	for _, job := range r.jobs {
		if job.Status != models.JobStatusDraft || job.Author == nil || !job.Author.IsFake {
			continue
		}
		if oldest == nil || job.CreatedAt.Before(oldest.CreatedAt) {
			oldest = job
		}
	}
	if oldest == nil {
		return nil, repositories.ErrJobNotFound
	}
	copied := *oldest
	return &copied, nil
}

// ---------------- references ----------------

type fakeReferenceRepo struct {
	categories map[string]*models.Category
	locations  map[string]bool
	skills     map[string]*models.Skill // by id
}

func newFakeReferenceRepo() *fakeReferenceRepo {
	return &fakeReferenceRepo{
		categories: make(map[string]*models.Category),
		locations:  make(map[string]bool),
		skills:     make(map[string]*models.Skill),
	}
}

func (r *fakeReferenceRepo) addCategory(id string) {
	r.categories[id] = &models.Category{BaseModel: models.BaseModel{ID: id}, Name: id}
}

func (r *fakeReferenceRepo) addSkill(id, name string) models.Skill {
	skill := &models.Skill{BaseModel: models.BaseModel{ID: id}, Name: name}
	r.skills[id] = skill
	return *skill
}

func (r *fakeReferenceRepo) FindCategoryByID(id string) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeReferenceRepo) LocationExists(id string) (bool, error) {
	return r.locations[id], nil
}

func (r *fakeReferenceRepo) FindSkillsByIDs(ids []string) ([]models.Skill, error) {
	var out []models.Skill
	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if skill, ok := r.skills[id]; ok {
			out = append(out, *skill)
		}
	}
	return out, nil
}

func (r *fakeReferenceRepo) FirstOrCreateSkill(name string) (*models.Skill, error) {
	for _, skill := range r.skills {
		if skill.Name == name {
			return skill, nil
		}
	}
	skill := &models.Skill{BaseModel: models.BaseModel{ID: "skill-" + name}, Name: name}
	r.skills[skill.ID] = skill
	return skill, nil
}

// ---------------- applications ----------------

type fakeApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]*models.Application // key jobID+"|"+freelancerID
	seq          int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[string]*models.Application)}
}

func applicationKey(jobID, freelancerID string) string {
	return jobID + "|" + freelancerID
}

func (r *fakeApplicationRepo) Upsert(application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := applicationKey(application.JobID, application.FreelancerID)
	if existing, ok := r.applications[key]; ok {
		existing.Message = application.Message
		return nil
	}
	r.seq++
	application.ID = fmt.Sprintf("application-%d", r.seq)
	copied := *application
	r.applications[key] = &copied
	return nil
}

func (r *fakeApplicationRepo) FindByJobAndFreelancer(jobID, freelancerID string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.applications[applicationKey(jobID, freelancerID)]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	copied := *application
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByJob(jobID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, application := range r.applications {
		if application.JobID == jobID {
			out = append(out, *application)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) CountByJob(jobID string) (int64, error) {
	applications, _ := r.FindByJob(jobID)
	return int64(len(applications)), nil
}

// ---------------- notifications ----------------

type fakeNotificationRepo struct {
	mu          sync.Mutex
	logs        []*models.NotificationLog
	preferences map[string]*models.NotificationPreference // key userID+"|"+type
	seq         int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{preferences: make(map[string]*models.NotificationPreference)}
}

func (r *fakeNotificationRepo) CreateLog(log *models.NotificationLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	log.ID = fmt.Sprintf("log-%d", r.seq)
	copied := *log
	r.logs = append(r.logs, &copied)
	return nil
}

func (r *fakeNotificationRepo) FindPendingByType(notificationType string) ([]models.NotificationLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.NotificationLog
	for _, log := range r.logs {
		if log.Type == notificationType && !log.Dispatched {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkDispatched(ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	for _, log := range r.logs {
		if wanted[log.ID] {
			log.Dispatched = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) FindPreference(userID, notificationType string) (*models.NotificationPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pref, ok := r.preferences[userID+"|"+notificationType]
	if !ok {
		return nil, repositories.ErrPreferenceNotFound
	}
	copied := *pref
	return &copied, nil
}

func (r *fakeNotificationRepo) FindPreferences(userID string) ([]models.NotificationPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.NotificationPreference
	for _, pref := range r.preferences {
		if pref.UserID == userID {
			out = append(out, *pref)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) UpsertPreference(pref *models.NotificationPreference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *pref
	r.preferences[pref.UserID+"|"+pref.Type] = &copied
	return nil
}

func (r *fakeNotificationRepo) logsFor(userID string) []*models.NotificationLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.NotificationLog
	for _, log := range r.logs {
		if log.UserID == userID {
			out = append(out, log)
		}
	}
	return out
}

// ---------------- proposals ----------------

type fakeProposalRepo struct {
	mu        sync.Mutex
	proposals map[string]*models.Proposal
	jobRepo   *fakeJobRepo
	seq       int
}

func newFakeProposalRepo(jobRepo *fakeJobRepo) *fakeProposalRepo {
	return &fakeProposalRepo{proposals: make(map[string]*models.Proposal), jobRepo: jobRepo}
}

func (r *fakeProposalRepo) Create(proposal *models.Proposal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	proposal.ID = fmt.Sprintf("proposal-%d", r.seq)
	copied := *proposal
	r.proposals[proposal.ID] = &copied
	return nil
}

func (r *fakeProposalRepo) FindByToken(token string) (*models.Proposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, proposal := range r.proposals {
		if proposal.Token == token {
			copied := *proposal
			if job, err := r.jobRepo.FindByID(proposal.JobID); err == nil {
				copied.Job = job
			}
			return &copied, nil
		}
	}
	return nil, repositories.ErrProposalNotFound
}

func (r *fakeProposalRepo) List(limit, offset int) ([]models.Proposal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Proposal
	for _, proposal := range r.proposals {
		copied := *proposal
		if job, err := r.jobRepo.FindByID(proposal.JobID); err == nil {
			copied.Job = job
		}
		out = append(out, copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProposalRepo) MarkResponded(id string, status models.ProposalStatus, respondedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	proposal, ok := r.proposals[id]
	if !ok || proposal.Status != models.ProposalStatusPending {
		return false, nil
	}
	proposal.Status = status
	proposal.RespondedAt = &respondedAt
	return true, nil
}

// ---------------- follows ----------------

type fakeFollowRepo struct {
	mu        sync.Mutex
	follows   map[string]models.CategoryFollow // key userID+"|"+categoryID
	favorites map[string]models.Favorite       // key userID+"|"+jobID
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{
		follows:   make(map[string]models.CategoryFollow),
		favorites: make(map[string]models.Favorite),
	}
}

func (r *fakeFollowRepo) UpsertFollow(follow *models.CategoryFollow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.follows[follow.UserID+"|"+follow.CategoryID] = *follow
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(userID, categoryID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.follows, userID+"|"+categoryID)
	return nil
}

func (r *fakeFollowRepo) FindFollowsByUser(userID string) ([]models.CategoryFollow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CategoryFollow
	for _, follow := range r.follows {
		if follow.UserID == userID {
			out = append(out, follow)
		}
	}
	return out, nil
}

func (r *fakeFollowRepo) FindAllFollows() ([]models.CategoryFollow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CategoryFollow
	for _, follow := range r.follows {
		out = append(out, follow)
	}
	return out, nil
}

func (r *fakeFollowRepo) UpsertFavorite(favorite *models.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites[favorite.UserID+"|"+favorite.JobID] = *favorite
	return nil
}

func (r *fakeFollowRepo) DeleteFavorite(userID, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.favorites, userID+"|"+jobID)
	return nil
}

func (r *fakeFollowRepo) FindFavoritesByUser(userID string) ([]models.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Favorite
	for _, favorite := range r.favorites {
		if favorite.UserID == userID {
			out = append(out, favorite)
		}
	}
	return out, nil
}

// ---------------- sender ----------------

type fakeSender struct {
	mu   sync.Mutex
	sent []*email.Email
	fail bool
}

func (s *fakeSender) Send(mail *email.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("smtp unavailable")
	}
	s.sent = append(s.sent, mail)
	return nil
}

func (s *fakeSender) IsConfigured() bool { return true }

func (s *fakeSender) sentTo(address string) []*email.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*email.Email
	for _, mail := range s.sent {
		if mail.To == address {
			out = append(out, mail)
		}
	}
	return out
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
