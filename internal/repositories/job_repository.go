package repositories

import (
	"errors"
	"time"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	FindByPreviewHash(hash string) (*models.Job, error)
	Save(job *models.Job) error
	ReplaceSkills(job *models.Job, skills []models.Skill) error
	ListByAuthor(authorID string) ([]models.Job, error)
	ListPublished(limit, offset int) ([]models.Job, int64, error)

	// FindPublishedInCategoriesSince returns jobs published within the
	// window in the given categories, excluding jobs owned by fake
	// accounts.
	FindPublishedInCategoriesSince(categoryIDs []string, since time.Time) ([]models.Job, error)

	// FindOldestSeededDraft returns the oldest draft authored by a fake
	// account, used by the content scheduler.
	FindOldestSeededDraft() (*models.Job, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Skills").Preload("Author").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByPreviewHash(hash string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Skills").First(&job, "preview_hash = ?", hash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Save(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepositoryImpl) ReplaceSkills(job *models.Job, skills []models.Skill) error {
	if err := r.db.Model(job).Association("Skills").Replace(skills); err != nil {
		return err
	}
	job.Skills = skills
	return nil
}

func (r *JobRepositoryImpl) ListByAuthor(authorID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Preload("Skills").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) ListPublished(limit, offset int) ([]models.Job, int64, error) {
	var jobs []models.Job
	var total int64

	query := r.db.Model(&models.Job{}).Where("status = ?", models.JobStatusPublished)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Skills").
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) FindOldestSeededDraft() (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("Skills").Preload("Author").
		Joins("JOIN users ON users.id = jobs.author_id AND users.is_fake = ?", true).
		Where("jobs.status = ?", models.JobStatusDraft).
		Order("jobs.created_at ASC").
		First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindPublishedInCategoriesSince(categoryIDs []string, since time.Time) ([]models.Job, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var jobs []models.Job
	err := r.db.
		Joins("JOIN users ON users.id = jobs.author_id AND users.is_fake = ?", false).
		Where("jobs.status = ?", models.JobStatusPublished).
		Where("jobs.category_id IN ?", categoryIDs).
		Where("jobs.published_at >= ?", since).
		Order("jobs.published_at DESC").
		Find(&jobs).Error
	return jobs, err
}
