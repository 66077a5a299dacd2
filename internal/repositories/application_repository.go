package repositories

import (
	"errors"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	// Upsert creates the application or, when the (job, freelancer) pair
	// already exists, updates the stored message. Concurrent duplicate
	// requests converge to one row.
	Upsert(application *models.Application) error

	FindByJobAndFreelancer(jobID, freelancerID string) (*models.Application, error)
	FindByJob(jobID string) ([]models.Application, error)
	CountByJob(jobID string) (int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Upsert(application *models.Application) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}, {Name: "freelancer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"message", "updated_at"}),
	}).Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByJobAndFreelancer(jobID, freelancerID string) (*models.Application, error) {
	var application models.Application
	err := r.db.First(&application, "job_id = ? AND freelancer_id = ?", jobID, freelancerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJob(jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Freelancer").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) CountByJob(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
