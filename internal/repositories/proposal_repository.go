package repositories

import (
	"errors"
	"time"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProposalNotFound = errors.New("proposal not found")

type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	FindByToken(token string) (*models.Proposal, error)
	List(limit, offset int) ([]models.Proposal, int64, error)

	// MarkResponded flips the proposal out of pending with a single
	// conditional update. It returns false when the row was no longer
	// pending, which closes the double-submission race: of two
	// concurrent accepts, exactly one sees true.
	MarkResponded(id string, status models.ProposalStatus, respondedAt time.Time) (bool, error)
}

type ProposalRepositoryImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &ProposalRepositoryImpl{db: db}
}

func (r *ProposalRepositoryImpl) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

func (r *ProposalRepositoryImpl) FindByToken(token string) (*models.Proposal, error) {
	var proposal models.Proposal
	err := r.db.Preload("Job").Preload("Job.Skills").First(&proposal, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepositoryImpl) List(limit, offset int) ([]models.Proposal, int64, error) {
	var proposals []models.Proposal
	var total int64

	if err := r.db.Model(&models.Proposal{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Job").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&proposals).Error
	return proposals, total, err
}

func (r *ProposalRepositoryImpl) MarkResponded(id string, status models.ProposalStatus, respondedAt time.Time) (bool, error) {
	result := r.db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", id, models.ProposalStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
