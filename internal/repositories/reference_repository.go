package repositories

import (
	"errors"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrLocationNotFound = errors.New("location not found")
)

// ReferenceRepository serves the lookup tables jobs are validated against.
type ReferenceRepository interface {
	FindCategoryByID(id string) (*models.Category, error)
	LocationExists(id string) (bool, error)
	FindSkillsByIDs(ids []string) ([]models.Skill, error)

	// FirstOrCreateSkill resolves a skill by name, creating it when new.
	// Names are deduplicated globally.
	FirstOrCreateSkill(name string) (*models.Skill, error)
}

type ReferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &ReferenceRepositoryImpl{db: db}
}

func (r *ReferenceRepositoryImpl) FindCategoryByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *ReferenceRepositoryImpl) LocationExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Location{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ReferenceRepositoryImpl) FindSkillsByIDs(ids []string) ([]models.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var skills []models.Skill
	err := r.db.Where("id IN ?", ids).Find(&skills).Error
	return skills, err
}

func (r *ReferenceRepositoryImpl) FirstOrCreateSkill(name string) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.Where("name = ?", name).FirstOrCreate(&skill, models.Skill{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}
