package repositories

import (
	"gigwork_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository manages category follows and job favorites. Both are
// unique pairs enforced with upsert semantics.
type FollowRepository interface {
	UpsertFollow(follow *models.CategoryFollow) error
	DeleteFollow(userID, categoryID string) error
	FindFollowsByUser(userID string) ([]models.CategoryFollow, error)
	FindAllFollows() ([]models.CategoryFollow, error)

	UpsertFavorite(favorite *models.Favorite) error
	DeleteFavorite(userID, jobID string) error
	FindFavoritesByUser(userID string) ([]models.Favorite, error)
}

type FollowRepositoryImpl struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &FollowRepositoryImpl{db: db}
}

// ---------------- Category follows ----------------

func (r *FollowRepositoryImpl) UpsertFollow(follow *models.CategoryFollow) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoNothing: true,
	}).Create(follow).Error
}

func (r *FollowRepositoryImpl) DeleteFollow(userID, categoryID string) error {
	return r.db.Delete(&models.CategoryFollow{}, "user_id = ? AND category_id = ?", userID, categoryID).Error
}

func (r *FollowRepositoryImpl) FindFollowsByUser(userID string) ([]models.CategoryFollow, error) {
	var follows []models.CategoryFollow
	err := r.db.Where("user_id = ?", userID).Find(&follows).Error
	return follows, err
}

func (r *FollowRepositoryImpl) FindAllFollows() ([]models.CategoryFollow, error) {
	var follows []models.CategoryFollow
	err := r.db.Find(&follows).Error
	return follows, err
}

// ---------------- Favorites ----------------

func (r *FollowRepositoryImpl) UpsertFavorite(favorite *models.Favorite) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
		DoNothing: true,
	}).Create(favorite).Error
}

func (r *FollowRepositoryImpl) DeleteFavorite(userID, jobID string) error {
	return r.db.Delete(&models.Favorite{}, "user_id = ? AND job_id = ?", userID, jobID).Error
}

func (r *FollowRepositoryImpl) FindFavoritesByUser(userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites).Error
	return favorites, err
}
