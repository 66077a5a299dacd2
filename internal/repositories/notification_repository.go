package repositories

import (
	"errors"

	"gigwork_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPreferenceNotFound = errors.New("notification preference not found")

// Notification type constants
const (
	NotificationTypeJobMatch           = "job_match"
	NotificationTypeNewApplication     = "new_application"
	NotificationTypeFollowedCategories = "followed_categories"
)

// NotificationTypes lists every known type, in presentation order.
var NotificationTypes = []string{
	NotificationTypeJobMatch,
	NotificationTypeNewApplication,
	NotificationTypeFollowedCategories,
}

// ValidNotificationType reports whether the type is known.
func ValidNotificationType(notificationType string) bool {
	switch notificationType {
	case NotificationTypeJobMatch, NotificationTypeNewApplication, NotificationTypeFollowedCategories:
		return true
	}
	return false
}

type NotificationRepository interface {
	// Log operations
	CreateLog(log *models.NotificationLog) error
	FindPendingByType(notificationType string) ([]models.NotificationLog, error)
	MarkDispatched(ids []string) error

	// Preference operations
	FindPreference(userID, notificationType string) (*models.NotificationPreference, error)
	FindPreferences(userID string) ([]models.NotificationPreference, error)
	UpsertPreference(pref *models.NotificationPreference) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// ---------------- Log operations ----------------

func (r *NotificationRepositoryImpl) CreateLog(log *models.NotificationLog) error {
	return r.db.Create(log).Error
}

func (r *NotificationRepositoryImpl) FindPendingByType(notificationType string) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := r.db.
		Where("type = ? AND dispatched = ?", notificationType, false).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

func (r *NotificationRepositoryImpl) MarkDispatched(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.NotificationLog{}).
		Where("id IN ?", ids).
		Update("dispatched", true).Error
}

// ---------------- Preference operations ----------------

func (r *NotificationRepositoryImpl) FindPreference(userID, notificationType string) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	err := r.db.First(&pref, "user_id = ? AND type = ?", userID, notificationType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, err
	}
	return &pref, nil
}

func (r *NotificationRepositoryImpl) FindPreferences(userID string) ([]models.NotificationPreference, error) {
	var prefs []models.NotificationPreference
	err := r.db.Where("user_id = ?", userID).Find(&prefs).Error
	return prefs, err
}

func (r *NotificationRepositoryImpl) UpsertPreference(pref *models.NotificationPreference) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled", "frequency", "updated_at"}),
	}).Create(pref).Error
}
