package models

// CategoryFollow subscribes a user to a category's daily newsletter.
type CategoryFollow struct {
	BaseModel
	UserID     string `gorm:"not null;uniqueIndex:idx_category_follows_user_category"`
	CategoryID string `gorm:"not null;uniqueIndex:idx_category_follows_user_category"`
}

type Favorite struct {
	BaseModel
	UserID string `gorm:"not null;uniqueIndex:idx_favorites_user_job"`
	JobID  string `gorm:"not null;uniqueIndex:idx_favorites_user_job"`
}
