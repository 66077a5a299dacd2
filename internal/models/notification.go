package models

import (
	"time"

	"gorm.io/datatypes"
)

// NotificationPreference stores a per-user delivery setting for one
// notification type. Absence of a row means enabled + instant.
type NotificationPreference struct {
	BaseModel
	UserID    string                `gorm:"not null;uniqueIndex:idx_notification_prefs_user_type"`
	Type      string                `gorm:"not null;uniqueIndex:idx_notification_prefs_user_type"`
	Enabled   bool                  `gorm:"default:true"`
	Frequency NotificationFrequency `gorm:"type:varchar(20);default:'instant'"`
}

// NotificationLog records one matching event. Rows are append-only except
// for the Dispatched flip performed by the daily digest.
type NotificationLog struct {
	BaseModel
	UserID     string         `gorm:"not null;index"`
	JobID      string         `gorm:"not null;index"`
	Type       string         `gorm:"not null;index"`
	Dispatched bool           `gorm:"default:false;index"`
	Data       datatypes.JSON `gorm:"type:jsonb"` // {"matched_skills": [...]}
}

type Proposal struct {
	BaseModel
	Token       string         `gorm:"uniqueIndex;not null"`
	Email       string         `gorm:"not null;index"`
	Reason      ProposalReason `gorm:"type:varchar(30);not null"`
	Status      ProposalStatus `gorm:"type:varchar(20);default:'pending';index"`
	JobID       string         `gorm:"not null;index"`
	RespondedAt *time.Time

	// Relations
	Job *Job `gorm:"foreignKey:JobID"`
}
