package models

import "fmt"

const (
	ProfileTypeIndividual = "individual"
	ProfileTypeAgency     = "agency"
)

type User struct {
	BaseModel
	Email        string      `gorm:"uniqueIndex;not null"`
	PasswordHash string      `gorm:"not null"`
	AccountType  AccountType `gorm:"type:varchar(20);not null"`
	FirstName    string
	LastName     string
	CompanyName  string
	Language     string `gorm:"type:varchar(5);default:'en'"`

	// IsFake marks auto-generated accounts (AI-seeded content). Fake
	// accounts never participate in notification matching.
	IsFake bool `gorm:"default:false"`

	// Relations
	Skills []Skill `gorm:"many2many:user_skills"`
}

// ProfileType derives the applicant category from profile data.
func (u *User) ProfileType() string {
	if u.CompanyName != "" {
		return ProfileTypeAgency
	}
	return ProfileTypeIndividual
}

// ShortName returns "First L." or an empty string when no name is set.
func (u *User) ShortName() string {
	if u.FirstName == "" {
		return ""
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return fmt.Sprintf("%s %c.", u.FirstName, []rune(u.LastName)[0])
}
