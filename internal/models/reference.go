package models

type Category struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null"`
}

type Location struct {
	BaseModel
	City    string `gorm:"not null"`
	Country string `gorm:"type:varchar(2);not null"`
}

// Skill names are deduplicated globally: attaching a new skill by name
// reuses the existing row when one exists.
type Skill struct {
	BaseModel
	Name string `gorm:"uniqueIndex;not null"`
}
