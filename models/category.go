package models

import "time"

// Category is one of the four fixed death-cause groupings (illness, accident,
// suicide, assassination). The set is seeded at startup and never grows at
// runtime; persons and death causes reference it.
type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Category) TableName() string {
	return "categories"
}
