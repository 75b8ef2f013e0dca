package models

import "time"

// DeathCause is a named cause of death belonging to exactly one category.
// The category is derived from the cause text at import time and may be
// corrected later if a re-import classifies the same cause differently.
type DeathCause struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	WikidataID *string   `gorm:"uniqueIndex" json:"wikidata_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (DeathCause) TableName() string {
	return "death_causes"
}
