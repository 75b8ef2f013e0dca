package models

import "time"

// Profession is an occupation reference row, created on demand during import.
type Profession struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name       string    `gorm:"not null" json:"name"`
	WikidataID *string   `gorm:"index" json:"wikidata_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Profession) TableName() string {
	return "professions"
}
