package models

import "time"

// Country is a nationality reference row. Rows are created on demand during
// import when a person's country is not yet known locally.
type Country struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug       string    `gorm:"uniqueIndex;not null" json:"slug"`
	Name       string    `gorm:"not null" json:"name"`
	WikidataID *string   `gorm:"index" json:"wikidata_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName explicitly sets the table name for GORM.
func (Country) TableName() string {
	return "countries"
}
