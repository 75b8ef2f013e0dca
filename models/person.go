package models

import "time"

// Person is a catalogued deceased public figure. The Wikidata QID is the sole
// de-duplication anchor across all import paths; birth/death dates are kept as
// ISO date strings where nil means unknown rather than invalid.
type Person struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	WikidataID    string  `gorm:"uniqueIndex;not null" json:"wikidata_id"`
	Slug          string  `gorm:"uniqueIndex;not null" json:"slug"`
	Name          string  `gorm:"not null" json:"name"`
	SearchName    string  `gorm:"index" json:"-"` // lowercased, diacritics folded
	BirthDate     *string `json:"birth_date,omitempty"`
	DeathDate     *string `json:"death_date,omitempty"`
	BirthPlace    *string `json:"birth_place,omitempty"`
	DeathPlace    *string `json:"death_place,omitempty"`
	DeathCauseRaw *string `json:"death_cause_raw,omitempty"` // free text from the source
	Nationality   *string `json:"nationality,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	WikipediaURL  *string `json:"wikipedia_url,omitempty"`
	Description   *string `json:"description,omitempty"`
	ProfessionID  uint    `gorm:"not null;index" json:"profession_id"`
	CountryID     uint    `gorm:"not null;index" json:"country_id"`
	DeathCauseID  *uint   `gorm:"index" json:"death_cause_id,omitempty"`
	CategoryID    uint    `gorm:"not null;index" json:"category_id"`
	ViewCount     int64   `gorm:"not null;default:0" json:"view_count"`
	IsApproved    bool    `gorm:"not null;default:true" json:"is_approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships, eagerly preloaded by every repository read so callers
	// never see a bare person needing a second round trip
	Profession *Profession `gorm:"foreignKey:ProfessionID" json:"profession,omitempty"`
	Country    *Country    `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	DeathCause *DeathCause `gorm:"foreignKey:DeathCauseID" json:"death_cause,omitempty"`
	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "persons"
}
