package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nasiloldu/backend/models"
)

// DeathCauseRepository handles database operations for DeathCause entities
type DeathCauseRepository struct {
	DB *gorm.DB
}

// NewDeathCauseRepository creates a new instance of DeathCauseRepository
func NewDeathCauseRepository(db *gorm.DB) *DeathCauseRepository {
	return &DeathCauseRepository{DB: db}
}

// GetByID retrieves a death cause by its ID with its category
func (r *DeathCauseRepository) GetByID(id uint) (*models.DeathCause, error) {
	var cause models.DeathCause
	err := r.DB.Preload("Category").First(&cause, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get death cause by ID %d: %w", id, err)
	}
	return &cause, nil
}

// GetOrCreate returns the death cause matched by Wikidata ID (or by name when
// the source carries no ID), inserting it if absent. When a re-import
// classifies an existing cause under a different category the stored category
// is corrected in place.
func (r *DeathCauseRepository) GetOrCreate(name string, categoryID uint, wikidataID *string) (*models.DeathCause, error) {
	var cause models.DeathCause
	var err error
	if wikidataID != nil && *wikidataID != "" {
		err = r.DB.Where("wikidata_id = ?", *wikidataID).First(&cause).Error
	} else {
		err = r.DB.Where("name = ?", name).First(&cause).Error
	}

	if err == nil {
		if cause.CategoryID != categoryID {
			result := r.DB.Model(&cause).Update("category_id", categoryID)
			if result.Error != nil {
				return nil, fmt.Errorf("failed to correct category of death cause %d: %w", cause.ID, result.Error)
			}
			cause.CategoryID = categoryID
		}
		return &cause, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up death cause %s: %w", name, err)
	}

	cause = models.DeathCause{Name: name, CategoryID: categoryID, WikidataID: wikidataID}
	if err := r.DB.Create(&cause).Error; err != nil {
		return nil, fmt.Errorf("failed to create death cause %s: %w", name, err)
	}
	return &cause, nil
}
