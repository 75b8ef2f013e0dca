package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/utils"
)

// CountryRepository handles database operations for Country entities
type CountryRepository struct {
	DB *gorm.DB
}

// NewCountryRepository creates a new instance of CountryRepository
func NewCountryRepository(db *gorm.DB) *CountryRepository {
	return &CountryRepository{DB: db}
}

// ListAll retrieves all countries ordered by name
func (r *CountryRepository) ListAll() ([]models.Country, error) {
	var countries []models.Country
	if err := r.DB.Order("name ASC").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// GetBySlug retrieves a country by its slug
func (r *CountryRepository) GetBySlug(slug string) (*models.Country, error) {
	var country models.Country
	err := r.DB.Where("slug = ?", slug).First(&country).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get country by slug %s: %w", slug, err)
	}
	return &country, nil
}

// GetByID retrieves a country by its ID
func (r *CountryRepository) GetByID(id uint) (*models.Country, error) {
	var country models.Country
	err := r.DB.First(&country, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get country by ID %d: %w", id, err)
	}
	return &country, nil
}

// GetOrCreate returns the country whose slug derives from name, inserting it
// first if absent. Only called from single-process import flows; it is a plain
// check-then-insert with no advisory lock.
func (r *CountryRepository) GetOrCreate(name string, wikidataID *string) (*models.Country, error) {
	slug := utils.Slugify(name)

	var country models.Country
	err := r.DB.Where("slug = ?", slug).First(&country).Error
	if err == nil {
		return &country, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up country %s: %w", slug, err)
	}

	country = models.Country{Slug: slug, Name: name, WikidataID: wikidataID}
	if err := r.DB.Create(&country).Error; err != nil {
		return nil, fmt.Errorf("failed to create country %s: %w", name, err)
	}
	return &country, nil
}
