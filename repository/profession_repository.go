package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/utils"
)

// ProfessionRepository handles database operations for Profession entities
type ProfessionRepository struct {
	DB *gorm.DB
}

// NewProfessionRepository creates a new instance of ProfessionRepository
func NewProfessionRepository(db *gorm.DB) *ProfessionRepository {
	return &ProfessionRepository{DB: db}
}

// ListAll retrieves all professions ordered by name
func (r *ProfessionRepository) ListAll() ([]models.Profession, error) {
	var professions []models.Profession
	if err := r.DB.Order("name ASC").Find(&professions).Error; err != nil {
		return nil, fmt.Errorf("failed to list professions: %w", err)
	}
	return professions, nil
}

// GetBySlug retrieves a profession by its slug
func (r *ProfessionRepository) GetBySlug(slug string) (*models.Profession, error) {
	var profession models.Profession
	err := r.DB.Where("slug = ?", slug).First(&profession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profession by slug %s: %w", slug, err)
	}
	return &profession, nil
}

// GetByID retrieves a profession by its ID
func (r *ProfessionRepository) GetByID(id uint) (*models.Profession, error) {
	var profession models.Profession
	err := r.DB.First(&profession, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profession by ID %d: %w", id, err)
	}
	return &profession, nil
}

// GetOrCreate returns the profession whose slug derives from name, inserting
// it first if absent.
func (r *ProfessionRepository) GetOrCreate(name string, wikidataID *string) (*models.Profession, error) {
	slug := utils.Slugify(name)

	var profession models.Profession
	err := r.DB.Where("slug = ?", slug).First(&profession).Error
	if err == nil {
		return &profession, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up profession %s: %w", slug, err)
	}

	profession = models.Profession{Slug: slug, Name: name, WikidataID: wikidataID}
	if err := r.DB.Create(&profession).Error; err != nil {
		return nil, fmt.Errorf("failed to create profession %s: %w", name, err)
	}
	return &profession, nil
}
