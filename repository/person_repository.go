package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/utils"
)

const (
	searchResultCap = 50
	diedTodayCap    = 20
)

// PersonRepository handles database operations for Person records. All reads
// preload profession, country, category and death cause so callers never need
// a second round trip.
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

func (r *PersonRepository) withRelations() *gorm.DB {
	return r.DB.
		Preload("Profession").
		Preload("Country").
		Preload("Category").
		Preload("DeathCause").
		Preload("DeathCause.Category")
}

// Create inserts a new person, deriving the folded search column from the name
func (r *PersonRepository) Create(person *models.Person) error {
	person.SearchName = utils.Fold(person.Name)
	if err := r.DB.Create(person).Error; err != nil {
		return fmt.Errorf("failed to create person %s: %w", person.Name, err)
	}
	return nil
}

// Update persists changes to an existing person, keeping the folded search
// column in sync with the name
func (r *PersonRepository) Update(person *models.Person) error {
	person.SearchName = utils.Fold(person.Name)
	result := r.DB.Model(&models.Person{ID: person.ID}).Updates(person)
	if result.Error != nil {
		return fmt.Errorf("failed to update person ID %d: %w", person.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByID retrieves a person by ID with all relations
func (r *PersonRepository) GetByID(id uint) (*models.Person, error) {
	var person models.Person
	err := r.withRelations().First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	return &person, nil
}

// GetBySlug retrieves a person by slug with all relations
func (r *PersonRepository) GetBySlug(slug string) (*models.Person, error) {
	var person models.Person
	err := r.withRelations().Where("slug = ?", slug).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by slug %s: %w", slug, err)
	}
	return &person, nil
}

// GetByWikidataID retrieves a person by their external Wikidata identifier,
// the de-duplication key used by every import path
func (r *PersonRepository) GetByWikidataID(wikidataID string) (*models.Person, error) {
	var person models.Person
	err := r.withRelations().Where("wikidata_id = ?", wikidataID).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person by wikidata ID %s: %w", wikidataID, err)
	}
	return &person, nil
}

func (r *PersonRepository) listWhere(query string, arg any, order string, limit, offset int) ([]models.Person, error) {
	var persons []models.Person
	tx := r.withRelations().Where("is_approved = ?", true)
	if query != "" {
		tx = tx.Where(query, arg)
	}
	err := tx.Order(order).Limit(limit).Offset(offset).Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list persons: %w", err)
	}
	return persons, nil
}

// ListByCategory retrieves approved persons in a category, newest first
func (r *PersonRepository) ListByCategory(categoryID uint, limit, offset int) ([]models.Person, error) {
	return r.listWhere("category_id = ?", categoryID, "created_at DESC", limit, offset)
}

// ListByCountry retrieves approved persons from a country, newest first
func (r *PersonRepository) ListByCountry(countryID uint, limit, offset int) ([]models.Person, error) {
	return r.listWhere("country_id = ?", countryID, "created_at DESC", limit, offset)
}

// ListByProfession retrieves approved persons with a profession, newest first
func (r *PersonRepository) ListByProfession(professionID uint, limit, offset int) ([]models.Person, error) {
	return r.listWhere("profession_id = ?", professionID, "created_at DESC", limit, offset)
}

// ListDiedToday retrieves persons whose death date falls on today's month and
// day. The comparison uses the server's local date; death dates are stored as
// ISO strings so the month-day substring starts at offset 6.
func (r *PersonRepository) ListDiedToday(limit int) ([]models.Person, error) {
	if limit <= 0 || limit > diedTodayCap {
		limit = diedTodayCap
	}
	monthDay := time.Now().Format("01-02")
	var persons []models.Person
	err := r.withRelations().
		Where("is_approved = ?", true).
		Where("death_date IS NOT NULL AND substr(death_date, 6, 5) = ?", monthDay).
		Order("created_at DESC").
		Limit(limit).
		Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list persons who died today: %w", err)
	}
	return persons, nil
}

// ListRecent retrieves the most recently added approved persons
func (r *PersonRepository) ListRecent(limit int) ([]models.Person, error) {
	return r.listWhere("", nil, "created_at DESC", limit, 0)
}

// ListPopular retrieves approved persons ordered by view count
func (r *PersonRepository) ListPopular(limit int) ([]models.Person, error) {
	return r.listWhere("", nil, "view_count DESC", limit, 0)
}

// Search performs a case- and diacritic-insensitive substring match against
// person names, most viewed first. Empty or whitespace-only queries return an
// empty result without touching storage.
func (r *PersonRepository) Search(query string) ([]models.Person, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Person{}, nil
	}

	folded := utils.Fold(strings.TrimSpace(query))
	var persons []models.Person
	err := r.withRelations().
		Where("is_approved = ?", true).
		Where("search_name LIKE ?", "%"+folded+"%").
		Order("view_count DESC").
		Limit(searchResultCap).
		Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search persons for %q: %w", query, err)
	}
	return persons, nil
}

// Related retrieves other persons sharing the given person's category, country
// or profession, ordered by popularity and never including the person itself
func (r *PersonRepository) Related(personID uint, limit int) ([]models.Person, error) {
	var anchor models.Person
	err := r.DB.Select("id", "category_id", "country_id", "profession_id").First(&anchor, personID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load person %d for related lookup: %w", personID, err)
	}

	var persons []models.Person
	err = r.withRelations().
		Where("is_approved = ?", true).
		Where("id <> ?", personID).
		Where("category_id = ? OR country_id = ? OR profession_id = ?",
			anchor.CategoryID, anchor.CountryID, anchor.ProfessionID).
		Order("view_count DESC").
		Limit(limit).
		Find(&persons).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list persons related to %d: %w", personID, err)
	}
	return persons, nil
}

// IncrementViewCount bumps a person's view counter with an in-place arithmetic
// update, so concurrent detail reads never lose increments
func (r *PersonRepository) IncrementViewCount(personID uint) error {
	err := r.DB.Model(&models.Person{}).
		Where("id = ?", personID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment view count for person %d: %w", personID, err)
	}
	return nil
}

// Count returns the total number of persons
func (r *PersonRepository) Count() (int64, error) {
	var n int64
	if err := r.DB.Model(&models.Person{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return n, nil
}

// CountByCategory returns the number of approved persons in a category
func (r *PersonRepository) CountByCategory(categoryID uint) (int64, error) {
	return r.countWhere("category_id = ?", categoryID)
}

// CountByCountry returns the number of approved persons from a country
func (r *PersonRepository) CountByCountry(countryID uint) (int64, error) {
	return r.countWhere("country_id = ?", countryID)
}

// CountByProfession returns the number of approved persons with a profession
func (r *PersonRepository) CountByProfession(professionID uint) (int64, error) {
	return r.countWhere("profession_id = ?", professionID)
}

func (r *PersonRepository) countWhere(query string, arg any) (int64, error) {
	var n int64
	err := r.DB.Model(&models.Person{}).
		Where("is_approved = ?", true).
		Where(query, arg).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return n, nil
}

// ListAllForMaintenance retrieves every person row without relations, for the
// one-shot maintenance scripts that patch individual fields
func (r *PersonRepository) ListAllForMaintenance() ([]models.Person, error) {
	var persons []models.Person
	if err := r.DB.Order("id ASC").Find(&persons).Error; err != nil {
		return nil, fmt.Errorf("failed to list persons for maintenance: %w", err)
	}
	return persons, nil
}
