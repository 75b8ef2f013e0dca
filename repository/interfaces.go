package repository

import (
	"github.com/nasiloldu/backend/models"
)

// CategoryRepositoryInterface defines the methods for category data operations
type CategoryRepositoryInterface interface {
	ListAll() ([]models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	GetByID(id uint) (*models.Category, error)
}

// CountryRepositoryInterface defines the methods for country data operations
type CountryRepositoryInterface interface {
	ListAll() ([]models.Country, error)
	GetBySlug(slug string) (*models.Country, error)
	GetByID(id uint) (*models.Country, error)
	GetOrCreate(name string, wikidataID *string) (*models.Country, error)
}

// ProfessionRepositoryInterface defines the methods for profession data operations
type ProfessionRepositoryInterface interface {
	ListAll() ([]models.Profession, error)
	GetBySlug(slug string) (*models.Profession, error)
	GetByID(id uint) (*models.Profession, error)
	GetOrCreate(name string, wikidataID *string) (*models.Profession, error)
}

// DeathCauseRepositoryInterface defines the methods for death-cause data operations
type DeathCauseRepositoryInterface interface {
	GetByID(id uint) (*models.DeathCause, error)
	GetOrCreate(name string, categoryID uint, wikidataID *string) (*models.DeathCause, error)
}

// PersonRepositoryInterface is the read/write surface for person records.
// Every read returns persons with profession, country, category and (when
// set) death cause preloaded.
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	Update(person *models.Person) error
	GetByID(id uint) (*models.Person, error)
	GetBySlug(slug string) (*models.Person, error)
	GetByWikidataID(wikidataID string) (*models.Person, error)
	ListByCategory(categoryID uint, limit, offset int) ([]models.Person, error)
	ListByCountry(countryID uint, limit, offset int) ([]models.Person, error)
	ListByProfession(professionID uint, limit, offset int) ([]models.Person, error)
	ListDiedToday(limit int) ([]models.Person, error)
	ListRecent(limit int) ([]models.Person, error)
	ListPopular(limit int) ([]models.Person, error)
	Search(query string) ([]models.Person, error)
	Related(personID uint, limit int) ([]models.Person, error)
	IncrementViewCount(personID uint) error
	Count() (int64, error)
	CountByCategory(categoryID uint) (int64, error)
	CountByCountry(countryID uint) (int64, error)
	CountByProfession(professionID uint) (int64, error)
	ListAllForMaintenance() ([]models.Person, error)
}

// UserRepositoryInterface defines the methods for admin account operations
type UserRepositoryInterface interface {
	GetByUsername(username string) (*models.User, error)
	Create(user *models.User) error
}
