package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/utils"
)

func strPtr(s string) *string { return &s }

// defaultCategories is the fixed death-cause taxonomy. Slugs are load-bearing:
// routes, the importer's classifier and the client all refer to them.
var defaultCategories = []models.Category{
	{Slug: "hastalik", Name: "Hastalık", Description: strPtr("Hastalık sonucu hayatını kaybeden ünlüler")},
	{Slug: "kaza", Name: "Kaza", Description: strPtr("Kaza sonucu hayatını kaybeden ünlüler")},
	{Slug: "intihar", Name: "İntihar", Description: strPtr("İntihar ederek hayatına son veren ünlüler")},
	{Slug: "suikast", Name: "Suikast", Description: strPtr("Suikast sonucu hayatını kaybeden ünlüler")},
}

var defaultProfessions = []string{"Şarkıcı", "Oyuncu", "Yazar", "Siyasetçi", "Sporcu"}

var defaultCountries = []string{"Türkiye", "Amerika Birleşik Devletleri", "Birleşik Krallık", "Fransa", "Almanya"}

// SeedDefaults inserts the fixed categories, a starter set of professions and
// countries, and the admin account when they are missing. It is idempotent and
// runs on every server start.
func SeedDefaults(db *gorm.DB, adminUsername, adminPassword string) error {
	for _, c := range defaultCategories {
		var existing models.Category
		err := db.Where("slug = ?", c.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to check category %s: %w", c.Slug, err)
		}
	}

	for _, name := range defaultProfessions {
		p := models.Profession{Slug: utils.Slugify(name), Name: name}
		var existing models.Profession
		err := db.Where("slug = ?", p.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&p).Error; err != nil {
				return fmt.Errorf("failed to seed profession %s: %w", p.Slug, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to check profession %s: %w", p.Slug, err)
		}
	}

	for _, name := range defaultCountries {
		c := models.Country{Slug: utils.Slugify(name), Name: name}
		var existing models.Country
		err := db.Where("slug = ?", c.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				return fmt.Errorf("failed to seed country %s: %w", c.Slug, err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to check country %s: %w", c.Slug, err)
		}
	}

	if adminPassword != "" {
		var existing models.User
		err := db.Where("username = ?", adminUsername).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			admin := models.User{Username: adminUsername}
			if err := admin.SetPassword(adminPassword); err != nil {
				return fmt.Errorf("failed to hash admin password: %w", err)
			}
			if err := db.Create(&admin).Error; err != nil {
				return fmt.Errorf("failed to seed admin user: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to check admin user: %w", err)
		}
	}

	return nil
}
