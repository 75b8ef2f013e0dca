package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nasiloldu/backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:db_"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, AutoMigrateModels(db))
	return db
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedDefaults(db, "admin", "secret"))
	require.NoError(t, SeedDefaults(db, "admin", "secret"))

	counts := map[any]int64{
		&models.Category{}:   4,
		&models.Profession{}: 5,
		&models.Country{}:    5,
		&models.User{}:       1,
	}
	for model, want := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, want, n, "%T", model)
	}

	// the fixed taxonomy slugs the importer and routes depend on
	var slugs []string
	require.NoError(t, db.Model(&models.Category{}).Order("slug").Pluck("slug", &slugs).Error)
	assert.Equal(t, []string{"hastalik", "intihar", "kaza", "suikast"}, slugs)
}

func TestSeedDefaultsSkipsAdminWithoutPassword(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, SeedDefaults(db, "admin", ""))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestGetSitemapSlugsSweepsAllTables(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedDefaults(db, "admin", ""))

	sqlDB, err := db.DB()
	require.NoError(t, err)

	slugs, err := GetSitemapSlugs(sqlDB)
	require.NoError(t, err)

	assert.Len(t, slugs["categories"], 4)
	assert.Len(t, slugs["countries"], 5)
	assert.Len(t, slugs["professions"], 5)
	assert.Empty(t, slugs["persons"])
	// sorted for stable sitemap output
	assert.Equal(t, "hastalik", slugs["categories"][0].Slug)
}
