package repository

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nasiloldu/backend/database"
	"github.com/nasiloldu/backend/models"
)

// setupTestDB opens a test-scoped in-memory database. The shared-cache DSN
// keeps the pooled connections on one database; a single open connection
// avoids sqlite table locks under the concurrency tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrateModels(db))
	return db
}

type fixtures struct {
	illness  models.Category
	accident models.Category
	turkiye  models.Country
	france   models.Country
	singer   models.Profession
	actor    models.Profession
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		illness:  models.Category{Slug: "hastalik", Name: "Hastalık"},
		accident: models.Category{Slug: "kaza", Name: "Kaza"},
		turkiye:  models.Country{Slug: "turkiye", Name: "Türkiye"},
		france:   models.Country{Slug: "fransa", Name: "Fransa"},
		singer:   models.Profession{Slug: "sarkici", Name: "Şarkıcı"},
		actor:    models.Profession{Slug: "oyuncu", Name: "Oyuncu"},
	}
	require.NoError(t, db.Create(&f.illness).Error)
	require.NoError(t, db.Create(&f.accident).Error)
	require.NoError(t, db.Create(&f.turkiye).Error)
	require.NoError(t, db.Create(&f.france).Error)
	require.NoError(t, db.Create(&f.singer).Error)
	require.NoError(t, db.Create(&f.actor).Error)
	return f
}

func newPerson(f fixtures, qid, slug, name string) *models.Person {
	return &models.Person{
		WikidataID:   qid,
		Slug:         slug,
		Name:         name,
		ProfessionID: f.singer.ID,
		CountryID:    f.turkiye.ID,
		CategoryID:   f.illness.ID,
		IsApproved:   true,
	}
}

func TestGetBySlugReturnsJoinedPerson(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	require.NoError(t, repo.Create(newPerson(f, "Q151895", "zeki-muren", "Zeki Müren")))

	person, err := repo.GetBySlug("zeki-muren")
	require.NoError(t, err)
	assert.Equal(t, "zeki-muren", person.Slug)
	require.NotNil(t, person.Profession)
	assert.Equal(t, "Şarkıcı", person.Profession.Name)
	require.NotNil(t, person.Country)
	assert.Equal(t, "Türkiye", person.Country.Name)
	require.NotNil(t, person.Category)
	assert.Equal(t, "hastalik", person.Category.Slug)
	assert.Nil(t, person.DeathCause)
}

func TestGetBySlugNotFound(t *testing.T) {
	db := setupTestDB(t)
	seedFixtures(t, db)
	repo := NewPersonRepository(db)

	_, err := repo.GetBySlug("unknown-slug")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSlugUniquenessEnforced(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	require.NoError(t, repo.Create(newPerson(f, "Q1", "ayse-yilmaz", "Ayşe Yılmaz")))
	err := repo.Create(newPerson(f, "Q2", "ayse-yilmaz", "Ayşe Yılmaz"))
	assert.Error(t, err)
}

func TestSearchBlankQuerySkipsStorage(t *testing.T) {
	// a nil DB proves the short-circuit: any storage access would panic
	repo := NewPersonRepository(nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		persons, err := repo.Search(q)
		require.NoError(t, err)
		assert.Empty(t, persons)
	}
}

func TestSearchIsDiacriticInsensitive(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	require.NoError(t, repo.Create(newPerson(f, "Q151895", "zeki-muren", "Zeki Müren")))
	require.NoError(t, repo.Create(newPerson(f, "Q201538", "baris-manco", "Barış Manço")))

	for _, q := range []string{"muren", "MÜREN", "müren", "Muren"} {
		persons, err := repo.Search(q)
		require.NoError(t, err)
		require.Len(t, persons, 1, "query %q", q)
		assert.Equal(t, "Zeki Müren", persons[0].Name)
	}
}

func TestSearchOrdersByPopularity(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	low := newPerson(f, "Q1", "kemal-sunal", "Kemal Sunal")
	high := newPerson(f, "Q2", "kemal-tahir", "Kemal Tahir")
	high.ViewCount = 100
	require.NoError(t, repo.Create(low))
	require.NoError(t, repo.Create(high))

	persons, err := repo.Search("kemal")
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "Kemal Tahir", persons[0].Name)
}

func TestRelatedExcludesSelfAndHonorsLimit(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	subject := newPerson(f, "Q0", "subject", "Subject")
	require.NoError(t, repo.Create(subject))
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Create(newPerson(f, fmt.Sprintf("Q%d", i), fmt.Sprintf("peer-%d", i), fmt.Sprintf("Peer %d", i))))
	}
	// unrelated person: different category, country and profession
	outsider := &models.Person{
		WikidataID: "Q99", Slug: "outsider", Name: "Outsider",
		ProfessionID: f.actor.ID, CountryID: f.france.ID, CategoryID: f.accident.ID, IsApproved: true,
	}
	require.NoError(t, repo.Create(outsider))

	related, err := repo.Related(subject.ID, 3)
	require.NoError(t, err)
	assert.Len(t, related, 3)
	for _, p := range related {
		assert.NotEqual(t, subject.ID, p.ID)
		assert.NotEqual(t, "outsider", p.Slug)
	}
}

func TestIncrementViewCountIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	person := newPerson(f, "Q1", "someone", "Someone")
	require.NoError(t, repo.Create(person))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.IncrementViewCount(person.ID))
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(person.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ViewCount)
}

func TestListDiedTodayMatchesMonthDay(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	today := time.Now().Format("2006-01-02")
	match := newPerson(f, "Q1", "match", "Match")
	match.DeathDate = &today
	require.NoError(t, repo.Create(match))

	other := "1999-12-31"
	if strings.HasSuffix(today, "12-31") {
		other = "1999-06-15"
	}
	miss := newPerson(f, "Q2", "miss", "Miss")
	miss.DeathDate = &other
	require.NoError(t, repo.Create(miss))

	noDate := newPerson(f, "Q3", "no-date", "No Date")
	require.NoError(t, repo.Create(noDate))

	persons, err := repo.ListDiedToday(0)
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "match", persons[0].Slug)
}

func TestUnapprovedPersonsAreHiddenFromLists(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	hidden := newPerson(f, "Q1", "hidden", "Hidden")
	require.NoError(t, repo.Create(hidden))
	// the column default is true, so flip it after insert
	require.NoError(t, db.Model(hidden).UpdateColumn("is_approved", false).Error)

	persons, err := repo.ListRecent(10)
	require.NoError(t, err)
	assert.Empty(t, persons)
}

func TestGetOrCreateCountryIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCountryRepository(db)

	first, err := repo.GetOrCreate("Türkiye", nil)
	require.NoError(t, err)
	second, err := repo.GetOrCreate("Türkiye", nil)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "turkiye", first.Slug)

	var count int64
	require.NoError(t, db.Model(&models.Country{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateDeathCauseCorrectsCategory(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewDeathCauseRepository(db)

	qid := "Q12152"
	first, err := repo.GetOrCreate("kalp krizi", f.accident.ID, &qid)
	require.NoError(t, err)
	assert.Equal(t, f.accident.ID, first.CategoryID)

	// a re-import reclassifies the same cause; the stored category follows
	second, err := repo.GetOrCreate("kalp krizi", f.illness.ID, &qid)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, f.illness.ID, second.CategoryID)
}

func TestCountByCategory(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)
	repo := NewPersonRepository(db)

	require.NoError(t, repo.Create(newPerson(f, "Q1", "a", "A")))
	require.NoError(t, repo.Create(newPerson(f, "Q2", "b", "B")))

	count, err := repo.CountByCategory(f.illness.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByCategory(f.accident.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
