package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nasiloldu/backend/config"
	"github.com/nasiloldu/backend/database"
	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/render"
	"github.com/nasiloldu/backend/repository"
	"github.com/nasiloldu/backend/seo"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:h_"+strings.ReplaceAll(t.Name(), "/", "_")+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrateModels(db))
	require.NoError(t, database.SeedDefaults(db, "admin", "test-password"))
	return db
}

func createTestPerson(t *testing.T, db *gorm.DB, qid, slug, name string) *models.Person {
	t.Helper()
	var category models.Category
	var country models.Country
	var profession models.Profession
	require.NoError(t, db.Where("slug = ?", "hastalik").First(&category).Error)
	require.NoError(t, db.Where("slug = ?", "turkiye").First(&country).Error)
	require.NoError(t, db.Where("slug = ?", "sarkici").First(&profession).Error)

	person := &models.Person{
		WikidataID: qid, Slug: slug, Name: name,
		ProfessionID: profession.ID, CountryID: country.ID, CategoryID: category.ID,
		IsApproved: true,
	}
	require.NoError(t, repository.NewPersonRepository(db).Create(person))
	return person
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestGetPersonBySlug(t *testing.T) {
	db := setupTestDB(t)
	createTestPerson(t, db, "Q151895", "zeki-muren", "Zeki Müren")
	handler := &PersonHandler{Persons: repository.NewPersonRepository(db), Log: zerolog.Nop()}

	r := chi.NewRouter()
	r.Get("/api/persons/{slug}", handler.GetPerson)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/persons/zeki-muren", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var person models.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &person))
	assert.Equal(t, "Zeki Müren", person.Name)
	require.NotNil(t, person.Profession)
	assert.Equal(t, "Şarkıcı", person.Profession.Name)
}

func TestGetPersonNotFound(t *testing.T) {
	db := setupTestDB(t)
	handler := &PersonHandler{Persons: repository.NewPersonRepository(db), Log: zerolog.Nop()}

	r := chi.NewRouter()
	r.Get("/api/persons/{slug}", handler.GetPerson)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/persons/kimse-yok", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Person not found", decodeError(t, rec))
}

func TestSearchPersons(t *testing.T) {
	db := setupTestDB(t)
	createTestPerson(t, db, "Q151895", "zeki-muren", "Zeki Müren")
	handler := &PersonHandler{Persons: repository.NewPersonRepository(db), Log: zerolog.Nop()}

	rec := httptest.NewRecorder()
	handler.SearchPersons(rec, httptest.NewRequest(http.MethodGet, "/api/persons/search?q=muren", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var persons []models.Person
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &persons))
	require.Len(t, persons, 1)
	assert.Equal(t, "Zeki Müren", persons[0].Name)

	// a blank query is an empty list, not an error
	rec = httptest.NewRecorder()
	handler.SearchPersons(rec, httptest.NewRequest(http.MethodGet, "/api/persons/search?q=", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListCategoriesReturnsSeededTaxonomy(t *testing.T) {
	db := setupTestDB(t)
	handler := &CategoryHandler{
		Categories: repository.NewCategoryRepository(db),
		Persons:    repository.NewPersonRepository(db),
		Log:        zerolog.Nop(),
	}

	rec := httptest.NewRecorder()
	handler.ListCategories(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	require.Len(t, categories, 4)

	slugs := make([]string, 0, 4)
	for _, c := range categories {
		slugs = append(slugs, c.Slug)
	}
	assert.ElementsMatch(t, []string{"hastalik", "kaza", "intihar", "suikast"}, slugs)
}

func TestGetCategoryNotFound(t *testing.T) {
	db := setupTestDB(t)
	handler := &CategoryHandler{
		Categories: repository.NewCategoryRepository(db),
		Persons:    repository.NewPersonRepository(db),
		Log:        zerolog.Nop(),
	}

	r := chi.NewRouter()
	r.Get("/api/categories/{slug}", handler.GetCategory)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/bilinmeyen", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Category not found", decodeError(t, rec))
}

func loginRequest(t *testing.T, handler *AdminHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(LoginPayload{Username: username, Password: password})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body)))
	return rec
}

func TestAdminLoginIssuesUsableToken(t *testing.T) {
	db := setupTestDB(t)
	cfg := config.Config{JWTSecret: "test-secret"}
	handler := &AdminHandler{Users: repository.NewUserRepository(db), Cfg: cfg, Log: zerolog.Nop()}

	rec := loginRequest(t, handler, "admin", "test-password")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.Username)
	require.NotEmpty(t, resp.Token)

	// the issued token passes the auth middleware
	var reached bool
	protected := AuthMiddleware(cfg.JWTSecret, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	authRec := httptest.NewRecorder()
	protected.ServeHTTP(authRec, req)
	assert.True(t, reached)
	assert.Equal(t, http.StatusNoContent, authRec.Code)
}

func TestAdminLoginFailuresAreUniform(t *testing.T) {
	db := setupTestDB(t)
	handler := &AdminHandler{Users: repository.NewUserRepository(db), Cfg: config.Config{JWTSecret: "test-secret"}, Log: zerolog.Nop()}

	wrongPassword := loginRequest(t, handler, "admin", "not-the-password")
	unknownUser := loginRequest(t, handler, "nobody", "whatever")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	// identical bodies, so responses never reveal which field was wrong
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "Invalid username or password", decodeError(t, wrongPassword))
}

func TestAdminLoginRejectsMissingFields(t *testing.T) {
	db := setupTestDB(t)
	handler := &AdminHandler{Users: repository.NewUserRepository(db), Cfg: config.Config{JWTSecret: "test-secret"}, Log: zerolog.Nop()}

	rec := loginRequest(t, handler, "admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	protected := AuthMiddleware("test-secret", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	cases := map[string]string{
		"no header":   "",
		"not bearer":  "Basic abc",
		"garbage jwt": "Bearer not.a.token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestAdminStats(t *testing.T) {
	db := setupTestDB(t)
	createTestPerson(t, db, "Q1", "a", "A")
	require.NoError(t, db.Model(&models.Person{}).Where("slug = ?", "a").UpdateColumn("view_count", 7).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	handler := &AdminHandler{StatsDB: sqlDB, Log: zerolog.Nop()}

	rec := httptest.NewRecorder()
	handler.GetStats(rec, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats database.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Persons)
	assert.Equal(t, int64(4), stats.Categories)
	assert.Equal(t, int64(5), stats.Countries)
	assert.Equal(t, int64(5), stats.Professions)
	assert.Equal(t, int64(7), stats.TotalViews)
}

func TestSitemapListsStaticAndDataRoutes(t *testing.T) {
	db := setupTestDB(t)
	createTestPerson(t, db, "Q151895", "zeki-muren", "Zeki Müren")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	handler := &SEOHandler{DB: sqlDB, BaseURL: "https://nasiloldu.net", Log: zerolog.Nop()}

	rec := httptest.NewRecorder()
	handler.Sitemap(rec, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")
	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://nasiloldu.net/</loc>")
	assert.Contains(t, body, "<loc>https://nasiloldu.net/hakkinda</loc>")
	assert.Contains(t, body, "<loc>https://nasiloldu.net/kategori/hastalik</loc>")
	assert.Contains(t, body, "<loc>https://nasiloldu.net/nasil-oldu/zeki-muren</loc>")
	assert.Contains(t, body, "<changefreq>monthly</changefreq>")
}

func TestRobots(t *testing.T) {
	handler := &SEOHandler{BaseURL: "https://nasiloldu.net", Log: zerolog.Nop()}

	rec := httptest.NewRecorder()
	handler.Robots(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "User-agent: *")
	assert.Contains(t, body, "Disallow: /api/")
	assert.Contains(t, body, "Disallow: /admin/")
	assert.Contains(t, body, "Sitemap: https://nasiloldu.net/sitemap.xml")
}

// failingPersons breaks the render pipeline at the prefetch stage; the
// embedded nil interface panics on anything else, proving nothing else runs.
type failingPersons struct {
	repository.PersonRepositoryInterface
}

func (failingPersons) GetBySlug(string) (*models.Person, error) {
	return nil, errors.New("storage offline")
}

func TestServeDocumentFallsBackToShell(t *testing.T) {
	shellPath := filepath.Join(t.TempDir(), "index.html")
	shell := `<!DOCTYPE html><html><head><title>nasiloldu.net</title></head><body><div id="root"></div></body></html>`
	require.NoError(t, os.WriteFile(shellPath, []byte(shell), 0o644))

	prefetcher := &render.Prefetcher{Persons: failingPersons{}, Log: zerolog.Nop()}
	meta := &seo.Generator{BaseURL: "https://nasiloldu.net", Persons: failingPersons{}}
	renderer, err := render.NewRenderer(shellPath, prefetcher, meta, zerolog.Nop())
	require.NoError(t, err)

	handler := &DocumentHandler{Renderer: renderer, Log: zerolog.Nop()}
	rec := httptest.NewRecorder()
	handler.ServeDocument(rec, httptest.NewRequest(http.MethodGet, "/nasil-oldu/zeki-muren", nil))

	// rendering failed, so the raw shell goes out with a 200
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shell, rec.Body.String())
}
