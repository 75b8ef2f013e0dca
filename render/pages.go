package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/routes"
)

//go:embed templates/pages.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/pages.html"))

type homeView struct {
	Categories []models.Category
	Countries  []models.Country
	Recent     []models.Person
	Popular    []models.Person
	Today      []models.Person
}

type personView struct {
	Person  *models.Person
	Related []models.Person
}

type listView struct {
	Title   string
	Persons []models.Person
}

type staticView struct {
	Title      string
	Paragraphs []string
}

var staticPageContent = map[routes.Name]staticView{
	routes.About: {
		Title: "Hakkında",
		Paragraphs: []string{
			"nasiloldu.net, ünlü isimlerin ölüm nedenlerini açık veri kaynaklarından derleyen bir ansiklopedidir.",
			"Veriler Wikidata ve Wikipedia üzerinden toplanır ve düzenli olarak güncellenir.",
		},
	},
	routes.Contact: {
		Title:      "İletişim",
		Paragraphs: []string{"Soru ve düzeltme istekleriniz için iletisim@nasiloldu.net adresine yazabilirsiniz."},
	},
	routes.Privacy: {
		Title:      "Gizlilik Politikası",
		Paragraphs: []string{"Bu site kişisel veri toplamaz; yalnızca anonim sayfa görüntülenme sayıları tutulur."},
	},
}

func cachedPersons(cache *Cache, key string) []models.Person {
	v, ok := cache.Get(key)
	if !ok || v == nil {
		return nil
	}
	persons, _ := v.([]models.Person)
	return persons
}

// renderPage produces the route's markup string using only data already in
// the cache. No storage access happens past this point.
func renderPage(match routes.Match, cache *Cache) (string, error) {
	var (
		name string
		data any
	)

	switch match.Name {
	case routes.Home:
		view := homeView{
			Recent:  cachedPersons(cache, KeyPersonsRecent),
			Popular: cachedPersons(cache, KeyPersonsPop),
			Today:   cachedPersons(cache, KeyPersonsToday),
		}
		if v, ok := cache.Get(KeyCategories); ok && v != nil {
			view.Categories, _ = v.([]models.Category)
		}
		if v, ok := cache.Get(KeyCountries); ok && v != nil {
			view.Countries, _ = v.([]models.Country)
		}
		name, data = "home", view

	case routes.Person:
		v, _ := cache.Get(KeyPerson(match.Param))
		person, _ := v.(*models.Person)
		if person == nil {
			name, data = "not_found", nil
			break
		}
		name, data = "person", personView{
			Person:  person,
			Related: cachedPersons(cache, KeyPersonRelated(match.Param)),
		}

	case routes.Category:
		name, data = listPage(cache, KeyCategory(match.Param), KeyCategoryPersons(match.Param), "Sonucu Ölen Ünlüler")

	case routes.Country:
		name, data = listPage(cache, KeyCountry(match.Param), KeyCountryPersons(match.Param), "Ünlüleri")

	case routes.Profession:
		name, data = listPage(cache, KeyProfession(match.Param), KeyProfessionPersons(match.Param), "Olan Ünlüler")

	case routes.Search:
		name, data = "search", nil

	case routes.About, routes.Contact, routes.Privacy:
		name, data = "static", staticPageContent[match.Name]

	default:
		name, data = "not_found", nil
	}

	var b strings.Builder
	if err := pageTemplates.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s page: %w", name, err)
	}
	return b.String(), nil
}

func listPage(cache *Cache, entityKey, personsKey, titleSuffix string) (string, any) {
	v, _ := cache.Get(entityKey)
	if v == nil {
		return "not_found", nil
	}

	var title string
	switch e := v.(type) {
	case *models.Category:
		title = e.Name + " " + titleSuffix
	case *models.Country:
		title = e.Name + " " + titleSuffix
	case *models.Profession:
		title = e.Name + " " + titleSuffix
	default:
		return "not_found", nil
	}

	return "list", listView{Title: title, Persons: cachedPersons(cache, personsKey)}
}
