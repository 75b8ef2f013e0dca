// Package seo computes per-route titles, descriptions and schema.org payloads
// for the server-rendered documents.
package seo

import (
	"errors"
	"fmt"
	"html"

	"gorm.io/gorm"

	"github.com/nasiloldu/backend/models"
	"github.com/nasiloldu/backend/repository"
	"github.com/nasiloldu/backend/routes"
)

const siteName = "nasiloldu.net"

// Metadata is everything the render pipeline splices into the document head.
// Title and Description are already HTML-escaped; JSONLD is a serialized
// JSON-LD payload safe for raw embedding inside a script tag.
type Metadata struct {
	Title       string
	Description string
	Canonical   string
	OGType      string
	Image       *string
	JSONLD      string
}

// Generator resolves route metadata against the storage façade.
type Generator struct {
	BaseURL     string
	Persons     repository.PersonRepositoryInterface
	Categories  repository.CategoryRepositoryInterface
	Countries   repository.CountryRepositoryInterface
	Professions repository.ProfessionRepositoryInterface
}

// For computes the metadata for a request path. It returns (nil, nil) for
// unrecognized paths and for data-backed routes whose entity does not exist;
// the caller then falls back to the shell's default head.
func (g *Generator) For(path string) (*Metadata, error) {
	match := routes.Classify(path)

	switch match.Name {
	case routes.Home:
		return g.static(match.Name,
			"Ünlüler Nasıl Öldü? | "+siteName,
			"Ünlü isimlerin ölüm nedenleri, ölüm tarihleri ve hayat hikayeleri. Hastalık, kaza, intihar ve suikast sonucu hayatını kaybeden ünlüler."), nil
	case routes.Search:
		return g.static(match.Name, "Ünlü Ara | "+siteName,
			"İsme göre ünlü arayın, nasıl öldüklerini öğrenin."), nil
	case routes.About:
		return g.static(match.Name, "Hakkında | "+siteName,
			siteName+" ünlü isimlerin ölüm nedenlerini kaynaklarıyla derleyen bir ansiklopedidir."), nil
	case routes.Contact:
		return g.static(match.Name, "İletişim | "+siteName,
			siteName+" ekibiyle iletişime geçin."), nil
	case routes.Privacy:
		return g.static(match.Name, "Gizlilik Politikası | "+siteName,
			siteName+" gizlilik politikası."), nil
	case routes.Person:
		return g.person(match.Param)
	case routes.Category:
		return g.category(match.Param)
	case routes.Country:
		return g.country(match.Param)
	case routes.Profession:
		return g.profession(match.Param)
	default:
		return nil, nil
	}
}

func (g *Generator) canonical(name routes.Name, param string) string {
	return g.BaseURL + routes.PathFor(name, param)
}

func (g *Generator) static(name routes.Name, title, description string) *Metadata {
	return &Metadata{
		Title:       html.EscapeString(title),
		Description: html.EscapeString(description),
		Canonical:   g.canonical(name, ""),
		OGType:      "website",
	}
}

func (g *Generator) person(slug string) (*Metadata, error) {
	person, err := g.Persons.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	description := person.Name + " nasıl öldü?"
	if person.DeathCauseRaw != nil && *person.DeathCauseRaw != "" {
		description = fmt.Sprintf("%s, %s nedeniyle hayatını kaybetti.", person.Name, *person.DeathCauseRaw)
	}
	if person.DeathDate != nil && *person.DeathDate != "" {
		description += " Ölüm tarihi: " + *person.DeathDate + "."
	}

	jsonLD, err := personJSONLD(g.canonical(routes.Person, person.Slug), person)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Title:       html.EscapeString(person.Name + " Nasıl Öldü? | " + siteName),
		Description: html.EscapeString(description),
		Canonical:   g.canonical(routes.Person, person.Slug),
		OGType:      "profile",
		Image:       person.ImageURL,
		JSONLD:      jsonLD,
	}, nil
}

func (g *Generator) category(slug string) (*Metadata, error) {
	category, err := g.Categories.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	count, err := g.Persons.CountByCategory(category.ID)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Title:       html.EscapeString(fmt.Sprintf("%s Sonucu Ölen Ünlüler | %s", category.Name, siteName)),
		Description: html.EscapeString(fmt.Sprintf("%s sonucu hayatını kaybeden %d ünlü isim.", category.Name, count)),
		Canonical:   g.canonical(routes.Category, category.Slug),
		OGType:      "website",
	}, nil
}

func (g *Generator) country(slug string) (*Metadata, error) {
	country, err := g.Countries.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	count, err := g.Persons.CountByCountry(country.ID)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Title:       html.EscapeString(fmt.Sprintf("%s Ünlüleri Nasıl Öldü? | %s", country.Name, siteName)),
		Description: html.EscapeString(fmt.Sprintf("%s doğumlu, hayatını kaybetmiş %d ünlü isim.", country.Name, count)),
		Canonical:   g.canonical(routes.Country, country.Slug),
		OGType:      "website",
	}, nil
}

func (g *Generator) profession(slug string) (*Metadata, error) {
	profession, err := g.Professions.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	count, err := g.Persons.CountByProfession(profession.ID)
	if err != nil {
		return nil, err
	}
	return &Metadata{
		Title:       html.EscapeString(fmt.Sprintf("Ölen %s Ünlüler | %s", profession.Name, siteName)),
		Description: html.EscapeString(fmt.Sprintf("Hayatını kaybetmiş %d %s.", count, profession.Name)),
		Canonical:   g.canonical(routes.Profession, profession.Slug),
		OGType:      "website",
	}, nil
}

func personJSONLD(url string, person *models.Person) (string, error) {
	payload := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     person.Name,
		"url":      url,
	}
	if person.BirthDate != nil {
		payload["birthDate"] = *person.BirthDate
	}
	if person.DeathDate != nil {
		payload["deathDate"] = *person.DeathDate
	}
	if person.ImageURL != nil {
		payload["image"] = *person.ImageURL
	}
	if person.Description != nil {
		payload["description"] = *person.Description
	}
	if person.Profession != nil {
		payload["jobTitle"] = person.Profession.Name
	}
	if person.Country != nil {
		payload["nationality"] = person.Country.Name
	}
	return MarshalJSONLD(payload)
}
