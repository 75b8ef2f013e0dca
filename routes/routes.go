// Package routes classifies request paths against the site's URL scheme. The
// SEO metadata generator and the render pipeline both match through it, so a
// path can never be prefetched under one route and described under another.
package routes

import "strings"

// Name identifies a page kind.
type Name string

const (
	Home       Name = "home"
	Person     Name = "person"
	Category   Name = "category"
	Country    Name = "country"
	Profession Name = "profession"
	Search     Name = "search"
	About      Name = "about"
	Contact    Name = "contact"
	Privacy    Name = "privacy"
	NotFound   Name = "not-found"
)

// Match is a classified path: the route name plus its single path parameter,
// empty for parameterless routes.
type Match struct {
	Name  Name
	Param string
}

// StaticPages lists the parameterless content pages, for sitemap generation.
var StaticPages = map[Name]string{
	Home:    "/",
	Search:  "/arama",
	About:   "/hakkinda",
	Contact: "/iletisim",
	Privacy: "/gizlilik",
}

// PathFor builds the canonical path for a route and parameter.
func PathFor(name Name, param string) string {
	switch name {
	case Person:
		return "/nasil-oldu/" + param
	case Category:
		return "/kategori/" + param
	case Country:
		return "/ulke/" + param
	case Profession:
		return "/meslek/" + param
	default:
		if p, ok := StaticPages[name]; ok {
			return p
		}
		return "/"
	}
}

// Classify matches a request path against the fixed ordered route set.
// Unrecognized paths classify as NotFound rather than returning an error, so
// the render pipeline can still produce a degraded document for them.
func Classify(path string) Match {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return Match{Name: Home}
	}

	for name, static := range StaticPages {
		if name != Home && path == static {
			return Match{Name: name}
		}
	}

	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) == 2 && segments[1] != "" {
		switch segments[0] {
		case "nasil-oldu":
			return Match{Name: Person, Param: segments[1]}
		case "kategori":
			return Match{Name: Category, Param: segments[1]}
		case "ulke":
			return Match{Name: Country, Param: segments[1]}
		case "meslek":
			return Match{Name: Profession, Param: segments[1]}
		}
	}

	return Match{Name: NotFound}
}
