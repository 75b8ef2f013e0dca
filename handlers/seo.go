package handlers

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nasiloldu/backend/database"
	"github.com/nasiloldu/backend/routes"
)

type SEOHandler struct {
	DB      *sql.DB
	BaseURL string
	Log     zerolog.Logger
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

var tableRoutes = map[string]struct {
	route      routes.Name
	changeFreq string
	priority   string
}{
	"categories":  {routes.Category, "weekly", "0.8"},
	"countries":   {routes.Country, "weekly", "0.6"},
	"professions": {routes.Profession, "weekly", "0.6"},
	"persons":     {routes.Person, "monthly", "0.7"},
}

// Sitemap serves /sitemap.xml with one url entry per static page, category,
// country, profession and person.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	slugs, err := database.GetSitemapSlugs(h.DB)
	if err != nil {
		h.Log.Error().Err(err).Msg("sitemap sweep failed")
		writeError(w, http.StatusInternalServerError, "Failed to build sitemap")
		return
	}

	urlSet := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for name, path := range routes.StaticPages {
		priority := "0.5"
		if name == routes.Home {
			priority = "1.0"
		}
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:        h.BaseURL + path,
			ChangeFreq: "daily",
			Priority:   priority,
		})
	}
	for table, entries := range slugs {
		tr, ok := tableRoutes[table]
		if !ok {
			continue
		}
		for _, entry := range entries {
			urlSet.URLs = append(urlSet.URLs, sitemapURL{
				Loc:        h.BaseURL + routes.PathFor(tr.route, entry.Slug),
				LastMod:    entry.UpdatedAt.Format(time.DateOnly),
				ChangeFreq: tr.changeFreq,
				Priority:   tr.priority,
			})
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	fmt.Fprint(w, xml.Header)
	if err := xml.NewEncoder(w).Encode(urlSet); err != nil {
		h.Log.Error().Err(err).Msg("sitemap encoding failed")
	}
}

// Robots serves /robots.txt: allow everything except the admin and API
// surfaces, and point crawlers at the sitemap.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", h.BaseURL)
}
