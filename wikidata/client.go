// Package wikidata is a small client for the public Wikidata SPARQL endpoint.
// Every helper tolerates missing bindings: the upstream data is sparse and a
// missing field means unknown, never an error.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to a SPARQL endpoint over plain HTTP with a descriptive
// User-Agent and no authentication.
type Client struct {
	Endpoint   string
	UserAgent  string
	HTTPClient *http.Client
	Log        zerolog.Logger
}

// NewClient creates a client for the given SPARQL endpoint.
func NewClient(endpoint, userAgent string, log zerolog.Logger) *Client {
	return &Client{
		Endpoint:   endpoint,
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		Log:        log.With().Str("client", "wikidata").Logger(),
	}
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// query posts a SPARQL query and decodes the JSON result rows.
func (c *Client) query(ctx context.Context, sparql string) (*sparqlResponse, error) {
	form := url.Values{"query": {sparql}, "format": {"json"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build SPARQL request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SPARQL request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("SPARQL endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode SPARQL response: %w", err)
	}
	return &decoded, nil
}

// Entity is one mapped result row for a deceased person. Empty strings mean
// the binding was absent upstream.
type Entity struct {
	QID          string
	Name         string
	BirthDate    string
	DeathDate    string
	BirthPlace   string
	DeathPlace   string
	CauseOfDeath string
	CauseQID     string
	Occupation   string
	Country      string
	CountryQID   string
	ImageURL     string
	WikipediaURL string
}

const deceasedQuery = `
SELECT ?person ?personLabel ?birthDate ?deathDate ?birthPlaceLabel ?deathPlaceLabel
       ?cause ?causeLabel ?occupationLabel ?country ?countryLabel ?image ?article WHERE {
  ?person wdt:P31 wd:Q5 ;
          wdt:P570 ?deathDate ;
          wdt:P106 ?occupation ;
          wdt:P27 ?country .
  ?person wikibase:sitelinks ?sitelinks .
  FILTER(?sitelinks > 20)
  OPTIONAL { ?person wdt:P569 ?birthDate . }
  OPTIONAL { ?person wdt:P19 ?birthPlace . }
  OPTIONAL { ?person wdt:P20 ?deathPlace . }
  OPTIONAL { ?person wdt:P509 ?cause . }
  OPTIONAL { ?person wdt:P18 ?image . }
  OPTIONAL { ?article schema:about ?person ; schema:isPartOf <https://tr.wikipedia.org/> . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "tr,en". }
}
ORDER BY DESC(?sitelinks) ?person
LIMIT %d OFFSET %d`

// FetchDeceased returns one page of notable deceased people ordered by
// upstream prominence.
func (c *Client) FetchDeceased(ctx context.Context, limit, offset int) ([]Entity, error) {
	resp, err := c.query(ctx, fmt.Sprintf(deceasedQuery, limit, offset))
	if err != nil {
		return nil, err
	}

	entities := make([]Entity, 0, len(resp.Results.Bindings))
	seen := make(map[string]bool)
	for _, row := range resp.Results.Bindings {
		get := func(key string) string { return row[key].Value }

		qid := qidFromURI(get("person"))
		if qid == "" || seen[qid] {
			// duplicate rows appear when a person has several occupations
			continue
		}
		seen[qid] = true

		name := get("personLabel")
		if name == "" || name == qid {
			continue
		}

		entities = append(entities, Entity{
			QID:          qid,
			Name:         name,
			BirthDate:    isoDate(get("birthDate")),
			DeathDate:    isoDate(get("deathDate")),
			BirthPlace:   get("birthPlaceLabel"),
			DeathPlace:   get("deathPlaceLabel"),
			CauseOfDeath: get("causeLabel"),
			CauseQID:     qidFromURI(get("cause")),
			Occupation:   get("occupationLabel"),
			Country:      get("countryLabel"),
			CountryQID:   qidFromURI(get("country")),
			ImageURL:     get("image"),
			WikipediaURL: get("article"),
		})
	}
	return entities, nil
}

const imageQuery = `
SELECT ?image WHERE { wd:%s wdt:P18 ?image . } LIMIT 1`

// FetchImage returns the image URL for a single entity, or "" when it has
// none.
func (c *Client) FetchImage(ctx context.Context, qid string) (string, error) {
	resp, err := c.query(ctx, fmt.Sprintf(imageQuery, qid))
	if err != nil {
		return "", err
	}
	if len(resp.Results.Bindings) == 0 {
		return "", nil
	}
	return resp.Results.Bindings[0]["image"].Value, nil
}

const countryQuery = `
SELECT ?country ?countryLabel WHERE {
  wd:%s wdt:P27 ?country .
  SERVICE wikibase:label { bd:serviceParam wikibase:language "tr,en". }
} LIMIT 1`

// FetchCountry returns the country-of-citizenship label and QID for a single
// entity, or empty strings when unknown.
func (c *Client) FetchCountry(ctx context.Context, qid string) (name, countryQID string, err error) {
	resp, err := c.query(ctx, fmt.Sprintf(countryQuery, qid))
	if err != nil {
		return "", "", err
	}
	if len(resp.Results.Bindings) == 0 {
		return "", "", nil
	}
	row := resp.Results.Bindings[0]
	return row["countryLabel"].Value, qidFromURI(row["country"].Value), nil
}

// qidFromURI extracts "Q123" from an entity URI, returning "" for non-entity
// values.
func qidFromURI(uri string) string {
	idx := strings.LastIndex(uri, "/")
	if idx < 0 {
		return uri
	}
	id := uri[idx+1:]
	if !strings.HasPrefix(id, "Q") {
		return ""
	}
	return id
}

// isoDate trims a SPARQL dateTime ("1996-09-24T00:00:00Z") down to the ISO
// date part.
func isoDate(value string) string {
	if value == "" {
		return ""
	}
	if idx := strings.Index(value, "T"); idx > 0 {
		return value[:idx]
	}
	return value
}
