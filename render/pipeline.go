package render

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nasiloldu/backend/routes"
	"github.com/nasiloldu/backend/seo"
)

// Document is a composed SSR response.
type Document struct {
	HTML   string
	Status int
}

// Renderer composes complete HTML documents: route classification, prefetch,
// page render, cache serialization and head injection over the static client
// shell loaded once at startup.
type Renderer struct {
	shell      string
	Prefetcher *Prefetcher
	Meta       *seo.Generator
	Log        zerolog.Logger
}

// NewRenderer loads the client shell from disk. A missing or malformed shell
// is a startup-class failure, not a per-request one.
func NewRenderer(shellPath string, prefetcher *Prefetcher, meta *seo.Generator, log zerolog.Logger) (*Renderer, error) {
	raw, err := os.ReadFile(shellPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read client shell %s: %w", shellPath, err)
	}
	shell := string(raw)
	if !rootDivRe.MatchString(shell) {
		return nil, fmt.Errorf("client shell %s has no empty mount point <div id=\"root\">", shellPath)
	}
	return &Renderer{shell: shell, Prefetcher: prefetcher, Meta: meta, Log: log}, nil
}

// Shell returns the unmodified client shell, served when rendering fails so
// the client falls back to fetching its own data.
func (r *Renderer) Shell() string {
	return r.shell
}

// RenderDocument produces the full document for a request path. Any error is
// returned to the caller, which serves the plain shell instead; a not-found
// entity is not an error but yields a 404-status document with not-found
// content.
func (r *Renderer) RenderDocument(ctx context.Context, path string) (*Document, error) {
	match := routes.Classify(path)

	cache := NewCache()
	if err := r.Prefetcher.Prefetch(ctx, match, cache); err != nil {
		return nil, err
	}

	markup, err := renderPage(match, cache)
	if err != nil {
		return nil, err
	}

	doc, err := injectMarkup(r.shell, markup)
	if err != nil {
		return nil, err
	}

	state, err := cache.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize prefetch cache: %w", err)
	}
	doc = injectState(doc, state)

	// metadata failures degrade to the shell's default head rather than
	// failing the whole document
	md, err := r.Meta.For(path)
	if err != nil {
		r.Log.Error().Err(err).Str("path", path).Msg("metadata generation failed, serving defaults")
		md = nil
	}
	if md != nil {
		doc = InjectMetadata(doc, md)
	}

	return &Document{HTML: doc, Status: r.statusFor(match, cache)}, nil
}

func (r *Renderer) statusFor(match routes.Match, cache *Cache) int {
	switch match.Name {
	case routes.NotFound:
		return http.StatusNotFound
	case routes.Person:
		if v, _ := cache.Get(KeyPerson(match.Param)); v == nil {
			return http.StatusNotFound
		}
	case routes.Category, routes.Country, routes.Profession:
		key := strings.ToLower(string(match.Name)) + ":" + match.Param
		if v, _ := cache.Get(key); v == nil {
			return http.StatusNotFound
		}
	}
	return http.StatusOK
}
