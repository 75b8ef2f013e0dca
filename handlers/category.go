package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/repository"
)

type CategoryHandler struct {
	Categories repository.CategoryRepositoryInterface
	Persons    repository.PersonRepositoryInterface
	Log        zerolog.Logger
}

// ListCategories returns all categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.ListAll()
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list categories")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory returns one category by slug
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	category, err := h.Categories.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get category")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve category")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// ListCategoryPersons returns the persons of one category
func (h *CategoryHandler) ListCategoryPersons(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	category, err := h.Categories.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get category")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve category")
		return
	}

	limit := queryInt(r, "limit", 50, 100)
	offset := queryInt(r, "offset", 0, 1<<20)
	persons, err := h.Persons.ListByCategory(category.ID, limit, offset)
	if err != nil {
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to list category persons")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve persons")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}
