package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/repository"
)

type ProfessionHandler struct {
	Professions repository.ProfessionRepositoryInterface
	Persons     repository.PersonRepositoryInterface
	Log         zerolog.Logger
}

// ListProfessions returns all professions
func (h *ProfessionHandler) ListProfessions(w http.ResponseWriter, r *http.Request) {
	professions, err := h.Professions.ListAll()
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list professions")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve professions")
		return
	}
	writeJSON(w, http.StatusOK, professions)
}

// GetProfession returns one profession by slug
func (h *ProfessionHandler) GetProfession(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	profession, err := h.Professions.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Profession not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get profession")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve profession")
		return
	}
	writeJSON(w, http.StatusOK, profession)
}

// ListProfessionPersons returns the persons of one profession
func (h *ProfessionHandler) ListProfessionPersons(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	profession, err := h.Professions.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Profession not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get profession")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve profession")
		return
	}

	limit := queryInt(r, "limit", 50, 100)
	offset := queryInt(r, "offset", 0, 1<<20)
	persons, err := h.Persons.ListByProfession(profession.ID, limit, offset)
	if err != nil {
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to list profession persons")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve persons")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}
