package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/repository"
)

type PersonHandler struct {
	Persons repository.PersonRepositoryInterface
	Log     zerolog.Logger
}

// GetPerson returns a person by slug and bumps the view counter. The counter
// update runs after the response data is already loaded and never delays it.
func (h *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	person, err := h.Persons.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Person not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get person")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve person")
		return
	}

	personID := person.ID
	go func() {
		if err := h.Persons.IncrementViewCount(personID); err != nil {
			h.Log.Error().Err(err).Uint("person_id", personID).Msg("view count increment failed")
		}
	}()

	writeJSON(w, http.StatusOK, person)
}

// GetRelatedPersons returns persons sharing the subject's category, country
// or profession
func (h *PersonHandler) GetRelatedPersons(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	person, err := h.Persons.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Person not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get person")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve person")
		return
	}

	limit := queryInt(r, "limit", 6, 20)
	related, err := h.Persons.Related(person.ID, limit)
	if err != nil {
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to list related persons")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve related persons")
		return
	}
	writeJSON(w, http.StatusOK, related)
}

// ListRecentPersons returns the most recently added persons
func (h *PersonHandler) ListRecentPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Persons.ListRecent(queryInt(r, "limit", 20, 100))
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list recent persons")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve persons")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

// ListPopularPersons returns persons ordered by view count
func (h *PersonHandler) ListPopularPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Persons.ListPopular(queryInt(r, "limit", 20, 100))
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list popular persons")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve persons")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

// ListTodayPersons returns persons who died on today's month and day
func (h *PersonHandler) ListTodayPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Persons.ListDiedToday(queryInt(r, "limit", 20, 20))
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list today's persons")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve persons")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

// SearchPersons performs a name search; a blank query returns an empty list
func (h *PersonHandler) SearchPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Persons.Search(r.URL.Query().Get("q"))
	if err != nil {
		h.Log.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}
