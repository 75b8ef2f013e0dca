package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/repository"
)

type CountryHandler struct {
	Countries repository.CountryRepositoryInterface
	Persons   repository.PersonRepositoryInterface
	Log       zerolog.Logger
}

// ListCountries returns all countries
func (h *CountryHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Countries.ListAll()
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list countries")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve countries")
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

// GetCountry returns one country by slug
func (h *CountryHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	country, err := h.Countries.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Country not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get country")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve country")
		return
	}
	writeJSON(w, http.StatusOK, country)
}

// ListCountryPersons returns the persons of one country
func (h *CountryHandler) ListCountryPersons(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	country, err := h.Countries.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "Country not found")
			return
		}
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to get country")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve country")
		return
	}

	limit := queryInt(r, "limit", 50, 100)
	offset := queryInt(r, "offset", 0, 1<<20)
	persons, err := h.Persons.ListByCountry(country.ID, limit, offset)
	if err != nil {
		h.Log.Error().Err(err).Str("slug", slug).Msg("failed to list country persons")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve persons")
		return
	}
	writeJSON(w, http.StatusOK, persons)
}
