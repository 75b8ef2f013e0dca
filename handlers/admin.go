package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nasiloldu/backend/config"
	"github.com/nasiloldu/backend/database"
	"github.com/nasiloldu/backend/importer"
	"github.com/nasiloldu/backend/repository"
)

const jwtExpirationHours = 24

type AdminHandler struct {
	Users    repository.UserRepositoryInterface
	Importer *importer.Service
	StatsDB  *sql.DB
	Cfg      config.Config
	Log      zerolog.Logger
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks the submitted credentials against the stored bcrypt hash and
// issues a session token. Failure responses never reveal which field was
// wrong.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	user, err := h.Users.GetByUsername(payload.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Log.Error().Err(err).Msg("login lookup failed")
		}
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !user.CheckPassword(payload.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	expirationTime := time.Now().Add(jwtExpirationHours * time.Hour)
	claims := &jwt.RegisteredClaims{
		Subject:   fmt.Sprint(user.ID),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "nasiloldu-backend",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(h.Cfg.JWTSecret))
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to sign session token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     tokenString,
		Username:  user.Username,
		ExpiresAt: expirationTime,
	})
}

// GetStats returns the dashboard counters
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := database.GetDashboardStats(h.StatsDB)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to load dashboard stats")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ImportFromWikidata triggers a full import run and blocks until it finishes.
// Runs take minutes; a mid-run failure loses nothing already committed,
// because every row is checked against its Wikidata ID before insert.
func (h *AdminHandler) ImportFromWikidata(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Importer.Run(r.Context(), importer.Options{
		BatchSize:  h.Cfg.ImportBatchSize,
		BatchDelay: h.Cfg.ImportBatchDelay,
		MaxBatches: h.Cfg.ImportMaxBatches,
	})
	if err != nil {
		h.Log.Error().Err(err).Msg("wikidata import failed")
		writeError(w, http.StatusBadGateway, "Import failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
