package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
)

type SuggestionHandler struct {
	Repo       repository.SuggestionRepositoryInterface
	PersonRepo repository.PersonRepositoryInterface
}

// CreateSuggestion records a correction submitted from a profile page. It is
// the one unauthenticated write endpoint, so the message is required and the
// profile name is backfilled from the store rather than trusted.
func (sh *SuggestionHandler) CreateSuggestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID   string `json:"profile_id"`
		ProfileName string `json:"profile_name"`
		Message     string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Suggestion message cannot be empty")
		return
	}

	if req.ProfileID != "" {
		person, err := sh.PersonRepo.GetByID(req.ProfileID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
				return
			}
			WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to verify person")
			return
		}
		req.ProfileName = person.Name
	}

	suggestion := &models.Suggestion{
		ProfileID:   req.ProfileID,
		ProfileName: req.ProfileName,
		Message:     req.Message,
	}
	if err := sh.Repo.Create(suggestion); err != nil {
		log.Printf("Error creating suggestion: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to save suggestion")
		return
	}
	writeJSON(w, http.StatusCreated, suggestion)
}

func (sh *SuggestionHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := sh.Repo.ListAll()
	if err != nil {
		log.Printf("Error listing suggestions: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve suggestions")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (sh *SuggestionHandler) DeleteSuggestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "suggestion_id")
	if err := sh.Repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Suggestion not found")
			return
		}
		log.Printf("Error deleting suggestion %s: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to delete suggestion")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
