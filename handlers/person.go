package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/config"
	"github.com/vasudha-connect/kinshipbackend/media"
	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
	"github.com/vasudha-connect/kinshipbackend/services"
)

type PersonHandler struct {
	Service *services.PersonService
	Repo    repository.PersonRepositoryInterface
	Avatars *media.AvatarProcessor
	Cfg     config.Config
}

// writeServiceError maps the service error taxonomy onto HTTP statuses:
// missing referenced records are 404, invariant violations are 422 with the
// reason shown verbatim, anything else is a store failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		WriteAPIError(w, http.StatusNotFound, "not_found", err.Error())
	case services.IsInvariantViolation(err):
		WriteAPIError(w, http.StatusUnprocessableEntity, "invariant_violation", err.Error())
	default:
		log.Printf("store error: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", err.Error())
	}
}

func (ph *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var draft models.Person
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	newID, err := ph.Service.CreatePerson(&draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	person, err := ph.Repo.GetByID(newID)
	if err != nil {
		log.Printf("Error fetching newly created person %s: %v", newID, err)
		writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Person created successfully", "id": newID})
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

func (ph *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	pageSize := ph.Cfg.DefaultPageSize
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			pageSize = parsed
		}
	}
	if pageSize > ph.Cfg.MaxPageSize {
		pageSize = ph.Cfg.MaxPageSize
	}

	people, total, err := ph.Repo.List(page, pageSize)
	if err != nil {
		log.Printf("Error listing people: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve people")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"people": people,
		"total":  total,
		"page":   page,
	})
}

func (ph *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	person, err := ph.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
		} else {
			log.Printf("Error getting person %s: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve person")
		}
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (ph *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	var updated models.Person
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	updated.ID = id

	if err := ph.Service.UpdatePerson(&updated); err != nil {
		writeServiceError(w, err)
		return
	}

	person, err := ph.Repo.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Person updated successfully"})
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (ph *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	if err := ph.Service.DeletePerson(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (ph *PersonHandler) BulkDeletePeople(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "No people selected."})
		return
	}

	if err := ph.Service.BulkDeletePersons(req.IDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": len(req.IDs)})
}

func (ph *PersonHandler) SetDeceasedStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs        []string `json:"ids"`
		IsDeceased bool     `json:"isDeceased"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if err := ph.Service.SetDeceasedStatus(req.IDs, req.IsDeceased); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deceased status updated."})
}

func (ph *PersonHandler) ClearRelation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	relation := chi.URLParam(r, "relation")

	if err := ph.Service.ClearRelation(id, relation); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully cleared " + relation + "."})
}

func (ph *PersonHandler) LinkSpouses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID1 string `json:"person_id_1"`
		PersonID2 string `json:"person_id_2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.PersonID1 == "" || req.PersonID2 == "" {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Missing required fields: person_id_1, person_id_2")
		return
	}

	if err := ph.Service.LinkSpouses(req.PersonID1, req.PersonID2); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Spouses linked successfully."})
}

func (ph *PersonHandler) UnlinkSpouses(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	if err := ph.Service.UnlinkSpouses(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Spouses unlinked successfully."})
}

// FindChildren serves the store's children shortcut query. It must agree
// with what the resolver derives from a full snapshot.
func (ph *PersonHandler) FindChildren(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	children, err := ph.Repo.FindByParent(id)
	if err != nil {
		log.Printf("Error finding children of %s: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve children")
		return
	}
	writeJSON(w, http.StatusOK, children)
}

// FindSiblings serves the store's sibling shortcut query for a person.
func (ph *PersonHandler) FindSiblings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	person, err := ph.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
		} else {
			WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve person")
		}
		return
	}
	siblings, err := ph.Repo.FindSiblingsByParents(person.FatherID, person.MotherID, person.ID)
	if err != nil {
		log.Printf("Error finding siblings of %s: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve siblings")
		return
	}
	writeJSON(w, http.StatusOK, siblings)
}

// UploadAvatar accepts a multipart image upload, crops it square and points
// the person's profile picture URL at the stored asset.
func (ph *PersonHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "person_id")
	if _, err := ph.Repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
		} else {
			WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to retrieve person")
		}
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "Missing uploaded file: "+err.Error())
		return
	}
	defer file.Close()

	url, err := ph.Avatars.SaveImage(id, file)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	if err := ph.Repo.Update(id, map[string]interface{}{"profile_picture_url": url}); err != nil {
		log.Printf("Error saving avatar URL for %s: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "store_failure", "Failed to save avatar URL")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profilePictureUrl": url})
}
