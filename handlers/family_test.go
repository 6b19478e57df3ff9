package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
)

// stubPersonRepo serves a fixed person listing; only the read paths the
// handlers under test touch are implemented.
type stubPersonRepo struct {
	people []models.Person
}

func (s *stubPersonRepo) ListAll() ([]models.Person, error) { return s.people, nil }

func (s *stubPersonRepo) GetByID(id string) (*models.Person, error) {
	for i := range s.people {
		if s.people[i].ID == id {
			return &s.people[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPersonRepo) List(page, pageSize int) ([]models.Person, int64, error) {
	return s.people, int64(len(s.people)), nil
}

func (s *stubPersonRepo) Create(*models.Person) error                    { return nil }
func (s *stubPersonRepo) Update(string, map[string]interface{}) error    { return nil }
func (s *stubPersonRepo) Delete(string) error                            { return nil }
func (s *stubPersonRepo) DeleteMany([]string) error                      { return nil }
func (s *stubPersonRepo) ClearFatherReferences([]string) error           { return nil }
func (s *stubPersonRepo) ClearMotherReferences([]string) error           { return nil }
func (s *stubPersonRepo) UnlinkSpousesOf([]string) error                 { return nil }
func (s *stubPersonRepo) SetDeceased([]string, bool) error               { return nil }
func (s *stubPersonRepo) FindByParent(parentID string) ([]models.Person, error) {
	matches := []models.Person{}
	for _, p := range s.people {
		if (p.FatherID != nil && *p.FatherID == parentID) || (p.MotherID != nil && *p.MotherID == parentID) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}
func (s *stubPersonRepo) FindSiblingsByParents(fatherID, motherID *string, excludeID string) ([]models.Person, error) {
	matches := []models.Person{}
	for _, p := range s.people {
		if p.ID == excludeID {
			continue
		}
		if (fatherID != nil && p.FatherID != nil && *p.FatherID == *fatherID) ||
			(motherID != nil && p.MotherID != nil && *p.MotherID == *motherID) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}
func (s *stubPersonRepo) Transaction(fn func(repository.PersonRepositoryInterface) error) error {
	return fn(s)
}

func ref(s string) *string { return &s }

func familyFixture() []models.Person {
	father := models.Person{ID: "FATHER00", Name: "RAMESH", Gender: models.GenderMale, SpouseID: ref("MOTHER00")}
	mother := models.Person{ID: "MOTHER00", Name: "SITA", Gender: models.GenderFemale, SpouseID: ref("FATHER00")}
	focal := models.Person{ID: "FOCAL000", Name: "AMIT", Gender: models.GenderMale, FatherID: ref("FATHER00"), MotherID: ref("MOTHER00")}
	brother := models.Person{ID: "BROTHER0", Name: "KIRIT", Gender: models.GenderMale, FatherID: ref("FATHER00"), MotherID: ref("MOTHER00")}
	son := models.Person{ID: "SON00000", Name: "ROHAN", Gender: models.GenderMale, FatherID: ref("FOCAL000")}
	return []models.Person{father, mother, focal, brother, son}
}

func familyRouter(repo repository.PersonRepositoryInterface) *chi.Mux {
	fh := &FamilyHandler{Repo: repo}
	r := chi.NewRouter()
	r.Get("/api/people/{person_id}/family", fh.GetFamily)
	return r
}

func TestGetFamilyResponse(t *testing.T) {
	router := familyRouter(&stubPersonRepo{people: familyFixture()})

	req := httptest.NewRequest(http.MethodGet, "/api/people/FOCAL000/family", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Person struct {
			ID string `json:"id"`
		} `json:"person"`
		FatherCard *struct {
			Label string `json:"label"`
		} `json:"fatherCard"`
		MotherCard *struct {
			Label string `json:"label"`
		} `json:"motherCard"`
		SiblingCards []struct {
			Person struct {
				ID string `json:"id"`
			} `json:"person"`
			Label string `json:"label"`
		} `json:"siblingCards"`
		ChildCards []struct {
			Label string `json:"label"`
		} `json:"childCards"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "FOCAL000", resp.Person.ID)
	require.NotNil(t, resp.FatherCard)
	require.NotNil(t, resp.MotherCard)
	assert.Equal(t, "Pappa", resp.FatherCard.Label)
	assert.Equal(t, "Mummy", resp.MotherCard.Label)

	require.Len(t, resp.SiblingCards, 1)
	assert.Equal(t, "BROTHER0", resp.SiblingCards[0].Person.ID)
	assert.Equal(t, "Bhai", resp.SiblingCards[0].Label)

	require.Len(t, resp.ChildCards, 1)
	assert.Equal(t, "Dikro", resp.ChildCards[0].Label)
}

func TestGetFamilyUnknownPerson(t *testing.T) {
	router := familyRouter(&stubPersonRepo{people: familyFixture()})

	req := httptest.NewRequest(http.MethodGet, "/api/people/NOBODY00/family", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "not_found", resp.Errors[0].Code)
}
