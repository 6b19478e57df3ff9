package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
	"github.com/vasudha-connect/kinshipbackend/utils"
)

// fakePersonRepo is an in-memory stand-in for the GORM repository. It
// mirrors the store contract exactly: GetByID returns
// gorm.ErrRecordNotFound for missing ids, Update fails the same way on a
// missing row, and the batch cascade writes match the SQL semantics.
type fakePersonRepo struct {
	people      map[string]*models.Person
	unlinkCalls int
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{people: map[string]*models.Person{}}
}

func (f *fakePersonRepo) add(p models.Person) {
	clone := p
	f.people[p.ID] = &clone
}

func (f *fakePersonRepo) Create(person *models.Person) error {
	clone := *person
	f.people[person.ID] = &clone
	return nil
}

func (f *fakePersonRepo) GetByID(id string) (*models.Person, error) {
	person, ok := f.people[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *person
	return &clone, nil
}

func (f *fakePersonRepo) List(page, pageSize int) ([]models.Person, int64, error) {
	all, err := f.ListAll()
	return all, int64(len(all)), err
}

func (f *fakePersonRepo) ListAll() ([]models.Person, error) {
	people := []models.Person{}
	for _, p := range f.people {
		people = append(people, *p)
	}
	return people, nil
}

func (f *fakePersonRepo) Update(id string, updates map[string]interface{}) error {
	person, ok := f.people[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		applyColumn(person, column, value)
	}
	return nil
}

func applyColumn(p *models.Person, column string, value interface{}) {
	switch column {
	case "name":
		p.Name = value.(string)
	case "surname":
		p.Surname = value.(string)
	case "maiden_name":
		p.MaidenName = value.(string)
	case "gender":
		p.Gender = value.(string)
	case "marital_status":
		p.MaritalStatus = value.(string)
	case "profile_picture_url":
		p.ProfilePictureURL = value.(string)
	case "is_deceased":
		p.IsDeceased = value.(bool)
	case "family":
		p.Family = toStrPtr(value)
	case "description":
		p.Description = toStrPtr(value)
	case "father_id":
		p.FatherID = toStrPtr(value)
	case "mother_id":
		p.MotherID = toStrPtr(value)
	case "spouse_id":
		p.SpouseID = toStrPtr(value)
	case "father_name":
		p.FatherName = toStrPtr(value)
	case "mother_name":
		p.MotherName = toStrPtr(value)
	case "spouse_name":
		p.SpouseName = toStrPtr(value)
	case "birth_month":
		p.BirthMonth = toStrPtr(value)
	case "birth_year":
		p.BirthYear = toStrPtr(value)
	case "death_date":
		p.DeathDate = toStrPtr(value)
	}
}

func toStrPtr(value interface{}) *string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return &v
	case *string:
		return v
	}
	panic("unsupported update value type")
}

func (f *fakePersonRepo) Delete(id string) error {
	if _, ok := f.people[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.people, id)
	return nil
}

func (f *fakePersonRepo) DeleteMany(ids []string) error {
	for _, id := range ids {
		delete(f.people, id)
	}
	return nil
}

func (f *fakePersonRepo) FindByParent(parentID string) ([]models.Person, error) {
	matches := []models.Person{}
	for _, p := range f.people {
		if refIs(p.FatherID, parentID) || refIs(p.MotherID, parentID) {
			matches = append(matches, *p)
		}
	}
	return matches, nil
}

func (f *fakePersonRepo) FindSiblingsByParents(fatherID, motherID *string, excludeID string) ([]models.Person, error) {
	matches := []models.Person{}
	if fatherID == nil && motherID == nil {
		return matches, nil
	}
	for _, p := range f.people {
		if p.ID == excludeID {
			continue
		}
		if (fatherID != nil && refIs(p.FatherID, *fatherID)) || (motherID != nil && refIs(p.MotherID, *motherID)) {
			matches = append(matches, *p)
		}
	}
	return matches, nil
}

func (f *fakePersonRepo) ClearFatherReferences(parentIDs []string) error {
	for _, p := range f.people {
		if refInSet(p.FatherID, parentIDs) {
			p.FatherID = nil
			p.FatherName = nil
		}
	}
	return nil
}

func (f *fakePersonRepo) ClearMotherReferences(parentIDs []string) error {
	for _, p := range f.people {
		if refInSet(p.MotherID, parentIDs) {
			p.MotherID = nil
			p.MotherName = nil
		}
	}
	return nil
}

func (f *fakePersonRepo) UnlinkSpousesOf(spouseIDs []string) error {
	f.unlinkCalls++
	for _, p := range f.people {
		if refInSet(p.SpouseID, spouseIDs) {
			p.SpouseID = nil
			p.SpouseName = nil
			p.MaritalStatus = models.MaritalStatusSingle
		}
	}
	return nil
}

func (f *fakePersonRepo) SetDeceased(ids []string, deceased bool) error {
	for _, id := range ids {
		if p, ok := f.people[id]; ok {
			p.IsDeceased = deceased
		}
	}
	return nil
}

func (f *fakePersonRepo) Transaction(fn func(repository.PersonRepositoryInterface) error) error {
	return fn(f)
}

func refIs(ref *string, id string) bool {
	return ref != nil && *ref == id
}

func refInSet(ref *string, ids []string) bool {
	if ref == nil {
		return false
	}
	for _, id := range ids {
		if *ref == id {
			return true
		}
	}
	return false
}

// fakeAvatarStore records calls so cascades can be asserted on.
type fakeAvatarStore struct {
	saved   []string
	removed []string
}

func (f *fakeAvatarStore) SaveDataURI(personID, dataURI string) (string, error) {
	f.saved = append(f.saved, personID)
	return "http://localhost:8080/api/media/avatars/" + personID + ".jpeg", nil
}

func (f *fakeAvatarStore) Remove(personID string) {
	f.removed = append(f.removed, personID)
}

func newService() (*PersonService, *fakePersonRepo, *fakeAvatarStore) {
	repo := newFakePersonRepo()
	avatars := &fakeAvatarStore{}
	return NewPersonService(repo, avatars), repo, avatars
}

func seedPerson(repo *fakePersonRepo, id, name, gender string) {
	repo.add(models.Person{ID: id, Name: name, Gender: gender})
}

func strPtr(s string) *string { return &s }

func TestCreatePersonAssignsIDAndDefaults(t *testing.T) {
	svc, repo, _ := newService()

	id, err := svc.CreatePerson(&models.Person{Name: "AMIT", Gender: models.GenderMale})
	require.NoError(t, err)
	assert.Len(t, id, utils.PersonIDLength)

	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "AMIT", stored.Name)
	assert.Equal(t, PlaceholderPictureURL, stored.ProfilePictureURL)
}

func TestCreatePersonRejectsInvalidDrafts(t *testing.T) {
	svc, _, _ := newService()

	cases := []struct {
		name  string
		draft models.Person
	}{
		{"lowercase name", models.Person{Name: "amit", Gender: models.GenderMale}},
		{"empty name", models.Person{Name: "", Gender: models.GenderMale}},
		{"name with spaces", models.Person{Name: "AMIT KUMAR", Gender: models.GenderMale}},
		{"unknown gender", models.Person{Name: "AMIT", Gender: "other"}},
		{"unknown marital status", models.Person{Name: "AMIT", Gender: models.GenderMale, MaritalStatus: "divorced"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePerson(&tc.draft)
			require.Error(t, err)
			assert.True(t, IsInvariantViolation(err))
		})
	}
}

func TestCreatePersonStripsHTMLBeforeValidation(t *testing.T) {
	svc, repo, _ := newService()

	id, err := svc.CreatePerson(&models.Person{Name: "<b>AMIT</b>", Gender: models.GenderMale})
	require.NoError(t, err)

	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "AMIT", stored.Name)
}

func TestCreatePersonChecksParentGenders(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "FATHER00", "RAMESH", models.GenderMale)
	seedPerson(repo, "MOTHER00", "SITA", models.GenderFemale)

	_, err := svc.CreatePerson(&models.Person{Name: "AMIT", Gender: models.GenderMale, FatherID: strPtr("MOTHER00")})
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))

	_, err = svc.CreatePerson(&models.Person{Name: "AMIT", Gender: models.GenderMale, MotherID: strPtr("FATHER00")})
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))

	_, err = svc.CreatePerson(&models.Person{
		Name: "AMIT", Gender: models.GenderMale,
		FatherID: strPtr("FATHER00"), MotherID: strPtr("MOTHER00"),
	})
	assert.NoError(t, err)
}

func TestCreatePersonRejectsUnknownParent(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.CreatePerson(&models.Person{Name: "AMIT", Gender: models.GenderMale, FatherID: strPtr("MISSING0")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePersonNullsNameFallbacksWhenIDIsSet(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "FATHER00", "RAMESH", models.GenderMale)

	id, err := svc.CreatePerson(&models.Person{
		Name: "AMIT", Gender: models.GenderMale,
		FatherID: strPtr("FATHER00"), FatherName: strPtr("RAMESHBHAI"),
		MotherName: strPtr("SITABEN"),
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(id)
	require.NoError(t, err)
	assert.Nil(t, stored.FatherName, "free-text name must not survive alongside the id")
	require.NotNil(t, stored.MotherName, "free-text name without an id stays")
	assert.Equal(t, "SITABEN", *stored.MotherName)
}

func TestCreatePersonLinksSpouseSymmetrically(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "PRIYA000", "PRIYA", models.GenderFemale)

	id, err := svc.CreatePerson(&models.Person{Name: "AMIT", Gender: models.GenderMale, SpouseID: strPtr("PRIYA000")})
	require.NoError(t, err)

	amit, err := repo.GetByID(id)
	require.NoError(t, err)
	priya, err := repo.GetByID("PRIYA000")
	require.NoError(t, err)

	require.NotNil(t, amit.SpouseID)
	require.NotNil(t, priya.SpouseID)
	assert.Equal(t, "PRIYA000", *amit.SpouseID)
	assert.Equal(t, id, *priya.SpouseID)
	assert.Equal(t, models.MaritalStatusMarried, amit.MaritalStatus)
	assert.Equal(t, models.MaritalStatusMarried, priya.MaritalStatus)
}

func TestCreatePersonRejectsTakenSpouseBeforeInsert(t *testing.T) {
	svc, repo, _ := newService()
	priya := models.Person{ID: "PRIYA000", Name: "PRIYA", Gender: models.GenderFemale, SpouseID: strPtr("OTHER000")}
	repo.add(priya)
	seedPerson(repo, "OTHER000", "OTHER", models.GenderMale)

	_, err := svc.CreatePerson(&models.Person{Name: "AMIT", Gender: models.GenderMale, SpouseID: strPtr("PRIYA000")})
	require.Error(t, err)
	assert.True(t, IsInvariantViolation(err))
	assert.Len(t, repo.people, 2, "a rejected link must not leave a new record behind")
}

func TestLinkSpousesInvariants(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "AMIT0000", "AMIT", models.GenderMale)
	seedPerson(repo, "VIJAY000", "VIJAY", models.GenderMale)
	seedPerson(repo, "PRIYA000", "PRIYA", models.GenderFemale)
	seedPerson(repo, "ASHA0000", "ASHA", models.GenderFemale)

	err := svc.LinkSpouses("AMIT0000", "AMIT0000")
	assert.True(t, IsInvariantViolation(err), "self link")

	err = svc.LinkSpouses("AMIT0000", "VIJAY000")
	assert.True(t, IsInvariantViolation(err), "same gender")

	err = svc.LinkSpouses("AMIT0000", "MISSING0")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.LinkSpouses("AMIT0000", "PRIYA000"))

	err = svc.LinkSpouses("VIJAY000", "PRIYA000")
	assert.True(t, IsInvariantViolation(err), "third party")

	err = svc.LinkSpouses("AMIT0000", "ASHA0000")
	assert.True(t, IsInvariantViolation(err), "already married elsewhere")

	// re-linking the same pair is a no-op success
	assert.NoError(t, svc.LinkSpouses("AMIT0000", "PRIYA000"))
	assert.NoError(t, svc.LinkSpouses("PRIYA000", "AMIT0000"))
}

func TestUnlinkSpousesClearsBothSides(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "AMIT0000", "AMIT", models.GenderMale)
	seedPerson(repo, "PRIYA000", "PRIYA", models.GenderFemale)
	require.NoError(t, svc.LinkSpouses("AMIT0000", "PRIYA000"))

	require.NoError(t, svc.UnlinkSpouses("AMIT0000"))

	amit, _ := repo.GetByID("AMIT0000")
	priya, _ := repo.GetByID("PRIYA000")
	assert.Nil(t, amit.SpouseID)
	assert.Nil(t, priya.SpouseID)
	assert.Equal(t, models.MaritalStatusSingle, amit.MaritalStatus)
	assert.Equal(t, models.MaritalStatusSingle, priya.MaritalStatus)

	// unlinking an unmarried person is a no-op success
	assert.NoError(t, svc.UnlinkSpouses("AMIT0000"))
}

func TestUpdatePersonSwitchingSpouseUnlinksOldPair(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "AMIT0000", "AMIT", models.GenderMale)
	seedPerson(repo, "PRIYA000", "PRIYA", models.GenderFemale)
	seedPerson(repo, "ASHA0000", "ASHA", models.GenderFemale)
	require.NoError(t, svc.LinkSpouses("AMIT0000", "PRIYA000"))

	updated := models.Person{ID: "AMIT0000", Name: "AMIT", Gender: models.GenderMale, SpouseID: strPtr("ASHA0000")}
	require.NoError(t, svc.UpdatePerson(&updated))

	priya, _ := repo.GetByID("PRIYA000")
	assert.Nil(t, priya.SpouseID)
	assert.Equal(t, models.MaritalStatusSingle, priya.MaritalStatus)

	amit, _ := repo.GetByID("AMIT0000")
	asha, _ := repo.GetByID("ASHA0000")
	require.NotNil(t, amit.SpouseID)
	require.NotNil(t, asha.SpouseID)
	assert.Equal(t, "ASHA0000", *amit.SpouseID)
	assert.Equal(t, "AMIT0000", *asha.SpouseID)
}

func TestUpdatePersonNotFound(t *testing.T) {
	svc, _, _ := newService()

	err := svc.UpdatePerson(&models.Person{ID: "MISSING0", Name: "AMIT", Gender: models.GenderMale})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearRelation(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "FATHER00", "RAMESH", models.GenderMale)
	repo.add(models.Person{
		ID: "AMIT0000", Name: "AMIT", Gender: models.GenderMale,
		FatherID: strPtr("FATHER00"), MotherName: strPtr("SITABEN"),
	})

	require.NoError(t, svc.ClearRelation("AMIT0000", "father"))
	amit, _ := repo.GetByID("AMIT0000")
	assert.Nil(t, amit.FatherID)
	assert.Nil(t, amit.FatherName)
	assert.NotNil(t, amit.MotherName, "clearing one relation must not touch the other")

	err := svc.ClearRelation("AMIT0000", "cousin")
	assert.True(t, IsInvariantViolation(err))

	err = svc.ClearRelation("MISSING0", "father")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePersonCascades(t *testing.T) {
	svc, repo, avatars := newService()
	seedPerson(repo, "RAMESH00", "RAMESH", models.GenderMale)
	seedPerson(repo, "SITA0000", "SITA", models.GenderFemale)
	require.NoError(t, svc.LinkSpouses("RAMESH00", "SITA0000"))
	repo.add(models.Person{ID: "AMIT0000", Name: "AMIT", Gender: models.GenderMale, FatherID: strPtr("RAMESH00")})
	repo.add(models.Person{ID: "KIRAN000", Name: "KIRAN", Gender: models.GenderFemale, FatherID: strPtr("RAMESH00")})

	require.NoError(t, svc.DeletePerson("RAMESH00"))

	_, err := repo.GetByID("RAMESH00")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	amit, _ := repo.GetByID("AMIT0000")
	kiran, _ := repo.GetByID("KIRAN000")
	assert.Nil(t, amit.FatherID, "children must not keep a dangling father id")
	assert.Nil(t, kiran.FatherID)

	sita, _ := repo.GetByID("SITA0000")
	assert.Nil(t, sita.SpouseID)
	assert.Equal(t, models.MaritalStatusSingle, sita.MaritalStatus)

	assert.Contains(t, avatars.removed, "RAMESH00")
}

func TestDeletePersonNotFound(t *testing.T) {
	svc, _, _ := newService()
	assert.ErrorIs(t, svc.DeletePerson("MISSING0"), ErrNotFound)
}

func TestBulkDeleteInternalPairNeedsNoUnlink(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "RAMESH00", "RAMESH", models.GenderMale)
	seedPerson(repo, "SITA0000", "SITA", models.GenderFemale)
	require.NoError(t, svc.LinkSpouses("RAMESH00", "SITA0000"))

	repo.unlinkCalls = 0
	require.NoError(t, svc.BulkDeletePersons([]string{"RAMESH00", "SITA0000"}))

	assert.Empty(t, repo.people)
	assert.Zero(t, repo.unlinkCalls, "a pair deleted together needs no spouse unlink pass")
}

func TestBulkDeleteUnlinksSurvivingSpouses(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "RAMESH00", "RAMESH", models.GenderMale)
	seedPerson(repo, "SITA0000", "SITA", models.GenderFemale)
	seedPerson(repo, "MOHAN000", "MOHAN", models.GenderMale)
	require.NoError(t, svc.LinkSpouses("RAMESH00", "SITA0000"))

	require.NoError(t, svc.BulkDeletePersons([]string{"RAMESH00", "MOHAN000"}))

	sita, err := repo.GetByID("SITA0000")
	require.NoError(t, err)
	assert.Nil(t, sita.SpouseID)
	assert.Equal(t, models.MaritalStatusSingle, sita.MaritalStatus)
	assert.Equal(t, 1, repo.unlinkCalls)
}

func TestBulkDeleteSkipsUnknownIDs(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "RAMESH00", "RAMESH", models.GenderMale)

	require.NoError(t, svc.BulkDeletePersons([]string{"RAMESH00", "MISSING0"}))
	assert.Empty(t, repo.people)
}

func TestSetDeceasedStatus(t *testing.T) {
	svc, repo, _ := newService()
	seedPerson(repo, "RAMESH00", "RAMESH", models.GenderMale)
	seedPerson(repo, "SITA0000", "SITA", models.GenderFemale)

	require.NoError(t, svc.SetDeceasedStatus([]string{"RAMESH00", "SITA0000"}, true))
	ramesh, _ := repo.GetByID("RAMESH00")
	sita, _ := repo.GetByID("SITA0000")
	assert.True(t, ramesh.IsDeceased)
	assert.True(t, sita.IsDeceased)

	require.NoError(t, svc.SetDeceasedStatus([]string{"RAMESH00"}, false))
	ramesh, _ = repo.GetByID("RAMESH00")
	assert.False(t, ramesh.IsDeceased)
}

func TestCreatePersonStoresDataURIAvatar(t *testing.T) {
	svc, repo, avatars := newService()

	id, err := svc.CreatePerson(&models.Person{
		Name: "AMIT", Gender: models.GenderMale,
		ProfilePictureURL: "data:image/png;base64,aGVsbG8=",
	})
	require.NoError(t, err)

	assert.Contains(t, avatars.saved, id)
	stored, _ := repo.GetByID(id)
	assert.Contains(t, stored.ProfilePictureURL, id+".jpeg")
}
