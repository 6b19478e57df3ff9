package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/models"
	"github.com/vasudha-connect/kinshipbackend/repository"
	"github.com/vasudha-connect/kinshipbackend/utils"
)

// PlaceholderPictureURL is used while a person has no uploaded picture.
const PlaceholderPictureURL = "https://placehold.co/150x150.png"

const maxIDGenerationAttempts = 10

// AvatarStore is the slice of the media layer the person service depends on.
type AvatarStore interface {
	// SaveDataURI processes an uploaded data-URI image for a person and
	// returns the public URL of the stored avatar.
	SaveDataURI(personID, dataURI string) (string, error)
	// Remove deletes any stored avatar for a person. Best effort.
	Remove(personID string)
}

// PersonService enforces the referential invariants of the person graph at
// every mutation entry point: spouse links stay symmetric, parent links
// point at the right gender, and deletions never leave a dangling id behind.
// Each requested change is translated into the full set of store writes
// needed to keep the graph consistent, run inside one store transaction.
type PersonService struct {
	repo    repository.PersonRepositoryInterface
	avatars AvatarStore
}

// NewPersonService creates a new PersonService. avatars may be nil when no
// media store is configured; picture handling is then skipped.
func NewPersonService(repo repository.PersonRepositoryInterface, avatars AvatarStore) *PersonService {
	return &PersonService{repo: repo, avatars: avatars}
}

// CreatePerson validates a draft, assigns it a fresh unique id and inserts
// it. A supplied spouse id is applied as a symmetric link right after the
// insert. The draft's FatherID/MotherID must point at a person of the right
// gender for the role; a mismatch rejects the whole operation before
// anything is written.
func (s *PersonService) CreatePerson(draft *models.Person) (string, error) {
	sanitizePerson(draft)
	if err := draft.Validate(); err != nil {
		return "", &InvariantError{Reason: err.Error()}
	}
	if err := s.checkParentRoles(draft); err != nil {
		return "", err
	}

	spouseID := draft.SpouseID
	if spouseID != nil {
		// validated up-front so an impossible link does not leave a
		// spouseless record behind
		candidate, err := s.spouseCandidate(*spouseID, draft.Gender)
		if err != nil {
			return "", err
		}
		if candidate.SpouseID != nil {
			return "", invariantf("%s is already linked to another spouse. Please unlink them first.", candidate.Name)
		}
	}

	newID, err := s.generateUniqueID()
	if err != nil {
		return "", err
	}
	draft.ID = newID

	// the id always wins over stale free text
	if draft.FatherID != nil {
		draft.FatherName = nil
	}
	if draft.MotherID != nil {
		draft.MotherName = nil
	}
	if spouseID != nil {
		draft.SpouseName = nil
	}
	// the symmetric link below sets both sides together
	draft.SpouseID = nil

	if draft.ProfilePictureURL == "" {
		draft.ProfilePictureURL = PlaceholderPictureURL
	}
	if s.avatars != nil && strings.HasPrefix(draft.ProfilePictureURL, "data:image") {
		url, err := s.avatars.SaveDataURI(newID, draft.ProfilePictureURL)
		if err != nil {
			return "", fmt.Errorf("failed to store profile picture: %w", err)
		}
		draft.ProfilePictureURL = url
	}

	if err := s.repo.Create(draft); err != nil {
		return "", err
	}

	if spouseID != nil {
		if err := s.LinkSpouses(newID, *spouseID); err != nil {
			return newID, fmt.Errorf("person %s created but spouse link failed: %w", newID, err)
		}
	}
	return newID, nil
}

// UpdatePerson applies an edited record. When the spouse id changed the old
// pairing is unlinked before the new one is linked, and any free-text
// relative name is nulled whenever the corresponding id is set.
func (s *PersonService) UpdatePerson(updated *models.Person) error {
	sanitizePerson(updated)
	if err := updated.Validate(); err != nil {
		return &InvariantError{Reason: err.Error()}
	}
	if err := s.checkParentRoles(updated); err != nil {
		return err
	}

	original, err := s.repo.GetByID(updated.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, updated.ID)
		}
		return err
	}

	newSpouseID := updated.SpouseID
	if newSpouseID != nil {
		candidate, err := s.spouseCandidate(*newSpouseID, updated.Gender)
		if err != nil {
			return err
		}
		if candidate.SpouseID != nil && *candidate.SpouseID != updated.ID {
			return invariantf("%s is already linked to another spouse. Please unlink them first.", candidate.Name)
		}
	}

	if updated.ProfilePictureURL == "" {
		updated.ProfilePictureURL = PlaceholderPictureURL
	}
	if s.avatars != nil && strings.HasPrefix(updated.ProfilePictureURL, "data:image") {
		url, err := s.avatars.SaveDataURI(updated.ID, updated.ProfilePictureURL)
		if err != nil {
			return fmt.Errorf("failed to store profile picture: %w", err)
		}
		updated.ProfilePictureURL = url
	}

	// reconcile spouse symmetry before the row itself changes
	oldSpouseID := original.SpouseID
	if oldSpouseID != nil && (newSpouseID == nil || *newSpouseID != *oldSpouseID) {
		if err := s.UnlinkSpouses(updated.ID); err != nil {
			return err
		}
	}

	if updated.FatherID != nil {
		updated.FatherName = nil
	}
	if updated.MotherID != nil {
		updated.MotherName = nil
	}
	if newSpouseID != nil {
		updated.SpouseName = nil
	}

	updates := map[string]interface{}{
		"name":                updated.Name,
		"surname":             updated.Surname,
		"maiden_name":         updated.MaidenName,
		"family":              updated.Family,
		"gender":              updated.Gender,
		"marital_status":      updated.MaritalStatus,
		"father_id":           updated.FatherID,
		"mother_id":           updated.MotherID,
		"father_name":         updated.FatherName,
		"mother_name":         updated.MotherName,
		"spouse_name":         updated.SpouseName,
		"birth_month":         updated.BirthMonth,
		"birth_year":          updated.BirthYear,
		"profile_picture_url": updated.ProfilePictureURL,
		"description":         updated.Description,
		"is_deceased":         updated.IsDeceased,
		"death_date":          updated.DeathDate,
	}
	if err := s.repo.Update(updated.ID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, updated.ID)
		}
		return err
	}

	if newSpouseID != nil {
		return s.LinkSpouses(updated.ID, *newSpouseID)
	}
	return nil
}

// LinkSpouses symmetrically links two people. Re-linking an existing pair is
// a no-op success; linking someone already married to a third party, to a
// person of the same gender, or to themselves is an invariant violation.
// Both sides are written in one transaction so no one-way link is ever
// observable.
func (s *PersonService) LinkSpouses(idA, idB string) error {
	if idA == idB {
		return invariantf("a person cannot be linked to themselves")
	}
	a, err := s.getPerson(idA)
	if err != nil {
		return err
	}
	b, err := s.getPerson(idB)
	if err != nil {
		return err
	}

	if a.Gender == b.Gender {
		return invariantf("Spouses must have different genders.")
	}
	if a.SpouseID != nil && *a.SpouseID == idB && b.SpouseID != nil && *b.SpouseID == idA {
		return nil // already linked to each other
	}
	if a.SpouseID != nil && *a.SpouseID != idB {
		return invariantf("%s is already linked to another spouse. Please unlink them first.", a.Name)
	}
	if b.SpouseID != nil && *b.SpouseID != idA {
		return invariantf("%s is already linked to another spouse. Please unlink them first.", b.Name)
	}

	return s.repo.Transaction(func(tx repository.PersonRepositoryInterface) error {
		if err := tx.Update(idA, spouseLinkUpdates(idB)); err != nil {
			return err
		}
		return tx.Update(idB, spouseLinkUpdates(idA))
	})
}

// UnlinkSpouses clears a person's spouse pairing from both sides. A person
// with no spouse is a no-op success, which also makes the operation
// idempotent.
func (s *PersonService) UnlinkSpouses(id string) error {
	person, err := s.getPerson(id)
	if err != nil {
		return err
	}
	if person.SpouseID == nil {
		return nil
	}
	spouseID := *person.SpouseID

	return s.repo.Transaction(func(tx repository.PersonRepositoryInterface) error {
		if err := tx.Update(id, spouseClearUpdates()); err != nil {
			return err
		}
		return tx.Update(spouseID, spouseClearUpdates())
	})
}

// ClearRelation nulls the father or mother link (and its paired free-text
// name) on one person. Nothing else is cascaded.
func (s *PersonService) ClearRelation(id, role string) error {
	var updates map[string]interface{}
	switch role {
	case "father":
		updates = map[string]interface{}{"father_id": nil, "father_name": nil}
	case "mother":
		updates = map[string]interface{}{"mother_id": nil, "mother_name": nil}
	default:
		return invariantf("unknown relation %q, expected father or mother", role)
	}
	if err := s.repo.Update(id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// DeletePerson removes one person and every reference to them.
func (s *PersonService) DeletePerson(id string) error {
	if _, err := s.getPerson(id); err != nil {
		return err
	}
	return s.deleteCascade([]string{id})
}

// BulkDeletePersons removes a set of people. Spouses outside the deletion
// set are unlinked as a batch; pairs wholly inside the set need no unlink
// step since both records disappear together. Ids not present in the store
// are skipped.
func (s *PersonService) BulkDeletePersons(ids []string) error {
	return s.deleteCascade(ids)
}

// SetDeceasedStatus flips the deceased flag on a set of people.
func (s *PersonService) SetDeceasedStatus(ids []string, deceased bool) error {
	return s.repo.SetDeceased(ids, deceased)
}

// deleteCascade is the single cascade routine behind both delete entry
// points. The write order is fixed: spouse unlink, then father reference
// clearing, then mother reference clearing, then the rows themselves. All
// steps share one transaction; any failure rolls the cascade back.
func (s *PersonService) deleteCascade(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	inSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		inSet[id] = true
	}

	// deleted people whose spouse survives the deletion: only their
	// partners need the batch unlink
	externallyMarried := []string{}
	for _, id := range ids {
		person, err := s.repo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if person.SpouseID != nil && !inSet[*person.SpouseID] {
			externallyMarried = append(externallyMarried, person.ID)
		}
	}

	err := s.repo.Transaction(func(tx repository.PersonRepositoryInterface) error {
		if len(externallyMarried) > 0 {
			if err := tx.UnlinkSpousesOf(externallyMarried); err != nil {
				return err
			}
		}
		if err := tx.ClearFatherReferences(ids); err != nil {
			return err
		}
		if err := tx.ClearMotherReferences(ids); err != nil {
			return err
		}
		return tx.DeleteMany(ids)
	})
	if err != nil {
		return err
	}

	if s.avatars != nil {
		for _, id := range ids {
			s.avatars.Remove(id)
		}
	}
	return nil
}

func (s *PersonService) generateUniqueID() (string, error) {
	for attempt := 0; attempt < maxIDGenerationAttempts; attempt++ {
		id, err := utils.GeneratePersonID()
		if err != nil {
			return "", err
		}
		_, err = s.repo.GetByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
		// collision, regenerate
	}
	return "", fmt.Errorf("could not generate a unique person id after %d attempts", maxIDGenerationAttempts)
}

// checkParentRoles verifies that the father link points at a man and the
// mother link at a woman. This is an enforced precondition, not a
// self-healing invariant.
func (s *PersonService) checkParentRoles(p *models.Person) error {
	if p.FatherID != nil {
		father, err := s.getPerson(*p.FatherID)
		if err != nil {
			return err
		}
		if father.Gender != models.GenderMale {
			return invariantf("%s cannot be a father: record is not male", father.Name)
		}
	}
	if p.MotherID != nil {
		mother, err := s.getPerson(*p.MotherID)
		if err != nil {
			return err
		}
		if mother.Gender != models.GenderFemale {
			return invariantf("%s cannot be a mother: record is not female", mother.Name)
		}
	}
	return nil
}

// spouseCandidate fetches a spouse-to-be and checks the gender rule against
// the focal person's gender.
func (s *PersonService) spouseCandidate(id, focalGender string) (*models.Person, error) {
	candidate, err := s.getPerson(id)
	if err != nil {
		return nil, err
	}
	if candidate.Gender == focalGender {
		return nil, invariantf("Spouses must have different genders.")
	}
	return candidate, nil
}

func (s *PersonService) getPerson(id string) (*models.Person, error) {
	person, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return person, nil
}

func spouseLinkUpdates(spouseID string) map[string]interface{} {
	return map[string]interface{}{
		"spouse_id":      spouseID,
		"spouse_name":    nil,
		"marital_status": models.MaritalStatusMarried,
	}
}

func spouseClearUpdates() map[string]interface{} {
	return map[string]interface{}{
		"spouse_id":      nil,
		"spouse_name":    nil,
		"marital_status": models.MaritalStatusSingle,
	}
}
