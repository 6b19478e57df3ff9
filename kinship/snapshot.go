package kinship

import (
	"fmt"

	"github.com/vasudha-connect/kinshipbackend/models"
)

// Snapshot is an immutable, point-in-time collection of every person record,
// keyed by id. All derivation functions run against a snapshot and never
// touch the database: callers fetch the full person set once per operation
// and pass it in explicitly. A snapshot must never be mutated after
// construction; resolver methods only read it.
type Snapshot struct {
	people []models.Person
	byID   map[string]*models.Person
}

// NewSnapshot builds a snapshot from a full person listing. A duplicate id is
// a programming error in the caller (the store guarantees id uniqueness), not
// missing data, and is rejected outright.
func NewSnapshot(people []models.Person) (*Snapshot, error) {
	s := &Snapshot{
		people: people,
		byID:   make(map[string]*models.Person, len(people)),
	}
	for i := range people {
		p := &people[i]
		if _, exists := s.byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate person id %q in snapshot", p.ID)
		}
		s.byID[p.ID] = p
	}
	return s, nil
}

// All returns every person in the snapshot.
func (s *Snapshot) All() []models.Person {
	return s.people
}

// Len returns the number of person records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.people)
}

// Get returns the person with the given id, or nil when unknown.
func (s *Snapshot) Get(id string) *models.Person {
	if id == "" {
		return nil
	}
	return s.byID[id]
}

// FindByID resolves an optional id reference. A nil, empty, or dangling id
// resolves to nil; absence is a legitimate value, never an error.
func (s *Snapshot) FindByID(id *string) *models.Person {
	if id == nil {
		return nil
	}
	return s.Get(*id)
}
