package repository

import "github.com/vasudha-connect/kinshipbackend/models"

// PersonRepositoryInterface defines the store contract for person records:
// plain CRUD, the relationship-shortcut queries, and the batch writes the
// integrity service issues while cascading a mutation. The shortcut queries
// must match what the kinship resolver would compute from a full snapshot;
// functional parity is the contract, not a specific query shape.
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	GetByID(id string) (*models.Person, error)
	List(page, pageSize int) ([]models.Person, int64, error)
	ListAll() ([]models.Person, error)
	Update(id string, updates map[string]interface{}) error
	Delete(id string) error
	DeleteMany(ids []string) error

	// relationship shortcuts
	FindByParent(parentID string) ([]models.Person, error)
	FindSiblingsByParents(fatherID, motherID *string, excludeID string) ([]models.Person, error)

	// batch cascade writes
	ClearFatherReferences(parentIDs []string) error
	ClearMotherReferences(parentIDs []string) error
	UnlinkSpousesOf(spouseIDs []string) error
	SetDeceased(ids []string, deceased bool) error

	// Transaction runs fn against a repository bound to a single store
	// transaction; any error rolls the whole cascade back.
	Transaction(fn func(PersonRepositoryInterface) error) error
}

// SuggestionRepositoryInterface defines the methods for suggestion data operations
type SuggestionRepositoryInterface interface {
	Create(suggestion *models.Suggestion) error
	ListAll() ([]models.Suggestion, error)
	GetByID(id string) (*models.Suggestion, error)
	Delete(id string) error
}

// AdminRepositoryInterface defines the methods for admin account operations
type AdminRepositoryInterface interface {
	Create(admin *models.Admin) error
	GetByUsername(username string) (*models.Admin, error)
	Count() (int64, error)
}
