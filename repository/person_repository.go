package repository

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// GormPersonRepository handles database operations for Person records. The
// composite relationship queries and the cascade batch updates are built with
// squirrel and executed through GORM's raw interface; everything else goes
// through the ORM directly.
type GormPersonRepository struct {
	db *gorm.DB
}

// NewGormPersonRepository creates a new instance of GormPersonRepository
func NewGormPersonRepository(db *gorm.DB) *GormPersonRepository {
	return &GormPersonRepository{db: db}
}

// Create inserts a new person record
func (r *GormPersonRepository) Create(person *models.Person) error {
	if err := r.db.Create(person).Error; err != nil {
		return fmt.Errorf("failed to create person %s: %w", person.ID, err)
	}
	return nil
}

// GetByID retrieves a person by id. gorm.ErrRecordNotFound passes through so
// callers can distinguish absence from a store failure.
func (r *GormPersonRepository) GetByID(id string) (*models.Person, error) {
	var person models.Person
	err := r.db.First(&person, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get person %s: %w", id, err)
	}
	return &person, nil
}

// List retrieves one page of people ordered by name, plus the total count.
func (r *GormPersonRepository) List(page, pageSize int) ([]models.Person, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.Model(&models.Person{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}
	var people []models.Person
	err := r.db.Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&people).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}
	return people, total, nil
}

// ListAll retrieves every person record, newest first. This is the snapshot
// feed for the kinship resolver.
func (r *GormPersonRepository) ListAll() ([]models.Person, error) {
	var people []models.Person
	if err := r.db.Order("created_at DESC").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to list all people: %w", err)
	}
	return people, nil
}

// Update applies a partial update to one person. The id and created_at
// columns are never part of updates; callers build the map from the mutable
// fields only.
func (r *GormPersonRepository) Update(id string, updates map[string]interface{}) error {
	result := r.db.Model(&models.Person{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update person %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a person row by id
func (r *GormPersonRepository) Delete(id string) error {
	result := r.db.Delete(&models.Person{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete person %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteMany removes a set of person rows in one statement
func (r *GormPersonRepository) DeleteMany(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Delete(&models.Person{}, "id IN ?", ids).Error; err != nil {
		return fmt.Errorf("failed to delete people: %w", err)
	}
	return nil
}

// FindByParent retrieves every person listing parentID as father or mother
func (r *GormPersonRepository) FindByParent(parentID string) ([]models.Person, error) {
	sqlStr, args, err := psql.Select("*").
		From("people").
		Where(sq.Or{sq.Eq{"father_id": parentID}, sq.Eq{"mother_id": parentID}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for FindByParent: %w", err)
	}
	people := []models.Person{}
	if err := r.db.Raw(sqlStr, args...).Scan(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to find children of %s: %w", parentID, err)
	}
	return people, nil
}

// FindSiblingsByParents retrieves everyone except excludeID sharing the given
// father or mother id. With neither parent id set there is nothing to match
// and the result is empty, mirroring the in-memory resolver.
func (r *GormPersonRepository) FindSiblingsByParents(fatherID, motherID *string, excludeID string) ([]models.Person, error) {
	if fatherID == nil && motherID == nil {
		return []models.Person{}, nil
	}
	parentMatch := sq.Or{}
	if fatherID != nil {
		parentMatch = append(parentMatch, sq.Eq{"father_id": *fatherID})
	}
	if motherID != nil {
		parentMatch = append(parentMatch, sq.Eq{"mother_id": *motherID})
	}
	sqlStr, args, err := psql.Select("*").
		From("people").
		Where(sq.And{sq.NotEq{"id": excludeID}, parentMatch}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for FindSiblingsByParents: %w", err)
	}
	people := []models.Person{}
	if err := r.db.Raw(sqlStr, args...).Scan(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to find siblings of %s: %w", excludeID, err)
	}
	return people, nil
}

// ClearFatherReferences nulls the father link on every child of the given
// parents. The free-text father_name is cleared with it rather than
// backfilled; the two fields are mutually exclusive, so a stale name must
// not survive the link.
func (r *GormPersonRepository) ClearFatherReferences(parentIDs []string) error {
	return r.clearParentReferences("father_id", "father_name", parentIDs)
}

// ClearMotherReferences nulls the mother link on every child of the given parents.
func (r *GormPersonRepository) ClearMotherReferences(parentIDs []string) error {
	return r.clearParentReferences("mother_id", "mother_name", parentIDs)
}

func (r *GormPersonRepository) clearParentReferences(idColumn, nameColumn string, parentIDs []string) error {
	if len(parentIDs) == 0 {
		return nil
	}
	sqlStr, args, err := psql.Update("people").
		Set(idColumn, nil).
		Set(nameColumn, nil).
		Where(sq.Eq{idColumn: parentIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for clearing %s: %w", idColumn, err)
	}
	if err := r.db.Exec(sqlStr, args...).Error; err != nil {
		return fmt.Errorf("failed to clear %s references: %w", idColumn, err)
	}
	return nil
}

// UnlinkSpousesOf clears the spouse link on everyone married to one of the
// given ids, resetting them to single.
func (r *GormPersonRepository) UnlinkSpousesOf(spouseIDs []string) error {
	if len(spouseIDs) == 0 {
		return nil
	}
	sqlStr, args, err := psql.Update("people").
		Set("spouse_id", nil).
		Set("spouse_name", nil).
		Set("marital_status", models.MaritalStatusSingle).
		Where(sq.Eq{"spouse_id": spouseIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for UnlinkSpousesOf: %w", err)
	}
	if err := r.db.Exec(sqlStr, args...).Error; err != nil {
		return fmt.Errorf("failed to unlink spouses: %w", err)
	}
	return nil
}

// SetDeceased flips the deceased flag on a set of people
func (r *GormPersonRepository) SetDeceased(ids []string, deceased bool) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.db.Model(&models.Person{}).
		Where("id IN ?", ids).
		Update("is_deceased", deceased).Error
	if err != nil {
		return fmt.Errorf("failed to update deceased status: %w", err)
	}
	return nil
}

// Transaction runs fn against a repository bound to one store transaction
func (r *GormPersonRepository) Transaction(fn func(PersonRepositoryInterface) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormPersonRepository{db: tx})
	})
}
