package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/models"
)

// GormSuggestionRepository handles database operations for edit suggestions
type GormSuggestionRepository struct {
	db *gorm.DB
}

// NewGormSuggestionRepository creates a new instance of GormSuggestionRepository
func NewGormSuggestionRepository(db *gorm.DB) *GormSuggestionRepository {
	return &GormSuggestionRepository{db: db}
}

// Create inserts a new suggestion, assigning it a fresh UUID
func (r *GormSuggestionRepository) Create(suggestion *models.Suggestion) error {
	if suggestion.ID == "" {
		suggestion.ID = uuid.NewString()
	}
	if err := r.db.Create(suggestion).Error; err != nil {
		return fmt.Errorf("failed to create suggestion for profile %s: %w", suggestion.ProfileID, err)
	}
	return nil
}

// ListAll retrieves every suggestion, newest first
func (r *GormSuggestionRepository) ListAll() ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	if err := r.db.Order("created_at DESC").Find(&suggestions).Error; err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	return suggestions, nil
}

// GetByID retrieves a suggestion by id
func (r *GormSuggestionRepository) GetByID(id string) (*models.Suggestion, error) {
	var suggestion models.Suggestion
	err := r.db.First(&suggestion, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get suggestion %s: %w", id, err)
	}
	return &suggestion, nil
}

// Delete removes a suggestion by id
func (r *GormSuggestionRepository) Delete(id string) error {
	result := r.db.Delete(&models.Suggestion{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete suggestion %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
