package repositories

import (
	"fmt"

	"boutique/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(db *gorm.DB) *GORMContactRepository {
	return &GORMContactRepository{
		db: db,
	}
}

// Create appends a new contact submission.
func (r *GORMContactRepository) Create(contact *models.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact submission: %w", err)
	}
	return nil
}

// GetAll returns all submissions, newest first.
func (r *GORMContactRepository) GetAll() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := r.db.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("failed to get contact submissions: %w", err)
	}
	return contacts, nil
}

// Count returns the number of stored submissions.
func (r *GORMContactRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Contact{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count contact submissions: %w", err)
	}
	return count, nil
}
