package repositories

import "boutique/internal/models"

// ContactRepository defines the interface for contact-submission storage.
// Submissions are append-only; there is no update or delete.
type ContactRepository interface {
	Create(contact *models.Contact) error
	// GetAll returns all submissions, newest first.
	GetAll() ([]models.Contact, error)
	Count() (int64, error)
}
