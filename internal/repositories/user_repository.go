package repositories

import "boutique/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	GetAll() ([]models.User, error)
	// Update persists the full user record, including cart and wishlist.
	Update(user *models.User) error
	Count() (int64, error)
}
