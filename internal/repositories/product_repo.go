package repositories

import (
	"boutique/internal/models"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	// FindByIdentity looks up at most one product by exact, case-sensitive
	// equality on all four fields. Returns ErrNotFound when absent.
	FindByIdentity(title, description, category, subcategory string) (*models.Product, error)
	Create(product *models.Product) error
	// Update persists the product only if its Version still matches the
	// stored row, then bumps Version. Returns ErrVersionConflict on a
	// concurrent modification and ErrNotFound if the row is gone.
	Update(product *models.Product) error
	Delete(id string) error
	Count() (int64, error)
}
