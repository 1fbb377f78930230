package services

import (
	"encoding/json"
	"errors"
	"strconv"
	"unicode/utf8"

	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
)

// ProductService handles business logic related to the product catalog,
// including the upsert-and-merge path.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
}

// NewProductService creates a new ProductService. mqClient may be nil, in
// which case catalog events are not published.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
	}
}

// UpsertProductInput carries one product submission. Price, TotalQuantity
// and SizesJSON arrive as raw form values so that parse failures produce
// the same errors as any other invalid input.
type UpsertProductInput struct {
	Title         string
	Tagline       string
	Description   string
	Price         string
	Category      string
	Subcategory   string
	SizesJSON     string
	TotalQuantity string // optional override; empty means "compute from sizes"
	Images        []models.ProductImage
}

// AddProduct validates a submission and either merges it into an existing
// product matched by (title, description, category, subcategory) or creates
// a new one. The boolean result is true when a new product was created.
//
// On the merge path size quantities are added to any existing entry for the
// same label, new labels are appended, and TotalQuantity grows by the sum of
// the submitted quantities. Images are ignored when merging. Exactly one
// write is performed per invocation.
func (s *ProductService) AddProduct(input UpsertProductInput) (*models.Product, bool, error) {
	if input.Title == "" || input.Price == "" || input.Category == "" || input.SizesJSON == "" {
		return nil, false, invalid("Title, price, category, and sizesAvailable are required")
	}

	price, err := strconv.ParseFloat(input.Price, 64)
	if err != nil || price < 0 {
		return nil, false, invalid("Price must be a non-negative number")
	}

	if n := utf8.RuneCountInString(input.Title); n < 2 || n > 100 {
		return nil, false, invalid("Title must be between 2 and 100 characters")
	}
	if utf8.RuneCountInString(input.Tagline) > 150 {
		return nil, false, invalid("Tagline must be at most 150 characters")
	}
	if utf8.RuneCountInString(input.Description) > 2000 {
		return nil, false, invalid("Description must be at most 2000 characters")
	}
	if !models.ValidCategory(input.Category) {
		return nil, false, invalid("Invalid category")
	}

	sizes, err := parseSizes(input.SizesJSON)
	if err != nil {
		return nil, false, err
	}

	computedTotal := models.SizesTotal(sizes)
	finalTotal := computedTotal
	if input.TotalQuantity != "" {
		override, err := strconv.Atoi(input.TotalQuantity)
		if err != nil || override < 0 {
			return nil, false, invalid("Total quantity must be a non-negative number")
		}
		finalTotal = override
	}

	existing, err := s.repo.FindByIdentity(input.Title, input.Description, input.Category, input.Subcategory)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		mergeSizes(existing, sizes)
		existing.TotalQuantity += computedTotal
		if err := s.repo.Update(existing); err != nil {
			return nil, false, err
		}
		s.publishCatalogEvent("merged", existing)
		return existing, false, nil
	}

	if len(input.Images) == 0 {
		return nil, false, invalid("At least one product image is required")
	}
	if len(input.Images) > 5 {
		return nil, false, invalid("Maximum of 5 images allowed per product")
	}

	product := &models.Product{
		Title:          input.Title,
		Tagline:        input.Tagline,
		Description:    input.Description,
		Price:          price,
		Category:       input.Category,
		Subcategory:    input.Subcategory,
		SizesAvailable: sizes,
		TotalQuantity:  finalTotal,
		Images:         input.Images,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, false, err
	}
	s.publishCatalogEvent("created", product)
	return product, true, nil
}

// parseSizes decodes and validates the submitted size list. Validation is
// atomic: any bad entry rejects the whole submission.
func parseSizes(raw string) ([]models.SizeStock, error) {
	var sizes []models.SizeStock
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, invalid("Each size must include a valid size (string) and quantity (non-negative number)")
		}
		return nil, invalid("sizesAvailable must be a valid non-empty JSON array")
	}
	if len(sizes) == 0 {
		return nil, invalid("sizesAvailable must be a valid non-empty JSON array")
	}

	seen := make(map[string]bool, len(sizes))
	for _, entry := range sizes {
		if entry.Size == "" || entry.Quantity < 0 {
			return nil, invalid("Each size must include a valid size (string) and quantity (non-negative number)")
		}
		if !models.ValidSize(entry.Size) {
			return nil, invalid("Size must be one of XS, S, M, L, XL, XXL")
		}
		if seen[entry.Size] {
			return nil, invalid("Duplicate size entries are not allowed")
		}
		seen[entry.Size] = true
	}
	return sizes, nil
}

// mergeSizes folds the submitted quantities into the product's size list:
// matching labels are incremented, new labels appended in submission order.
func mergeSizes(product *models.Product, submitted []models.SizeStock) {
	for _, newSize := range submitted {
		merged := false
		for i := range product.SizesAvailable {
			if product.SizesAvailable[i].Size == newSize.Size {
				product.SizesAvailable[i].Quantity += newSize.Quantity
				merged = true
				break
			}
		}
		if !merged {
			product.SizesAvailable = append(product.SizesAvailable, newSize)
		}
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		return nil, err
	}
	s.publishCatalogEvent("deleted", product)
	return product, nil
}

// CountProducts returns the catalog size.
func (s *ProductService) CountProducts() (int64, error) {
	return s.repo.Count()
}

// publishCatalogEvent publishes a catalog mutation. Failures are logged,
// not surfaced: the write has already happened.
func (s *ProductService) publishCatalogEvent(action string, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	event := rabbitmq.CatalogEvent{
		Action:        action,
		ProductID:     product.ID,
		Title:         product.Title,
		TotalQuantity: product.TotalQuantity,
	}
	if err := s.mqClient.PublishCatalogEvent(event); err != nil {
		log.Warn().Err(err).Str("action", action).Str("product_id", product.ID).
			Msg("failed to publish catalog event")
	}
}
