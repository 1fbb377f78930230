package services

import (
	"fmt"

	"boutique/internal/models"
	"boutique/internal/repositories"
)

// CartService handles cart and wishlist mutations. Both live on the user
// record and are persisted through the user repository; each operation is
// a single read-modify-write of one user.
type CartService struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(userRepo repositories.UserRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		userRepo:    userRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart items.
func (s *CartService) GetCart(userID string) ([]models.CartItem, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// AddToCart increments the quantity of an existing cart entry or appends a
// new one with quantity 1. The product must exist in the catalog.
func (s *CartService) AddToCart(userID, productID string) ([]models.CartItem, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	found := false
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		user.Cart = append(user.Cart, models.CartItem{ProductID: productID, Quantity: 1})
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// RemoveFromCart removes the product from the cart. Removing an absent
// product is a no-op.
func (s *CartService) RemoveFromCart(userID, productID string) ([]models.CartItem, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	filtered := user.Cart[:0]
	for _, item := range user.Cart {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	user.Cart = filtered

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user.Cart, nil
}

// UpdateCartQuantity sets the quantity of an existing cart entry.
func (s *CartService) UpdateCartQuantity(userID, productID string, quantity int) ([]models.CartItem, error) {
	if quantity < 1 {
		return nil, invalid("Quantity must be at least 1")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity = quantity
			if err := s.userRepo.Update(user); err != nil {
				return nil, err
			}
			return user.Cart, nil
		}
	}
	return nil, fmt.Errorf("product not found in cart: %w", repositories.ErrNotFound)
}

// GetWishlist returns the user's wishlist.
func (s *CartService) GetWishlist(userID string) ([]string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

// AddToWishlist adds a product to the wishlist. The wishlist is a set;
// adding an already-present product is a no-op.
func (s *CartService) AddToWishlist(userID, productID string) ([]string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	for _, id := range user.Wishlist {
		if id == productID {
			return user.Wishlist, nil
		}
	}
	user.Wishlist = append(user.Wishlist, productID)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}

// RemoveFromWishlist drops a product from the wishlist. Removing an absent
// product is a no-op.
func (s *CartService) RemoveFromWishlist(userID, productID string) ([]string, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	filtered := user.Wishlist[:0]
	for _, id := range user.Wishlist {
		if id != productID {
			filtered = append(filtered, id)
		}
	}
	user.Wishlist = filtered

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user.Wishlist, nil
}
