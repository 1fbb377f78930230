package models

import "time"

// CartItem is one product entry in a user's cart.
type CartItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// User represents a storefront account. Cart and Wishlist are
// JSON-serialized columns; Wishlist is a set of product IDs.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string     `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string     `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	Cart      []CartItem `json:"cart" gorm:"type:text;serializer:json"`
	Wishlist  []string   `json:"wishlist" gorm:"type:text;serializer:json"`
	CreatedAt time.Time  `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"autoUpdateTime"`
}
