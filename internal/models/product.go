package models

import "time"

// Categories is the closed set of catalog categories.
var Categories = []string{
	"Shirts", "T-Shirts", "Jeans", "Trousers",
	"Jackets", "Ethnic Wear", "Activewear",
	"Accessories", "Hoodies",
}

// Sizes is the closed set of size labels, in display order.
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// SizeStock is the inventory count for one size label of a product.
type SizeStock struct {
	Size     string `json:"size" validate:"required,oneof=XS S M L XL XXL"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

// ProductImage is a binary image blob stored inline with the product.
// Data marshals to base64 in JSON responses.
type ProductImage struct {
	Data        []byte `json:"data"`
	ContentType string `json:"contentType"`
}

// Product represents one catalog entry. SizesAvailable and Images are
// JSON-serialized columns. Version backs optimistic locking; the
// repository bumps it on every successful update.
type Product struct {
	ID             string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title          string         `json:"title" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Tagline        string         `json:"tagline" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	Description    string         `json:"description" gorm:"type:varchar(2000)" validate:"omitempty,max=2000"`
	Price          float64        `json:"price" validate:"gte=0"`
	Category       string         `json:"category" validate:"required"`
	Subcategory    string         `json:"subcategory"`
	SizesAvailable []SizeStock    `json:"sizesAvailable" gorm:"type:text;serializer:json"`
	TotalQuantity  int            `json:"totalQuantity" validate:"gte=0"`
	Images         []ProductImage `json:"images" gorm:"type:text;serializer:json"`
	Version        int            `json:"-" gorm:"not null;default:1"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ValidCategory reports whether c is one of the fixed catalog categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidSize reports whether s is one of the fixed size labels.
func ValidSize(s string) bool {
	for _, v := range Sizes {
		if v == s {
			return true
		}
	}
	return false
}

// SizesTotal sums the quantities of a size-stock sequence.
func SizesTotal(sizes []SizeStock) int {
	total := 0
	for _, s := range sizes {
		total += s.Quantity
	}
	return total
}
