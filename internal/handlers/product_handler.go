package handlers

import (
	"boutique/internal/services"
	"boutique/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes. Mutations require auth;
// reads are public.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	products := router.Group("/products")
	products.Get("/", h.HandleGetProducts)
	products.Get("/count", h.HandleGetProductCount)
	products.Get("/:id", h.HandleGetProductByID)
	products.Post("/add", authRequired, h.HandleAddProduct)
	products.Delete("/:id", authRequired, h.HandleDeleteProduct)
}

// HandleAddProduct accepts a multipart product submission and either
// creates a new product (201) or merges stock into an existing one (200).
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	input := services.UpsertProductInput{
		Title:         c.FormValue("title"),
		Tagline:       c.FormValue("tagline"),
		Description:   c.FormValue("description"),
		Price:         c.FormValue("price"),
		Category:      c.FormValue("category"),
		Subcategory:   c.FormValue("subcategory"),
		SizesJSON:     c.FormValue("sizesAvailable"),
		TotalQuantity: c.FormValue("totalQuantity"),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		images, err := uploads.CollectImages(form.File["images"])
		if err != nil {
			// Upload-layer messages pass through verbatim.
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}
		input.Images = images
	}

	product, created, err := h.service.AddProduct(input)
	if err != nil {
		log.Error().Err(err).Str("title", input.Title).Msg("error adding product")
		return fail(c, err)
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "New product added successfully",
			"product": product,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product already exists. Quantity updated.",
		"product": product,
	})
}

// HandleGetProducts retrieves all products with images inlined as base64.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Error().Err(err).Msg("error getting all products")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Products retrieved successfully",
		"products": products,
	})
}

// HandleGetProductCount returns the catalog size.
func (h *ProductHandler) HandleGetProductCount(c *fiber.Ctx) error {
	count, err := h.service.CountProducts()
	if err != nil {
		log.Error().Err(err).Msg("error counting products")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"message":       "Total product count retrieved successfully",
		"totalProducts": count,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("error getting product")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product retrieved successfully",
		"product": product,
	})
}

// HandleDeleteProduct removes one product by ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.DeleteProduct(productID)
	if err != nil {
		log.Error().Err(err).Str("product_id", productID).Msg("error deleting product")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
		"deletedProduct": fiber.Map{
			"id":            product.ID,
			"title":         product.Title,
			"category":      product.Category,
			"subcategory":   product.Subcategory,
			"totalQuantity": product.TotalQuantity,
		},
	})
}
