package handlers

import (
	"errors"

	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// CartHandler handles HTTP requests for carts and wishlists.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart and wishlist routes. All require auth.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cw := router.Group("/cw", authRequired)
	cw.Get("/cart/:userId", h.HandleGetCart)
	cw.Post("/cart/add", h.HandleAddToCart)
	cw.Post("/cart/remove", h.HandleRemoveFromCart)
	cw.Post("/cart/update", h.HandleUpdateCartQuantity)
	cw.Get("/wishlist/:userId", h.HandleGetWishlist)
	cw.Post("/wishlist/add", h.HandleAddToWishlist)
	cw.Post("/wishlist/remove", h.HandleRemoveFromWishlist)
}

// CartRequest addresses one (user, product) pair.
type CartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
}

// UpdateCartRequest carries a quantity change for one cart entry.
type UpdateCartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// parseCartRequest binds and validates the request body. A non-nil error
// carries the caller-facing message.
func (h *CartHandler) parseCartRequest(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.New("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return errors.New("userId and productId are required")
	}
	return nil
}

// HandleGetCart returns the user's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.service.GetCart(c.Params("userId"))
	if err != nil {
		log.Error().Err(err).Msg("error retrieving cart")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart retrieved successfully",
		"cart":    cart,
	})
}

// HandleAddToCart adds one unit of a product to the user's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req CartRequest
	if err := h.parseCartRequest(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	cart, err := h.service.AddToCart(req.UserID, req.ProductID)
	if err != nil {
		log.Error().Err(err).Msg("error adding to cart")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product added to cart",
		"cart":    cart,
	})
}

// HandleRemoveFromCart removes a product from the user's cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	var req CartRequest
	if err := h.parseCartRequest(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	cart, err := h.service.RemoveFromCart(req.UserID, req.ProductID)
	if err != nil {
		log.Error().Err(err).Msg("error removing from cart")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product removed from cart",
		"cart":    cart,
	})
}

// HandleUpdateCartQuantity sets the quantity of one cart entry.
func (h *CartHandler) HandleUpdateCartQuantity(c *fiber.Ctx) error {
	var req UpdateCartRequest
	if err := h.parseCartRequest(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	cart, err := h.service.UpdateCartQuantity(req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		log.Error().Err(err).Msg("error updating cart")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cart updated",
		"cart":    cart,
	})
}

// HandleGetWishlist returns the user's wishlist.
func (h *CartHandler) HandleGetWishlist(c *fiber.Ctx) error {
	wishlist, err := h.service.GetWishlist(c.Params("userId"))
	if err != nil {
		log.Error().Err(err).Msg("error retrieving wishlist")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Wishlist retrieved successfully",
		"wishlist": wishlist,
	})
}

// HandleAddToWishlist adds a product to the user's wishlist.
func (h *CartHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	var req CartRequest
	if err := h.parseCartRequest(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	wishlist, err := h.service.AddToWishlist(req.UserID, req.ProductID)
	if err != nil {
		log.Error().Err(err).Msg("error adding to wishlist")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Product added to wishlist",
		"wishlist": wishlist,
	})
}

// HandleRemoveFromWishlist removes a product from the user's wishlist.
func (h *CartHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	var req CartRequest
	if err := h.parseCartRequest(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	wishlist, err := h.service.RemoveFromWishlist(req.UserID, req.ProductID)
	if err != nil {
		log.Error().Err(err).Msg("error removing from wishlist")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Product removed from wishlist",
		"wishlist": wishlist,
	})
}
