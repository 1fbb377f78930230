package handlers

import (
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ContactHandler handles HTTP requests for the contact-form pipeline.
type ContactHandler struct {
	service  *services.ContactService
	validate *validator.Validate
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the contact routes. Submission is public; the
// listing is for admins.
func (h *ContactHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	contact := router.Group("/contact")
	contact.Post("/", h.HandleSubmit)
	contact.Get("/", authRequired, h.HandleGetContacts)
}

// ContactRequest represents one contact-form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// HandleSubmit validates and processes a contact-form submission.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Name == "" || req.Email == "" || req.Subject == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Name, email, subject, and message are required",
		})
	}
	if err := h.validate.Var(req.Email, "required,email"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid email format",
		})
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.service.Submit(contact); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("error processing contact request")
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Contact request sent successfully",
	})
}

// HandleGetContacts lists all submissions, newest first.
func (h *ContactHandler) HandleGetContacts(c *fiber.Ctx) error {
	contacts, err := h.service.List()
	if err != nil {
		log.Error().Err(err).Msg("error fetching contacts")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    contacts,
	})
}
