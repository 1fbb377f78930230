package handlers

import (
	"errors"
	"fmt"

	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for accounts and authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the account routes. Signup and login are
// public; user listings require auth.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	auth := router.Group("/auth")
	auth.Post("/signup", h.HandleSignup)
	auth.Post("/login", h.HandleLogin)
	auth.Get("/getuser", authRequired, h.HandleGetUsers)
	auth.Get("/getcount", authRequired, h.HandleGetUserCount)
	auth.Get("/byemail/:email", authRequired, h.HandleGetUserByEmail)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleSignup registers a new account and issues a session token.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Name, email, and password are required",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	token, err := h.authService.RegisterUser(user)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("error registering user")
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    userSummary(user),
		"token":   token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and issues a session token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Email and password are required",
		})
	}

	user, token, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Invalid email or password",
			})
		}
		log.Error().Err(err).Str("email", req.Email).Msg("error during login")
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    userSummary(user),
		"token":   token,
	})
}

// HandleGetUsers lists all registered users.
func (h *AuthHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("error retrieving users")
		return fail(c, err)
	}
	if len(users) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "No users found",
		})
	}

	userList := make([]fiber.Map, 0, len(users))
	for i := range users {
		userList = append(userList, userSummary(&users[i]))
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Users retrieved successfully",
		"users":   userList,
	})
}

// HandleGetUserCount returns the number of registered users.
func (h *AuthHandler) HandleGetUserCount(c *fiber.Ctx) error {
	count, err := h.authService.CountUsers()
	if err != nil {
		log.Error().Err(err).Msg("error counting users")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Total user count retrieved successfully",
		"totalUsers": count,
	})
}

// HandleGetUserByEmail retrieves a single user by email.
func (h *AuthHandler) HandleGetUserByEmail(c *fiber.Ctx) error {
	email := c.Params("email")
	user, err := h.authService.GetUserByEmail(email)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("error retrieving user")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User retrieved successfully",
		"user":    userSummary(user),
	})
}

// userSummary is the public projection of an account: no password hash,
// no cart or wishlist.
func userSummary(user *models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
}
