package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/winter-cloth-service/internal/api/dto"
	"github.com/spec-kit/winter-cloth-service/internal/service"
	apperrors "github.com/spec-kit/winter-cloth-service/pkg/util"
)

// UsersHandler exposes registration and login endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /api/v1/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email and password are required")
	}

	if err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return apperrors.NewConflict("User already exists")
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.OK("User registered successfully", nil))
}

// Login handles POST /api/v1/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required")
	}

	token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Login failures keep the bare {message} body, identical for
			// unknown email and wrong password, so it stays out of the
			// envelope-shaping middleware.
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid email or password",
			})
		}
		return err
	}

	return c.JSON(dto.LoginResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
	})
}
