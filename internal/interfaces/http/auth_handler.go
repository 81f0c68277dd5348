package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/henry-diagnostics/taller-api/internal/application/auth"
	"github.com/henry-diagnostics/taller-api/internal/application/dto"
	"github.com/henry-diagnostics/taller-api/internal/domain"
)

// AuthHandler maneja login y administración de usuarios.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	env string
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, env string) *AuthHandler {
	return &AuthHandler{uc: uc, env: env}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return respondValidation(c, []dto.FieldError{{Field: "email", Message: "email y password son requeridos"}})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		// Email desconocido y password incorrecto responden igual para no
		// revelar qué cuentas existen.
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return respondError(c, h.env, err)
	}
	return c.JSON(out)
}

// CreateUser POST /api/users (solo admin)
func (h *AuthHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" || in.Nombre == "" {
		return respondValidation(c, []dto.FieldError{{Field: "email", Message: "nombre, email y password son requeridos"}})
	}
	if len(in.Password) < 8 {
		return respondValidation(c, []dto.FieldError{{Field: "password", Message: "password debe tener al menos 8 caracteres"}})
	}
	user, err := h.uc.CreateUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// ListUsers GET /api/users (solo admin)
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	list, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, h.env, err)
	}
	return c.JSON(list)
}
