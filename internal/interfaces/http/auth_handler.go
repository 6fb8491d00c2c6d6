package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/auth"
	"github.com/jhoicas/pastro-api/internal/application/dto"
)

// AuthHandler maneja alta de clientes, login y el callback OAuth.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// RegisterUser godoc
// @Summary      Registrar cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterUserRequest  true  "email, password, name"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register-user [post]
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var in dto.RegisterUserRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// OAuth godoc
// @Summary      Alta/login por proveedor OAuth
// @Description  Solo para el proveedor de identidad (Bearer AUTH_INTERNAL_TOKEN). El email llega ya verificado.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OAuthSignInRequest  true  "email, name, provider"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/oauth [post]
func (h *AuthHandler) OAuth(c *fiber.Ctx) error {
	var in dto.OAuthSignInRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.OAuthSignIn(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
