package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/auth"
	"github.com/jhoicas/pastro-api/internal/application/dto"
)

// PasswordHandler recuperación de contraseña.
type PasswordHandler struct {
	uc *auth.PasswordResetUseCase
}

func NewPasswordHandler(uc *auth.PasswordResetUseCase) *PasswordHandler {
	return &PasswordHandler{uc: uc}
}

// ForgotPassword godoc
// @Summary      Solicitar enlace de recuperación
// @Description  Responde igual exista o no la cuenta.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *PasswordHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.ForgotPassword(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "token, email, password"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *PasswordHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.ResetPassword(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
