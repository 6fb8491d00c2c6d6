package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/usecase"
)

// UserHandler consultas de cuentas.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Check godoc
// @Summary      Comprobar si existe una cuenta
// @Tags         users
// @Produce      json
// @Param        email  query  string  true  "email"
// @Success      200    {object}  dto.CheckUserResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.CheckUserResponse
// @Router       /api/users/check [get]
func (h *UserHandler) Check(c *fiber.Ctx) error {
	out, err := h.uc.CheckUser(c.UserContext(), c.Query("email"))
	if err != nil {
		return err
	}
	if !out.Exists {
		return c.Status(fiber.StatusNotFound).JSON(out)
	}
	return c.JSON(out)
}
