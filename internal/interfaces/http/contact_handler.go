package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/contact"
	"github.com/jhoicas/pastro-api/internal/application/dto"
)

// ContactHandler formulario de contacto de la ficha pública.
type ContactHandler struct {
	uc *contact.UseCase
}

func NewContactHandler(uc *contact.UseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar mensaje a una empresa
// @Description  Solo empresas aprobadas y activas. El destinatario es el email del dueño.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "companyId, from, message"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Send(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
