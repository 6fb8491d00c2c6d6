package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/application/moderation"
)

// AdminHandler moderación de empresas (rol ADMIN).
type AdminHandler struct {
	uc *moderation.UseCase
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(uc *moderation.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListCompanies godoc
// @Summary      Empresas para moderación
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending | approved | rejected | all"
// @Success      200  {object}  dto.AdminCompanyListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/companies [get]
func (h *AdminHandler) ListCompanies(c *fiber.Ctx) error {
	out, err := h.uc.ListForAdmin(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar una empresa
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                   true  "company id"
// @Param        body  body  dto.UpdateStatusRequest  true  "status, reason"
// @Success      200   {object}  dto.UpdateStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/admin/companies/{id}/status [put]
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
