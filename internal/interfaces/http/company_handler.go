package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/application/usecase"
	"github.com/jhoicas/pastro-api/internal/domain/naming"
)

// CompanyHandler listado público y verificación de nombres.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	naming *naming.Verifier
}

// NewCompanyHandler construye el handler de empresas.
func NewCompanyHandler(uc *usecase.CompanyUseCase, verifier *naming.Verifier) *CompanyHandler {
	return &CompanyHandler{uc: uc, naming: verifier}
}

// List godoc
// @Summary      Empresas visibles
// @Description  Solo empresas APPROVED y activas.
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.PublicCompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListVisible(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// VerifyName godoc
// @Summary      Verificar nombre de empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyNameRequest  true  "companyName"
// @Success      200   {object}  naming.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/company/verify [post]
func (h *CompanyHandler) VerifyName(c *fiber.Ctx) error {
	var in dto.VerifyNameRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if err := dto.Validate(in); err != nil {
		return err
	}
	return c.JSON(h.naming.Verify(in.CompanyName))
}
