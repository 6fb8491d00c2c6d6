package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/directory"
)

// DirectoryHandler catálogo público.
type DirectoryHandler struct {
	uc *directory.UseCase
}

// NewDirectoryHandler construye el handler del catálogo.
func NewDirectoryHandler(uc *directory.UseCase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc}
}

// Cities godoc
// @Summary      Ciudades
// @Tags         directory
// @Produce      json
// @Success      200  {object}  dto.CityListResponse
// @Router       /api/cities [get]
func (h *DirectoryHandler) Cities(c *fiber.Ctx) error {
	out, err := h.uc.ListCities(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Services godoc
// @Summary      Servicios
// @Tags         directory
// @Produce      json
// @Param        categoryId       query  string  false  "filtrar por categoría"
// @Param        includeCategory  query  bool    false  "incluir la categoría de cada servicio"
// @Success      200  {object}  dto.ServiceListResponse
// @Router       /api/services [get]
func (h *DirectoryHandler) Services(c *fiber.Ctx) error {
	out, err := h.uc.ListServices(c.UserContext(), c.Query("categoryId"), c.QueryBool("includeCategory"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías con sus servicios
// @Tags         directory
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/service-categories [get]
func (h *DirectoryHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
