package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/application/onboarding"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/internal/domain/naming"
)

// OnboardingHandler registro de empresas.
type OnboardingHandler struct {
	uc     *onboarding.UseCase
	naming *naming.Verifier
}

// NewOnboardingHandler construye el handler de registro.
func NewOnboardingHandler(uc *onboarding.UseCase, verifier *naming.Verifier) *OnboardingHandler {
	return &OnboardingHandler{uc: uc, naming: verifier}
}

// Register godoc
// @Summary      Registrar empresa
// @Description  Con Bearer token la empresa pertenece al usuario autenticado; sin token se crea la cuenta con email y password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OnboardingRequest  true  "empresa, ciudades y servicios"
// @Success      201   {object}  dto.OnboardingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *OnboardingHandler) Register(c *fiber.Ctx) error {
	var in dto.OnboardingRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if err := dto.Validate(in); err != nil {
		return err
	}
	if res := h.naming.Verify(in.CompanyName); !res.IsValid {
		ve := &domain.ValidationError{}
		ve.Add("companyName", res.Reason)
		return ve
	}

	input := onboarding.Input{
		CompanyName: in.CompanyName,
		Phone:       in.Phone,
		Description: in.Description,
		Cities:      in.Cities,
		Services:    make([]onboarding.ServiceOffer, 0, len(in.Services)),
	}
	if userID := GetUserID(c); userID != "" {
		input.Identity = onboarding.ByExistingUser{UserID: userID}
	} else {
		input.Identity = onboarding.ByCredentials{Email: in.Email, Password: in.Password}
	}
	for _, s := range in.Services {
		input.Services = append(input.Services, onboarding.ServiceOffer{ServiceID: s.ServiceID, Price: s.Price})
	}

	res, err := h.uc.Onboard(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OnboardingResponse{
		Success:   true,
		Message:   "Kompania u regjistrua me sukses",
		UserID:    res.UserID,
		CompanyID: res.CompanyID,
		Status:    res.Status.Lower(),
	})
}
