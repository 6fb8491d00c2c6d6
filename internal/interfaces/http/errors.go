package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pastro-api/internal/application/dto"
	"github.com/jhoicas/pastro-api/internal/domain"
)

var errInvalidBody = fmt.Errorf("%w: trupi i kërkesës nuk është JSON i vlefshëm", domain.ErrValidation)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Los más específicos primero: errors.Is contra el sentinel genérico también sería true.
var errorTable = []errorMapping{
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY", "Trupi i kërkesës nuk është JSON i vlefshëm"},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, "INVALID_STATUS", "Statusi duhet të jetë APPROVED ose REJECTED"},
	{domain.ErrUnknownReference, fiber.StatusBadRequest, "UNKNOWN_REFERENCE", "Qyteti ose shërbimi nuk ekziston"},
	{domain.ErrInvalidResetToken, fiber.StatusBadRequest, "INVALID_RESET_TOKEN", "Token-i i rivendosjes është i pavlefshëm ose ka skaduar. Ju lutemi kërkoni një link të ri."},
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION", "Të dhënat e dërguara nuk janë të vlefshme"},
	{domain.ErrCompanyAlreadyRegistered, fiber.StatusConflict, "COMPANY_EXISTS", "Ju tashmë keni një kompani të regjistruar"},
	{domain.ErrCompanyExistsForEmail, fiber.StatusConflict, "COMPANY_EXISTS_FOR_EMAIL", "Një kompani është regjistruar tashmë me këtë email, ju lutemi kyçuni"},
	{domain.ErrAccountExists, fiber.StatusConflict, "ACCOUNT_EXISTS", "Përdoruesi me këtë email ekziston tashmë, ju lutemi kyçuni fillimisht"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "Konflikt me gjendjen aktuale"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "Përdoruesi nuk u gjet"},
	{domain.ErrCompanyNotFound, fiber.StatusNotFound, "COMPANY_NOT_FOUND", "Kompania nuk u gjet"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "Burimi nuk u gjet"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "Email ose fjalëkalim i gabuar"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "Qasja u refuzua"},
	{domain.ErrUpstreamUnavailable, fiber.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Shërbimi i jashtëm nuk është i disponueshëm"},
}

// ToResponse traduce un error a status HTTP y cuerpo. Los fallos de almacenamiento
// y los errores desconocidos nunca exponen la causa.
func ToResponse(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message}
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			out := dto.ErrorResponse{Code: m.code, Message: m.message}
			var ve *domain.ValidationError
			if errors.As(err, &ve) {
				out.Details = ve.Fields
			}
			return m.status, out
		}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "Gabim i brendshëm i serverit"}
}

// ErrorHandler fiber.ErrorHandler de la app: los handlers devuelven el error de dominio tal cual.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := ToResponse(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error en la petición")
		}
		return c.Status(status).JSON(body)
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "ERROR"
}
