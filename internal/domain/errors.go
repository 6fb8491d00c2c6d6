package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Los mensajes están en el idioma del producto.
var (
	ErrNotFound            = errors.New("burimi nuk u gjet")
	ErrValidation          = errors.New("të dhënat e dërguara nuk janë të vlefshme")
	ErrConflict            = errors.New("konflikt me gjendjen aktuale")
	ErrStorage             = errors.New("gabim i brendshëm i serverit")
	ErrUpstreamUnavailable = errors.New("shërbimi i jashtëm nuk është i disponueshëm")
	ErrUnauthorized        = errors.New("kredencialet janë të pasakta")
	ErrForbidden           = errors.New("qasja u refuzua")
)

// Variantes concretas; todas cumplen errors.Is con su sentinel genérico.
var (
	ErrUserNotFound    = fmt.Errorf("%w: përdoruesi nuk u gjet", ErrNotFound)
	ErrCompanyNotFound = fmt.Errorf("%w: kompania nuk u gjet", ErrNotFound)

	// El usuario ya posee una empresa (un usuario registra como máximo una, nunca más).
	ErrCompanyAlreadyRegistered = fmt.Errorf("%w: ju tashmë keni një kompani të regjistruar", ErrConflict)
	// Existe una empresa bajo ese email: el cliente debe autenticarse y usar el flujo por userId.
	ErrCompanyExistsForEmail = fmt.Errorf("%w: një kompani është regjistruar tashmë me këtë email, ju lutemi kyçuni", ErrConflict)
	// Existe la cuenta pero sin empresa: este flujo no adjunta una contraseña nueva en silencio.
	ErrAccountExists = fmt.Errorf("%w: përdoruesi me këtë email ekziston tashmë, ju lutemi kyçuni fillimisht", ErrConflict)

	ErrInvalidTransition = fmt.Errorf("%w: statusi duhet të jetë APPROVED ose REJECTED", ErrValidation)
	ErrUnknownReference  = fmt.Errorf("%w: qyteti ose shërbimi nuk ekziston", ErrValidation)
	ErrInvalidResetToken = fmt.Errorf("%w: token-i i rivendosjes është i pavlefshëm ose ka skaduar", ErrValidation)
)

// FieldError describe un campo inválido de una petición.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError agrupa los campos inválidos; errors.Is(err, ErrValidation) es true.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add registra un campo inválido.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil devuelve nil si no se registró ningún campo.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

type storageError struct {
	cause error
}

func (e *storageError) Error() string   { return "storage: " + e.cause.Error() }
func (e *storageError) Unwrap() []error { return []error{ErrStorage, e.cause} }

// StorageError envuelve un fallo de infraestructura como ErrStorage conservando la causa para logs.
// Los errores de dominio ya tipados se devuelven tal cual.
func StorageError(err error) error {
	if err == nil || IsKnown(err) {
		return err
	}
	return &storageError{cause: err}
}

// IsKnown indica si err ya pertenece a la taxonomía de dominio.
func IsKnown(err error) bool {
	for _, sentinel := range []error{ErrNotFound, ErrValidation, ErrConflict, ErrStorage, ErrUpstreamUnavailable, ErrUnauthorized, ErrForbidden} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
