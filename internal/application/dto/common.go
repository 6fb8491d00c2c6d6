package dto

import "github.com/jhoicas/pastro-api/internal/domain"

// ErrorResponse cuerpo de error HTTP. Code es legible por máquina; Message está en el idioma del producto.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// MessageResponse respuesta simple de éxito.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
