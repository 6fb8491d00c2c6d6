package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpdateStatusRequest moderación manual: status APPROVED|REJECTED (sin distinguir mayúsculas).
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"max=1000"`
}

// CompanyStatusResponse empresa tras la moderación; Status en minúsculas.
type CompanyStatusResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// UpdateStatusResponse envoltorio de la respuesta de moderación.
type UpdateStatusResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Company CompanyStatusResponse `json:"company"`
}

// OfferedServiceResponse servicio ofrecido por una empresa.
type OfferedServiceResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// PublicCompanyResponse empresa visible para clientes.
type PublicCompanyResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Phone       string                   `json:"phone"`
	Email       string                   `json:"email"`
	Logo        *string                  `json:"logo"`
	Cities      []string                 `json:"cities"`
	Services    []OfferedServiceResponse `json:"services"`
	CreatedAt   time.Time                `json:"createdAt"`
}

// PublicCompanyListResponse listado público.
type PublicCompanyListResponse struct {
	Success   bool                    `json:"success"`
	Companies []PublicCompanyResponse `json:"companies"`
}

// AdminCompanyResponse empresa en el panel de administración.
type AdminCompanyResponse struct {
	PublicCompanyResponse
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusStats conteo por estado.
type StatusStats struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// AdminCompanyListResponse listado del panel con estadísticas.
type AdminCompanyListResponse struct {
	Success   bool                   `json:"success"`
	Companies []AdminCompanyResponse `json:"companies"`
	Stats     StatusStats            `json:"stats"`
}
