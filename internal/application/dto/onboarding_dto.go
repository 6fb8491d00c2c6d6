package dto

import "github.com/shopspring/decimal"

// OnboardingRequest alta de empresa. Sin token se exigen email y password;
// con token el usuario autenticado es el dueño y email/password se ignoran.
type OnboardingRequest struct {
	Email       string                `json:"email" validate:"omitempty,email"`
	Password    string                `json:"password" validate:"omitempty,min=6"`
	CompanyName string                `json:"companyName" validate:"required,min=2,max=200"`
	Phone       string                `json:"phone" validate:"required,min=8,max=40"`
	Description string                `json:"description" validate:"max=2000"`
	Cities      []string              `json:"cities" validate:"dive,required"`
	Services    []ServiceOfferRequest `json:"services" validate:"dive"`
}

// ServiceOfferRequest servicio ofrecido con su precio en EUR (> 0).
type ServiceOfferRequest struct {
	ServiceID string          `json:"serviceId" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

// OnboardingResponse salida del registro.
type OnboardingResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
	Status    string `json:"status"`
}

// VerifyNameRequest entrada del filtro de nombres.
type VerifyNameRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
}
