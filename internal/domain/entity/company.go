package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CompanyStatus estado de moderación. Se persiste en mayúsculas y se expone en minúsculas.
type CompanyStatus string

const (
	StatusPending  CompanyStatus = "PENDING"
	StatusApproved CompanyStatus = "APPROVED"
	StatusRejected CompanyStatus = "REJECTED"
)

// ParseCompanyStatus acepta cualquier combinación de mayúsculas/minúsculas.
func ParseCompanyStatus(s string) (CompanyStatus, bool) {
	switch st := CompanyStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, true
	}
	return "", false
}

// Lower representación para las APIs de lectura.
func (s CompanyStatus) Lower() string {
	return strings.ToLower(string(s))
}

// Company entidad moderada que representa un negocio de limpieza.
// Status e IsActive solo cambian a través de moderation.Apply.
type Company struct {
	ID          string
	UserID      string // único: un usuario tiene como máximo una empresa
	Name        string
	Phone       string
	Description string
	Logo        *string
	Status      CompanyStatus
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompanyCity asociación empresa-ciudad (par único).
type CompanyCity struct {
	CompanyID string
	CityID    string
}

// CompanyService asociación empresa-servicio con precio en EUR (par único, precio > 0).
type CompanyService struct {
	CompanyID string
	ServiceID string
	Price     decimal.Decimal
}

// OfferedService servicio ofrecido con su nombre, para listados.
type OfferedService struct {
	ServiceID string
	Name      string
	Price     decimal.Decimal
}

// CompanyDetail empresa con sus relaciones resueltas (email del dueño, ciudades y servicios).
type CompanyDetail struct {
	Company
	OwnerEmail string
	Cities     []City
	Services   []OfferedService
}
